package model

type Comment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Author    User   `json:"author"`
	PostID    string `json:"post_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type AddCommentRequest struct {
	PostID string `json:"post_id"`
	Text   string `json:"text"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type GetCommentsRequest struct {
	PostID string `json:"post_id"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}
