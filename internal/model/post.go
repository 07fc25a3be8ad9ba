package model

type Post struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Author    User   `json:"author"`
	Group     *Group `json:"group,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreatePostRequest struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group_slug"`
	ImageURL  string `json:"image_url"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type UpdatePostRequest struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	GroupSlug string `json:"group_slug"`
	ImageURL  string `json:"image_url"`
}

type UpdatePostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct{}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

type GetPostsRequest struct {
	Page int `json:"page"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
	Page  int    `json:"page"`
	Total int64  `json:"total"`
}

type GetGroupPostsRequest struct {
	GroupSlug string `json:"group_slug"`
	Page      int    `json:"page"`
}

type GetGroupPostsResponse struct {
	Group Group  `json:"group"`
	Posts []Post `json:"posts"`
	Page  int    `json:"page"`
	Total int64  `json:"total"`
}

type GetUserPostsRequest struct {
	UserName string `json:"user_name"`
	Page     int    `json:"page"`
}

type GetUserPostsResponse struct {
	Author    User   `json:"author"`
	Posts     []Post `json:"posts"`
	Page      int    `json:"page"`
	Total     int64  `json:"total"`
	Following bool   `json:"following"`
}

type GetFollowingPostsRequest struct {
	Page int `json:"page"`
}

type GetFollowingPostsResponse struct {
	Posts []Post `json:"posts"`
	Page  int    `json:"page"`
	Total int64  `json:"total"`
}

type UploadPostImageRequest struct {
	// Image data is included in form-data.
}

type UploadPostImageResponse struct {
	URL string `json:"url"`
}
