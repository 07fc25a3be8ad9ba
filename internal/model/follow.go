package model

type FollowRequest struct {
	AuthorName string `json:"author_name"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	AuthorName string `json:"author_name"`
}

type UnfollowResponse struct{}

type GetFollowingRequest struct{}

type GetFollowingResponse struct {
	Authors []User `json:"authors"`
}
