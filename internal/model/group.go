package model

type Group struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupSlug string `json:"group_slug"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupsRequest struct{}

type GetGroupsResponse struct {
	Groups []Group `json:"groups"`
}
