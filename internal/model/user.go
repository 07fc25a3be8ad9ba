package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Followers int    `json:"followers"`
	CreatedAt string `json:"created_at,omitempty"`
}

type GetUserRequest struct {
	Name string `json:"name"`
}

type GetUserResponse struct {
	User User `json:"user"`
}
