package model

import "github.com/inkpost/backend/pkg/jwt"

// AccessToken aliases the claims object carried by the access token, so
// domain code keeps referring to it through the model package.
type AccessToken = jwt.AccessToken

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func (r LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

func (r LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}
