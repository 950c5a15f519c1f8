// file: model/request.go

package model

// LoginRequest defines the payload for admin authentication.
// It includes validation tags to ensure data integrity at the entry point.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	Token string     `json:"token"`
	User  *Principal `json:"user"`
}
