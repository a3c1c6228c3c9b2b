package dto

import (
	"time"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// SignUpRequest is the JSON payload for account creation.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// SignInRequest is the JSON payload for sign-in. Password doubles as the
// admin access code check.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is returned after a successful sign-up or sign-in.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse describes the currently authenticated session.
type SessionResponse struct {
	User       UserResponse `json:"user"`
	SignedInAt time.Time    `json:"signed_in_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Plan:      model.Plan,
		Premium:   model.IsPremium(),
		CreatedAt: model.CreatedAt,
	}
}
