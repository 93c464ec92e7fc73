package dto

import "nomad-nest/internal/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message       string  `json:"message"`
	UserID        string  `json:"user_id"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
}

type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

func NewRegisterResponse(user *models.User) RegisterResponse {
	return RegisterResponse{
		Message:       "User created successfully",
		UserID:        user.ID,
		ProfilePicURL: user.ProfilePicURL,
	}
}
