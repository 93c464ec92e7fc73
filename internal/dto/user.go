package dto

import "nomad-nest/internal/models"

type UserResponse struct {
	UserID        string  `json:"user_id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	ProfilePicURL *string `json:"profile_pic_url"`
	CreatedAt     string  `json:"created_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:        user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		ProfilePicURL: user.ProfilePicURL,
		CreatedAt:     formatTime(user.CreatedAt),
	}
}

func NewUsersResponse(users []*models.User) UsersResponse {
	resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, user := range users {
		resp.Users = append(resp.Users, NewUserResponse(user))
	}
	resp.Count = len(resp.Users)
	return resp
}
