package dto

import (
	"time"

	"github.com/mtl/myhackx-api/internal/models"
)

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	Skills      []string  `json:"skills"`
	Bio         string    `json:"bio,omitempty"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"created_at"`
	LastLogin   time.Time `json:"last_login"`
}

func NewUserResponse(u *models.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:          u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsAdmin:     u.IsAdmin,
		Skills:      skills,
		Bio:         u.Bio,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	PhotoURL    string   `json:"photo_url"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
}
