package models

import "time"

// Auth providers recorded on the user document.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

type User struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	DisplayName  string    `bson:"display_name" json:"display_name"`
	PhotoURL     string    `bson:"photo_url" json:"photo_url"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	Skills       []string  `bson:"skills" json:"skills"`
	Bio          string    `bson:"bio" json:"bio"`
	Provider     string    `bson:"provider" json:"provider"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	LastLogin    time.Time `bson:"last_login" json:"last_login"`
}
