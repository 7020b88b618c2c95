package models

import "time"

// RefreshToken persists a hashed refresh token so sessions survive restarts
// and can be revoked individually or per user.
type RefreshToken struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenHash string    `bson:"token_hash" json:"token_hash"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// PasswordReset is a one-time reset token sent by email.
type PasswordReset struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	TokenHash string    `bson:"token_hash" json:"token_hash"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Used      bool      `bson:"used" json:"used"`
}
