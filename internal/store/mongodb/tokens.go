package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

type TokenStore struct {
	refresh *mongo.Collection
	resets  *mongo.Collection
}

func (s *TokenStore) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := s.refresh.InsertOne(ctx, models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func (s *TokenStore) ValidateRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	var rt models.RefreshToken
	err := s.refresh.FindOne(ctx, bson.M{
		"token_hash": tokenHash,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return rt.UserID, nil
}

func (s *TokenStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.refresh.DeleteOne(ctx, bson.M{"token_hash": tokenHash})
	return err
}

func (s *TokenStore) RevokeAllUserTokens(ctx context.Context, userID string) error {
	_, err := s.refresh.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

func (s *TokenStore) CleanupExpired(ctx context.Context) error {
	now := time.Now().UTC()
	if _, err := s.refresh.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}}); err != nil {
		return err
	}
	_, err := s.resets.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	return err
}

func (s *TokenStore) CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error {
	_, err := s.resets.InsertOne(ctx, pr)
	return err
}

func (s *TokenStore) ConsumePasswordReset(ctx context.Context, tokenHash string) (string, error) {
	var pr models.PasswordReset
	err := s.resets.FindOneAndUpdate(ctx,
		bson.M{
			"token_hash": tokenHash,
			"used":       false,
			"expires_at": bson.M{"$gt": time.Now().UTC()},
		},
		bson.M{"$set": bson.M{"used": true}},
	).Decode(&pr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", store.ErrNotFound
		}
		return "", err
	}
	return pr.Email, nil
}
