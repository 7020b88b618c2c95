package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

// TokenService persists hashed refresh tokens and password reset tokens so
// they can be revoked server side.
type TokenService struct {
	tokens store.TokenStore
	logger *zap.Logger
}

func NewTokenService(tokens store.TokenStore, logger *zap.Logger) *TokenService {
	return &TokenService{tokens: tokens, logger: logger}
}

func (s *TokenService) StoreRefreshToken(ctx context.Context, userID, token string, expiry time.Duration) error {
	if err := s.tokens.StoreRefreshToken(ctx, userID, HashToken(token), time.Now().Add(expiry)); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// ValidateRefreshToken checks the token is on record and unexpired, returning
// the owning user id.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.ValidateRefreshToken(ctx, HashToken(token))
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.tokens.RevokeRefreshToken(ctx, HashToken(token))
}

func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return s.tokens.RevokeAllUserTokens(ctx, userID)
}

// CreatePasswordReset issues a one-time reset token for the given email and
// returns the raw token for delivery. Only the hash is stored.
func (s *TokenService) CreatePasswordReset(ctx context.Context, email string, expiry time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	pr := &models.PasswordReset{
		ID:        uuid.NewString(),
		Email:     email,
		TokenHash: HashToken(raw),
		ExpiresAt: time.Now().Add(expiry),
	}
	if err := s.tokens.CreatePasswordReset(ctx, pr); err != nil {
		return "", fmt.Errorf("failed to store password reset: %w", err)
	}
	return raw, nil
}

// ConsumePasswordReset marks the reset token used and returns the email it
// was issued for.
func (s *TokenService) ConsumePasswordReset(ctx context.Context, token string) (string, error) {
	return s.tokens.ConsumePasswordReset(ctx, HashToken(token))
}

// StartCleanup runs periodic deletion of expired tokens until ctx is done.
func (s *TokenService) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.tokens.CleanupExpired(ctx); err != nil {
					s.logger.Warn("token cleanup failed", zap.Error(err))
				}
			}
		}
	}()
}
