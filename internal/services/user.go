package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/oauth"
	"github.com/mtl/myhackx-api/internal/store"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a password account. Email must be unused.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		Provider:     models.ProviderPassword,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    now,
	}

	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies email/password credentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.SetLastLogin(ctx, user.UID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	return user, nil
}

// FindOrCreateFromOAuth resolves an OAuth identity to a local account,
// creating one on first login and refreshing the profile on subsequent ones.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, info.Email)
	if err == nil {
		changed := false
		if info.Name != "" && user.DisplayName != info.Name {
			user.DisplayName = info.Name
			changed = true
		}
		if info.AvatarURL != "" && user.PhotoURL != info.AvatarURL {
			user.PhotoURL = info.AvatarURL
			changed = true
		}
		user.LastLogin = time.Now()
		if changed {
			if err := s.users.Put(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		} else if err := s.users.SetLastLogin(ctx, user.UID, user.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to update last login: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	user = &models.User{
		UID:         uuid.NewString(),
		Email:       info.Email,
		DisplayName: info.Name,
		PhotoURL:    info.AvatarURL,
		Provider:    info.Provider,
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile replaces the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, uid, displayName, photoURL, bio string, skills []string) (*models.User, error) {
	user, err := s.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		user.DisplayName = displayName
	}
	if photoURL != "" {
		user.PhotoURL = photoURL
	}
	user.Bio = bio
	if skills != nil {
		user.Skills = skills
	}

	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ChangePassword sets a new bcrypt hash for the account.
func (s *UserService) ChangePassword(ctx context.Context, email, newPassword string) error {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Provider = models.ProviderPassword

	if err := s.users.Put(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetAdmin toggles the admin flag.
func (s *UserService) SetAdmin(ctx context.Context, uid string, admin bool) (*models.User, error) {
	user, err := s.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = admin
	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, uid string) error {
	if err := s.users.Delete(ctx, uid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
