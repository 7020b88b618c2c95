package handlers

import (
	"context"
	"time"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/oauth"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/store"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, uid, displayName, photoURL, bio string, skills []string) (*models.User, error)
	ChangePassword(ctx context.Context, email, newPassword string) error
	SetAdmin(ctx context.Context, uid string, admin bool) (*models.User, error)
	Delete(ctx context.Context, uid string) error
}

// EventServiceInterface defines the methods used by handlers from EventService
type EventServiceInterface interface {
	Create(ctx context.Context, organizerID string, in services.CreateEventInput) (*models.HackathonEvent, error)
	GetByID(ctx context.Context, id string) (*models.HackathonEvent, error)
	GetDetail(ctx context.Context, id string) (*models.HackathonEvent, error)
	List(ctx context.Context, filter store.EventFilter) ([]models.HackathonEvent, error)
	Update(ctx context.Context, id string, in services.UpdateEventInput) (*models.HackathonEvent, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationServiceInterface defines the methods used by handlers from RegistrationService
type RegistrationServiceInterface interface {
	RegisterIndividual(ctx context.Context, eventID, userID string) (*models.Team, error)
	RegisterTeam(ctx context.Context, eventID, teamName string, memberEmails []string, leaderID string) (*models.Team, error)
	JoinTeam(ctx context.Context, teamID, eventID, userID string) (*models.Team, error)
	LeaveTeam(ctx context.Context, teamID, eventID, userID string) error
	UnregisterFromEvent(ctx context.Context, eventID, userID string) error
	AcceptTeamInvitation(ctx context.Context, invitationID, userID string) (*models.Team, error)
	DeclineTeamInvitation(ctx context.Context, invitationID string) error
	RemoveTeamMember(ctx context.Context, teamID, callerID, memberUID string) error
	TeamByID(ctx context.Context, teamID string) (*models.Team, error)
	TeamsForEvent(ctx context.Context, eventID string) ([]models.Team, error)
	PendingInvitations(ctx context.Context, inviteeEmail string) ([]models.TeamInvitation, error)
}

// NotificationServiceInterface defines the methods used by handlers from NotificationService
type NotificationServiceInterface interface {
	Notify(ctx context.Context, recipientEmail, title, message, notifType string, data map[string]string) (*models.Notification, error)
	Broadcast(ctx context.Context, title, message, notifType string, data map[string]string) (int, error)
	ListForRecipient(ctx context.Context, email string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, email string) error
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID, token string, expiry time.Duration) error
	ValidateRefreshToken(ctx context.Context, token string) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID string) error
	CreatePasswordReset(ctx context.Context, email string, expiry time.Duration) (string, error)
	ConsumePasswordReset(ctx context.Context, token string) (string, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID, email string, admin bool) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (string, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendPasswordReset(to, resetToken string, expiry time.Duration) error
}
