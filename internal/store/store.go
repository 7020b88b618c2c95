package store

import (
	"context"
	"errors"
	"time"

	"github.com/mtl/myhackx-api/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// EventFilter holds the equality filters supported by the events query.
// Zero values mean "no filter".
type EventFilter struct {
	Status   string
	Location string
}

type UserStore interface {
	// Put writes the full user document, creating or replacing it.
	Put(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, uid string) error
	SetLastLogin(ctx context.Context, uid string, at time.Time) error
}

type EventStore interface {
	Put(ctx context.Context, event *models.HackathonEvent) error
	GetByID(ctx context.Context, id string) (*models.HackathonEvent, error)
	List(ctx context.Context, filter EventFilter) ([]models.HackathonEvent, error)
	Delete(ctx context.Context, id string) error
	// LinkTeam and UnlinkTeam maintain the event's team-id list with
	// array-union/array-remove semantics.
	LinkTeam(ctx context.Context, eventID, teamID string) error
	UnlinkTeam(ctx context.Context, eventID, teamID string) error
}

type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Team, error)
	Delete(ctx context.Context, id string) error
	// AddMember appends a member unless an entry with the same uid exists.
	AddMember(ctx context.Context, teamID string, member models.TeamMember) error
	// RemoveMember removes the member entry matching uid.
	RemoveMember(ctx context.Context, teamID, uid string) error
	// SetRoster replaces the member list and leader id in one write. Used
	// for leadership transfer, which touches both fields.
	SetRoster(ctx context.Context, teamID string, members []models.TeamMember, leaderID string) error
}

type InvitationStore interface {
	Create(ctx context.Context, inv *models.TeamInvitation) error
	GetByID(ctx context.Context, id string) (*models.TeamInvitation, error)
	ListPendingByInvitee(ctx context.Context, email string) ([]models.TeamInvitation, error)
	// TransitionFromPending sets the status iff it is still PENDING and
	// reports whether the transition happened.
	TransitionFromPending(ctx context.Context, id, to string) (bool, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByRecipient returns notifications for the email, newest first.
	ListByRecipient(ctx context.Context, email string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// ValidateRefreshToken returns the owning user id of an unexpired token.
	ValidateRefreshToken(ctx context.Context, tokenHash string) (string, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID string) error
	CleanupExpired(ctx context.Context) error

	CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error
	// ConsumePasswordReset marks an unexpired, unused reset token as used
	// and returns the email it was issued for.
	ConsumePasswordReset(ctx context.Context, tokenHash string) (string, error)
}

// Stores bundles the per-collection stores. The backend (MongoDB or
// in-memory) is chosen at construction and injected into services; nothing
// downstream knows which one it got.
type Stores struct {
	Users         UserStore
	Events        EventStore
	Teams         TeamStore
	Invitations   InvitationStore
	Notifications NotificationStore
	Tokens        TokenStore
}
