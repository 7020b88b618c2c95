package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	stores  store.Stores
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(stores store.Stores) *Fixtures {
	return &Fixtures{stores: stores}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		UID:         uuid.NewString(),
		Email:       fmt.Sprintf("user%d@example.com", f.counter),
		DisplayName: fmt.Sprintf("Test User %d", f.counter),
		Provider:    models.ProviderPassword,
		CreatedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := f.stores.Users.Put(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithDisplayName sets the user's display name
func WithDisplayName(name string) UserOption {
	return func(u *models.User) {
		u.DisplayName = name
	}
}

// WithAdmin marks the user as an admin
func WithAdmin() UserOption {
	return func(u *models.User) {
		u.IsAdmin = true
	}
}

// CreateEvent creates a test event open for registration
func (f *Fixtures) CreateEvent(t *testing.T, opts ...EventOption) *models.HackathonEvent {
	t.Helper()
	f.counter++
	now := time.Now()

	event := &models.HackathonEvent{
		ID:                   uuid.NewString(),
		Name:                 fmt.Sprintf("Test Event %d", f.counter),
		Location:             "Berlin",
		StartDate:            now.Add(72 * time.Hour),
		EndDate:              now.Add(120 * time.Hour),
		RegistrationDeadline: now.Add(48 * time.Hour),
		MinTeamSize:          1,
		MaxTeamSize:          4,
		Status:               models.EventStatusUpcoming,
		Teams:                []string{},
	}

	for _, opt := range opts {
		opt(event)
	}

	if err := f.stores.Events.Put(context.Background(), event); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

// EventOption configures a test event
type EventOption func(*models.HackathonEvent)

// WithMaxTeamSize sets the event's team size cap
func WithMaxTeamSize(size int) EventOption {
	return func(e *models.HackathonEvent) {
		e.MaxTeamSize = size
	}
}

// WithDeadline sets the event's registration deadline
func WithDeadline(deadline time.Time) EventOption {
	return func(e *models.HackathonEvent) {
		e.RegistrationDeadline = deadline
	}
}

// CreateTeam creates a test team led by leader and links it to the event
func (f *Fixtures) CreateTeam(t *testing.T, event *models.HackathonEvent, leader *models.User, name string) *models.Team {
	t.Helper()
	ctx := context.Background()

	team := &models.Team{
		ID:       uuid.NewString(),
		Name:     name,
		EventID:  event.ID,
		LeaderID: leader.UID,
		Status:   models.TeamStatusForming,
		Members: []models.TeamMember{
			{UID: leader.UID, Email: leader.Email, Role: models.RoleLeader},
		},
	}

	if err := f.stores.Teams.Create(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if err := f.stores.Events.LinkTeam(ctx, event.ID, team.ID); err != nil {
		t.Fatalf("failed to link team to event: %v", err)
	}
	return team
}

// CreateInvitation creates a pending invitation to the team for inviteeEmail
func (f *Fixtures) CreateInvitation(t *testing.T, team *models.Team, inviterEmail, inviteeEmail string) *models.TeamInvitation {
	t.Helper()

	invitation := &models.TeamInvitation{
		ID:           uuid.NewString(),
		TeamID:       team.ID,
		EventID:      team.EventID,
		TeamName:     team.Name,
		InviterEmail: inviterEmail,
		InviteeEmail: inviteeEmail,
		Status:       models.InvitationPending,
		CreatedAt:    time.Now(),
	}

	if err := f.stores.Invitations.Create(context.Background(), invitation); err != nil {
		t.Fatalf("failed to create invitation: %v", err)
	}
	return invitation
}
