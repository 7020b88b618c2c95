package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/oauth"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/store"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, uid, displayName, photoURL, bio string, skills []string) (*models.User, error) {
	args := m.Called(ctx, uid, displayName, photoURL, bio, skills)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, email, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

func (m *MockUserService) SetAdmin(ctx context.Context, uid string, admin bool) (*models.User, error) {
	args := m.Called(ctx, uid, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockEventService mocks the EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, organizerID string, in services.CreateEventInput) (*models.HackathonEvent, error) {
	args := m.Called(ctx, organizerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HackathonEvent), args.Error(1)
}

func (m *MockEventService) GetByID(ctx context.Context, id string) (*models.HackathonEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HackathonEvent), args.Error(1)
}

func (m *MockEventService) GetDetail(ctx context.Context, id string) (*models.HackathonEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HackathonEvent), args.Error(1)
}

func (m *MockEventService) List(ctx context.Context, filter store.EventFilter) ([]models.HackathonEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HackathonEvent), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id string, in services.UpdateEventInput) (*models.HackathonEvent, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HackathonEvent), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRegistrationService mocks the RegistrationService
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) RegisterIndividual(ctx context.Context, eventID, userID string) (*models.Team, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRegistrationService) RegisterTeam(ctx context.Context, eventID, teamName string, memberEmails []string, leaderID string) (*models.Team, error) {
	args := m.Called(ctx, eventID, teamName, memberEmails, leaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRegistrationService) JoinTeam(ctx context.Context, teamID, eventID, userID string) (*models.Team, error) {
	args := m.Called(ctx, teamID, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRegistrationService) LeaveTeam(ctx context.Context, teamID, eventID, userID string) error {
	args := m.Called(ctx, teamID, eventID, userID)
	return args.Error(0)
}

func (m *MockRegistrationService) UnregisterFromEvent(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockRegistrationService) AcceptTeamInvitation(ctx context.Context, invitationID, userID string) (*models.Team, error) {
	args := m.Called(ctx, invitationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRegistrationService) DeclineTeamInvitation(ctx context.Context, invitationID string) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}

func (m *MockRegistrationService) RemoveTeamMember(ctx context.Context, teamID, callerID, memberUID string) error {
	args := m.Called(ctx, teamID, callerID, memberUID)
	return args.Error(0)
}

func (m *MockRegistrationService) TeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockRegistrationService) TeamsForEvent(ctx context.Context, eventID string) ([]models.Team, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockRegistrationService) PendingInvitations(ctx context.Context, inviteeEmail string) ([]models.TeamInvitation, error) {
	args := m.Called(ctx, inviteeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvitation), args.Error(1)
}

// MockNotificationService mocks the NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, recipientEmail, title, message, notifType string, data map[string]string) (*models.Notification, error) {
	args := m.Called(ctx, recipientEmail, title, message, notifType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) Broadcast(ctx context.Context, title, message, notifType string, data map[string]string) (int, error) {
	args := m.Called(ctx, title, message, notifType, data)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) ListForRecipient(ctx context.Context, email string) ([]models.Notification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID, token string, expiry time.Duration) error {
	args := m.Called(ctx, userID, token, expiry)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenService) CreatePasswordReset(ctx context.Context, email string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, email, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ConsumePasswordReset(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordReset(to, resetToken string, expiry time.Duration) error {
	args := m.Called(to, resetToken, expiry)
	return args.Error(0)
}
