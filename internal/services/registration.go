package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

// RegistrationService owns the team roster state machine: create, invite,
// accept, decline, join, leave, remove, leadership transfer. It keeps the
// Team, Event, TeamInvitation and Notification collections consistent across
// multi-document updates, compensating when a later write in a sequence
// fails. Notification and email side effects are fire and forget; they are
// logged on failure but never fail the operation that triggered them.
type RegistrationService struct {
	events        store.EventStore
	teams         store.TeamStore
	invitations   store.InvitationStore
	users         store.UserStore
	notifications *NotificationService
	email         *EmailService
	logger        *zap.Logger
}

func NewRegistrationService(
	events store.EventStore,
	teams store.TeamStore,
	invitations store.InvitationStore,
	users store.UserStore,
	notifications *NotificationService,
	email *EmailService,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		teams:         teams,
		invitations:   invitations,
		users:         users,
		notifications: notifications,
		email:         email,
		logger:        logger,
	}
}

func (s *RegistrationService) getEvent(ctx context.Context, eventID string) (*models.HackathonEvent, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *RegistrationService) getTeam(ctx context.Context, teamID string) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func checkDeadline(event *models.HackathonEvent) error {
	if !event.RegistrationDeadline.IsZero() && time.Now().After(event.RegistrationDeadline) {
		return ErrRegistrationClosed
	}
	return nil
}

// createLinkedTeam writes the team then links it to the event, deleting the
// team again if the link write fails so no orphan is left behind.
func (s *RegistrationService) createLinkedTeam(ctx context.Context, team *models.Team) error {
	if err := s.teams.Create(ctx, team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	if err := s.events.LinkTeam(ctx, team.EventID, team.ID); err != nil {
		if delErr := s.teams.Delete(ctx, team.ID); delErr != nil {
			s.logger.Error("failed to roll back team after link failure",
				zap.String("team_id", team.ID), zap.Error(delErr))
		}
		return fmt.Errorf("failed to link team to event: %w", err)
	}
	return nil
}

// RegisterIndividual registers the user as a one-person team with the user
// as leader.
func (s *RegistrationService) RegisterIndividual(ctx context.Context, eventID, userID string) (*models.Team, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(event); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if existing, err := s.findUserTeam(ctx, eventID, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	team := &models.Team{
		ID:       uuid.NewString(),
		Name:     user.DisplayName,
		EventID:  eventID,
		LeaderID: userID,
		Members: []models.TeamMember{
			{UID: userID, Email: user.Email, Role: models.RoleLeader},
		},
		Status: models.TeamStatusForming,
	}
	if team.Name == "" {
		team.Name = user.Email
	}

	if err := s.createLinkedTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// RegisterTeam creates a team with the leader as sole initial member and
// sends a PENDING invitation to every other listed email. Team size is not
// validated here; members join asynchronously through their invitations and
// the size rule is enforced at join time.
func (s *RegistrationService) RegisterTeam(ctx context.Context, eventID, teamName string, memberEmails []string, leaderID string) (*models.Team, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(event); err != nil {
		return nil, err
	}

	leader, err := s.users.GetByID(ctx, leaderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if existing, err := s.findUserTeam(ctx, eventID, leaderID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	team := &models.Team{
		ID:       uuid.NewString(),
		Name:     teamName,
		EventID:  eventID,
		LeaderID: leaderID,
		Members: []models.TeamMember{
			{UID: leaderID, Email: leader.Email, Role: models.RoleLeader},
		},
		Status: models.TeamStatusForming,
	}

	if err := s.createLinkedTeam(ctx, team); err != nil {
		return nil, err
	}

	seen := map[string]bool{leader.Email: true}
	for _, email := range memberEmails {
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		s.invite(ctx, team, event, leader.Email, email)
	}

	return team, nil
}

// invite creates the PENDING invitation, its TEAM_INVITATION notification
// and the invitation email. Only an invitation write failure is reported via
// log; the team registration itself has already succeeded.
func (s *RegistrationService) invite(ctx context.Context, team *models.Team, event *models.HackathonEvent, inviterEmail, inviteeEmail string) {
	inv := &models.TeamInvitation{
		ID:           uuid.NewString(),
		TeamID:       team.ID,
		EventID:      event.ID,
		TeamName:     team.Name,
		InviterEmail: inviterEmail,
		InviteeEmail: inviteeEmail,
		Status:       models.InvitationPending,
		CreatedAt:    time.Now(),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		s.logger.Error("failed to create invitation",
			zap.String("team_id", team.ID), zap.String("invitee", inviteeEmail), zap.Error(err))
		return
	}

	if _, err := s.notifications.Notify(ctx, inviteeEmail,
		"Team Invitation",
		fmt.Sprintf("%s has invited you to join team %s", inviterEmail, team.Name),
		models.NotificationTeamInvitation,
		map[string]string{"teamId": team.ID, "eventId": event.ID},
	); err != nil {
		s.logger.Warn("failed to create invitation notification",
			zap.String("invitee", inviteeEmail), zap.Error(err))
	}

	if err := s.email.SendTeamInvitation(inviteeEmail, team.Name, inviterEmail, event); err != nil {
		s.logger.Warn("failed to send invitation email",
			zap.String("invitee", inviteeEmail), zap.Error(err))
	}
}

// JoinTeam appends the user as a MEMBER, enforcing the event's max team size
// and registration deadline.
func (s *RegistrationService) JoinTeam(ctx context.Context, teamID, eventID, userID string) (*models.Team, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := checkDeadline(event); err != nil {
		return nil, err
	}

	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(userID) {
		return nil, ErrAlreadyRegistered
	}
	if event.MaxTeamSize > 0 && len(team.Members) >= event.MaxTeamSize {
		return nil, ErrTeamFull
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	member := models.TeamMember{UID: userID, Email: user.Email, Role: models.RoleMember}
	if err := s.teams.AddMember(ctx, teamID, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	team.Members = append(team.Members, member)

	s.notifyMemberJoined(ctx, team, event, user.Email)
	return team, nil
}

func (s *RegistrationService) notifyMemberJoined(ctx context.Context, team *models.Team, event *models.HackathonEvent, memberEmail string) {
	leaderEmail := ""
	for _, m := range team.Members {
		if m.UID == team.LeaderID {
			leaderEmail = m.Email
			break
		}
	}
	if leaderEmail == "" || leaderEmail == memberEmail {
		return
	}

	if _, err := s.notifications.Notify(ctx, leaderEmail,
		"New Team Member",
		fmt.Sprintf("%s has joined your team %s", memberEmail, team.Name),
		models.NotificationMemberJoined,
		map[string]string{"teamId": team.ID, "eventId": team.EventID},
	); err != nil {
		s.logger.Warn("failed to create member-joined notification",
			zap.String("team_id", team.ID), zap.Error(err))
	}

	if err := s.email.SendMemberJoined(leaderEmail, memberEmail, team.Name, event); err != nil {
		s.logger.Warn("failed to send member-joined email",
			zap.String("team_id", team.ID), zap.Error(err))
	}
}

// LeaveTeam removes the caller from the team. The last member leaving
// deletes the team and unlinks it from the event. A leader leaving with
// others remaining promotes the earliest remaining member, the same rule
// UnregisterFromEvent applies.
func (s *RegistrationService) LeaveTeam(ctx context.Context, teamID, eventID, userID string) error {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}
	idx := team.MemberIndex(userID)
	if idx < 0 {
		return ErrMemberNotFound
	}
	return s.removeFromRoster(ctx, team, idx)
}

// UnregisterFromEvent finds the caller's team on the event and removes them,
// transferring leadership or deleting the team as needed. No team found is a
// no-op.
func (s *RegistrationService) UnregisterFromEvent(ctx context.Context, eventID, userID string) error {
	team, err := s.findUserTeam(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if team == nil {
		return nil
	}
	return s.removeFromRoster(ctx, team, team.MemberIndex(userID))
}

func (s *RegistrationService) findUserTeam(ctx context.Context, eventID, userID string) (*models.Team, error) {
	teams, err := s.teams.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		if teams[i].HasMember(userID) {
			return &teams[i], nil
		}
	}
	return nil, nil
}

// removeFromRoster removes the member at idx and restores the roster
// invariant: a non-empty team has exactly one LEADER whose uid matches
// LeaderID, the earliest-joined member winning promotion.
func (s *RegistrationService) removeFromRoster(ctx context.Context, team *models.Team, idx int) error {
	leaving := team.Members[idx]
	remaining := append(append([]models.TeamMember{}, team.Members[:idx]...), team.Members[idx+1:]...)

	if len(remaining) == 0 {
		if err := s.teams.Delete(ctx, team.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete team: %w", err)
		}
		if err := s.events.UnlinkTeam(ctx, team.EventID, team.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to unlink team from event: %w", err)
		}
		return nil
	}

	leaderID := team.LeaderID
	if leaving.UID == team.LeaderID {
		leaderID = remaining[0].UID
	}
	for i := range remaining {
		if remaining[i].UID == leaderID {
			remaining[i].Role = models.RoleLeader
		} else {
			remaining[i].Role = models.RoleMember
		}
	}

	if err := s.teams.SetRoster(ctx, team.ID, remaining, leaderID); err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}
	team.Members = remaining
	team.LeaderID = leaderID
	return nil
}

// AcceptTeamInvitation adds the caller to the team and transitions the
// invitation PENDING -> ACCEPTED. A non-pending invitation is a conflict and
// leaves the member list untouched. The member is added before the
// transition and removed again if the transition loses a race, so a
// concurrent accept/decline of the same invitation cannot leave a member
// behind with a non-accepted invitation.
func (s *RegistrationService) AcceptTeamInvitation(ctx context.Context, invitationID, userID string) (*models.Team, error) {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if inv.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	team, err := s.getTeam(ctx, inv.TeamID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	added := false
	member := models.TeamMember{UID: userID, Email: user.Email, Role: models.RoleMember}
	if !team.HasMember(userID) {
		if err := s.teams.AddMember(ctx, team.ID, member); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
		team.Members = append(team.Members, member)
		added = true
	}

	ok, err := s.invitations.TransitionFromPending(ctx, invitationID, models.InvitationAccepted)
	if err != nil || !ok {
		if added {
			if remErr := s.teams.RemoveMember(ctx, team.ID, userID); remErr != nil {
				s.logger.Error("failed to roll back member after invitation race",
					zap.String("invitation_id", invitationID), zap.Error(remErr))
			} else {
				team.Members = team.Members[:len(team.Members)-1]
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update invitation: %w", err)
		}
		return nil, ErrInvitationNotPending
	}

	event, err := s.getEvent(ctx, inv.EventID)
	if err != nil {
		s.logger.Warn("invitation references missing event",
			zap.String("invitation_id", invitationID), zap.Error(err))
		return team, nil
	}
	s.notifyMemberJoined(ctx, team, event, user.Email)
	return team, nil
}

// DeclineTeamInvitation transitions the invitation PENDING -> DECLINED and
// notifies the inviter. Like accept, declining requires PENDING status.
func (s *RegistrationService) DeclineTeamInvitation(ctx context.Context, invitationID string) error {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}

	ok, err := s.invitations.TransitionFromPending(ctx, invitationID, models.InvitationDeclined)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if !ok {
		return ErrInvitationNotPending
	}

	if _, err := s.notifications.Notify(ctx, inv.InviterEmail,
		"Invitation Declined",
		fmt.Sprintf("%s has declined to join team %s", inv.InviteeEmail, inv.TeamName),
		models.NotificationInvitationDeclined,
		map[string]string{"teamId": inv.TeamID, "eventId": inv.EventID},
	); err != nil {
		s.logger.Warn("failed to create declined notification",
			zap.String("invitation_id", invitationID), zap.Error(err))
	}

	if event, err := s.getEvent(ctx, inv.EventID); err == nil {
		if err := s.email.SendInvitationDeclined(inv.InviterEmail, inv.InviteeEmail, inv.TeamName, event); err != nil {
			s.logger.Warn("failed to send declined email",
				zap.String("invitation_id", invitationID), zap.Error(err))
		}
	}
	return nil
}

// RemoveTeamMember removes memberUID from the team. Only the leader may do
// this, and the leader cannot remove themselves; they leave or unregister
// instead.
func (s *RegistrationService) RemoveTeamMember(ctx context.Context, teamID, callerID, memberUID string) error {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != callerID {
		return ErrNotTeamLeader
	}
	if memberUID == callerID {
		return ErrNotTeamLeader
	}
	idx := team.MemberIndex(memberUID)
	if idx < 0 {
		return ErrMemberNotFound
	}
	removed := team.Members[idx]

	if err := s.removeFromRoster(ctx, team, idx); err != nil {
		return err
	}

	if _, err := s.notifications.Notify(ctx, removed.Email,
		"Team Membership Update",
		fmt.Sprintf("You have been removed from team %s", team.Name),
		models.NotificationMemberRemoved,
		map[string]string{"teamId": team.ID, "eventId": team.EventID},
	); err != nil {
		s.logger.Warn("failed to create member-removed notification",
			zap.String("team_id", team.ID), zap.Error(err))
	}

	if event, err := s.getEvent(ctx, team.EventID); err == nil {
		if err := s.email.SendMemberRemoved(removed.Email, team.Name, event); err != nil {
			s.logger.Warn("failed to send member-removed email",
				zap.String("team_id", team.ID), zap.Error(err))
		}
	}
	return nil
}

// TeamByID returns a single team.
func (s *RegistrationService) TeamByID(ctx context.Context, teamID string) (*models.Team, error) {
	return s.getTeam(ctx, teamID)
}

// TeamsForEvent returns every team registered for the event.
func (s *RegistrationService) TeamsForEvent(ctx context.Context, eventID string) ([]models.Team, error) {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.teams.ListByEvent(ctx, eventID)
}

// PendingInvitations lists the caller's open invitations.
func (s *RegistrationService) PendingInvitations(ctx context.Context, inviteeEmail string) ([]models.TeamInvitation, error) {
	return s.invitations.ListPendingByInvitee(ctx, inviteeEmail)
}
