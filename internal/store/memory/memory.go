// Package memory implements the store interfaces with mutex-guarded maps.
// It backs service unit tests and the BACKEND=memory configuration, taking
// the place of the original client's global test-mode switch.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/store"
)

// NewStores returns a fully in-memory store bundle sharing one lock.
func NewStores() store.Stores {
	db := &database{
		users:         map[string]models.User{},
		events:        map[string]models.HackathonEvent{},
		teams:         map[string]models.Team{},
		invitations:   map[string]models.TeamInvitation{},
		notifications: map[string]models.Notification{},
		refresh:       map[string]models.RefreshToken{},
		resets:        map[string]models.PasswordReset{},
	}
	return store.Stores{
		Users:         &userStore{db},
		Events:        &eventStore{db},
		Teams:         &teamStore{db},
		Invitations:   &invitationStore{db},
		Notifications: &notificationStore{db},
		Tokens:        &tokenStore{db},
	}
}

type database struct {
	mu            sync.RWMutex
	users         map[string]models.User
	events        map[string]models.HackathonEvent
	teams         map[string]models.Team
	invitations   map[string]models.TeamInvitation
	notifications map[string]models.Notification
	refresh       map[string]models.RefreshToken
	resets        map[string]models.PasswordReset
}

func copyMembers(ms []models.TeamMember) []models.TeamMember {
	out := make([]models.TeamMember, len(ms))
	copy(out, ms)
	return out
}

func copyStrings(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}

func copyTeam(t models.Team) models.Team {
	t.Members = copyMembers(t.Members)
	return t
}

func copyEvent(e models.HackathonEvent) models.HackathonEvent {
	e.Tags = copyStrings(e.Tags)
	e.Prizes = copyStrings(e.Prizes)
	e.Teams = copyStrings(e.Teams)
	e.TeamObjects = nil
	return e
}

type userStore struct{ db *database }

func (s *userStore) Put(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.users[user.UID] = *user
	return nil
}

func (s *userStore) GetByID(_ context.Context, uid string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	u, ok := s.db.users[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	for _, u := range s.db.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) List(_ context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	users := make([]models.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *userStore) Delete(_ context.Context, uid string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[uid]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.users, uid)
	return nil
}

func (s *userStore) SetLastLogin(_ context.Context, uid string, at time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[uid]
	if !ok {
		return store.ErrNotFound
	}
	u.LastLogin = at
	s.db.users[uid] = u
	return nil
}

type eventStore struct{ db *database }

func (s *eventStore) Put(_ context.Context, event *models.HackathonEvent) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.events[event.ID] = copyEvent(*event)
	return nil
}

func (s *eventStore) GetByID(_ context.Context, id string) (*models.HackathonEvent, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	e, ok := s.db.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	e = copyEvent(e)
	return &e, nil
}

func (s *eventStore) List(_ context.Context, filter store.EventFilter) ([]models.HackathonEvent, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var events []models.HackathonEvent
	for _, e := range s.db.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Location != "" && e.Location != filter.Location {
			continue
		}
		events = append(events, copyEvent(e))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.Before(events[j].StartDate) })
	return events, nil
}

func (s *eventStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.events, id)
	return nil
}

func (s *eventStore) LinkTeam(_ context.Context, eventID, teamID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.events[eventID]
	if !ok {
		return store.ErrNotFound
	}
	for _, id := range e.Teams {
		if id == teamID {
			return nil
		}
	}
	e.Teams = append(copyStrings(e.Teams), teamID)
	s.db.events[eventID] = e
	return nil
}

func (s *eventStore) UnlinkTeam(_ context.Context, eventID, teamID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.events[eventID]
	if !ok {
		return store.ErrNotFound
	}
	teams := make([]string, 0, len(e.Teams))
	for _, id := range e.Teams {
		if id != teamID {
			teams = append(teams, id)
		}
	}
	e.Teams = teams
	s.db.events[eventID] = e
	return nil
}

type teamStore struct{ db *database }

func (s *teamStore) Create(_ context.Context, team *models.Team) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.teams[team.ID] = copyTeam(*team)
	return nil
}

func (s *teamStore) GetByID(_ context.Context, id string) (*models.Team, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	t, ok := s.db.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t = copyTeam(t)
	return &t, nil
}

func (s *teamStore) ListByEvent(_ context.Context, eventID string) ([]models.Team, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var teams []models.Team
	for _, t := range s.db.teams {
		if t.EventID == eventID {
			teams = append(teams, copyTeam(t))
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (s *teamStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.teams[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.teams, id)
	return nil
}

func (s *teamStore) AddMember(_ context.Context, teamID string, member models.TeamMember) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.teams[teamID]
	if !ok {
		return store.ErrNotFound
	}
	for _, m := range t.Members {
		if m.UID == member.UID {
			return nil
		}
	}
	t.Members = append(copyMembers(t.Members), member)
	s.db.teams[teamID] = t
	return nil
}

func (s *teamStore) RemoveMember(_ context.Context, teamID, uid string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.teams[teamID]
	if !ok {
		return store.ErrNotFound
	}
	members := make([]models.TeamMember, 0, len(t.Members))
	for _, m := range t.Members {
		if m.UID != uid {
			members = append(members, m)
		}
	}
	t.Members = members
	s.db.teams[teamID] = t
	return nil
}

func (s *teamStore) SetRoster(_ context.Context, teamID string, members []models.TeamMember, leaderID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.teams[teamID]
	if !ok {
		return store.ErrNotFound
	}
	t.Members = copyMembers(members)
	t.LeaderID = leaderID
	s.db.teams[teamID] = t
	return nil
}

type invitationStore struct{ db *database }

func (s *invitationStore) Create(_ context.Context, inv *models.TeamInvitation) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.invitations[inv.ID] = *inv
	return nil
}

func (s *invitationStore) GetByID(_ context.Context, id string) (*models.TeamInvitation, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	inv, ok := s.db.invitations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &inv, nil
}

func (s *invitationStore) ListPendingByInvitee(_ context.Context, email string) ([]models.TeamInvitation, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var invs []models.TeamInvitation
	for _, inv := range s.db.invitations {
		if inv.InviteeEmail == email && inv.Status == models.InvitationPending {
			invs = append(invs, inv)
		}
	}
	sort.Slice(invs, func(i, j int) bool { return invs[i].CreatedAt.Before(invs[j].CreatedAt) })
	return invs, nil
}

func (s *invitationStore) TransitionFromPending(_ context.Context, id, to string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	inv, ok := s.db.invitations[id]
	if !ok || inv.Status != models.InvitationPending {
		return false, nil
	}
	inv.Status = to
	s.db.invitations[id] = inv
	return true, nil
}

type notificationStore struct{ db *database }

func (s *notificationStore) Create(_ context.Context, n *models.Notification) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.notifications[n.ID] = *n
	return nil
}

func (s *notificationStore) GetByID(_ context.Context, id string) (*models.Notification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	n, ok := s.db.notifications[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &n, nil
}

func (s *notificationStore) ListByRecipient(_ context.Context, email string) ([]models.Notification, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var ns []models.Notification
	for _, n := range s.db.notifications {
		if n.RecipientEmail == email {
			ns = append(ns, n)
		}
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].Timestamp.After(ns[j].Timestamp) })
	return ns, nil
}

func (s *notificationStore) MarkRead(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	n, ok := s.db.notifications[id]
	if !ok {
		return store.ErrNotFound
	}
	n.Read = true
	s.db.notifications[id] = n
	return nil
}

type tokenStore struct{ db *database }

func (s *tokenStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.refresh[tokenHash] = models.RefreshToken{
		ID:        tokenHash,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *tokenStore) ValidateRefreshToken(_ context.Context, tokenHash string) (string, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rt, ok := s.db.refresh[tokenHash]
	if !ok || time.Now().After(rt.ExpiresAt) {
		return "", store.ErrNotFound
	}
	return rt.UserID, nil
}

func (s *tokenStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.refresh, tokenHash)
	return nil
}

func (s *tokenStore) RevokeAllUserTokens(_ context.Context, userID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for hash, rt := range s.db.refresh {
		if rt.UserID == userID {
			delete(s.db.refresh, hash)
		}
	}
	return nil
}

func (s *tokenStore) CleanupExpired(_ context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now()
	for hash, rt := range s.db.refresh {
		if now.After(rt.ExpiresAt) {
			delete(s.db.refresh, hash)
		}
	}
	for id, pr := range s.db.resets {
		if now.After(pr.ExpiresAt) {
			delete(s.db.resets, id)
		}
	}
	return nil
}

func (s *tokenStore) CreatePasswordReset(_ context.Context, pr *models.PasswordReset) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.resets[pr.ID] = *pr
	return nil
}

func (s *tokenStore) ConsumePasswordReset(_ context.Context, tokenHash string) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, pr := range s.db.resets {
		if pr.TokenHash == tokenHash && !pr.Used && time.Now().Before(pr.ExpiresAt) {
			pr.Used = true
			s.db.resets[id] = pr
			return pr.Email, nil
		}
	}
	return "", store.ErrNotFound
}
