package services

import "errors"

// Service errors, grouped by the taxonomy handlers map onto HTTP statuses:
// not-found, conflict, forbidden, unauthenticated.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	ErrTeamFull             = errors.New("team is full")
	ErrRegistrationClosed   = errors.New("registration deadline has passed")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrEmailTaken           = errors.New("an account with this email already exists")

	ErrNotTeamLeader      = errors.New("only the team leader can remove members")
	ErrNotRecipient       = errors.New("notification belongs to another recipient")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
