package models

import "time"

// Invitation states. An invitation leaves PENDING exactly once and is never
// re-opened.
const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationDeclined = "DECLINED"
)

// TeamInvitation records a leader inviting an email address to a team.
// TeamName is a denormalized snapshot taken at invite time so the invitation
// stays readable even if the team is later renamed or deleted.
type TeamInvitation struct {
	ID           string    `bson:"_id" json:"id"`
	TeamID       string    `bson:"team_id" json:"team_id"`
	EventID      string    `bson:"event_id" json:"event_id"`
	TeamName     string    `bson:"team_name" json:"team_name"`
	InviterEmail string    `bson:"inviter_email" json:"inviter_email"`
	InviteeEmail string    `bson:"invitee_email" json:"invitee_email"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
