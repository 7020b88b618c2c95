package models

import "time"

// Notification types.
const (
	NotificationGeneral            = "GENERAL"
	NotificationTeamInvitation     = "TEAM_INVITATION"
	NotificationMemberJoined       = "MEMBER_JOINED"
	NotificationMemberRemoved      = "MEMBER_REMOVED"
	NotificationInvitationDeclined = "INVITATION_DECLINED"
	NotificationEventReminder      = "EVENT_REMINDER"
)

// Notification is addressed by recipient email so that invitations can reach
// addresses that have no account yet. RecipientUID is additionally set when
// the recipient is a known user, giving readers a stable key that survives
// email changes.
type Notification struct {
	ID             string            `bson:"_id" json:"id"`
	RecipientEmail string            `bson:"recipient_email" json:"recipient_email"`
	RecipientUID   string            `bson:"recipient_uid,omitempty" json:"recipient_uid,omitempty"`
	Title          string            `bson:"title" json:"title"`
	Message        string            `bson:"message" json:"message"`
	Type           string            `bson:"type" json:"type"`
	Data           map[string]string `bson:"data" json:"data"`
	Timestamp      time.Time         `bson:"timestamp" json:"timestamp"`
	Read           bool              `bson:"read" json:"read"`
}
