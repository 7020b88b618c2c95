package models

import "time"

// Event lifecycle states.
const (
	EventStatusUpcoming  = "UPCOMING"
	EventStatusOngoing   = "ONGOING"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

type HackathonEvent struct {
	ID                   string    `bson:"_id" json:"id"`
	Name                 string    `bson:"name" json:"name"`
	Description          string    `bson:"description" json:"description"`
	Location             string    `bson:"location" json:"location"`
	StartDate            time.Time `bson:"start_date" json:"start_date"`
	EndDate              time.Time `bson:"end_date" json:"end_date"`
	RegistrationDeadline time.Time `bson:"registration_deadline" json:"registration_deadline"`
	MinTeamSize          int       `bson:"min_team_size" json:"min_team_size"`
	MaxTeamSize          int       `bson:"max_team_size" json:"max_team_size"`
	Status               string    `bson:"status" json:"status"`
	Tags                 []string  `bson:"tags" json:"tags"`
	OrganizerID          string    `bson:"organizer_id" json:"organizer_id"`
	MaxParticipants      int       `bson:"max_participants" json:"max_participants"`
	CurrentParticipants  int       `bson:"current_participants" json:"current_participants"`
	Prizes               []string  `bson:"prizes" json:"prizes"`
	// Teams holds the ids of teams registered for the event. It is mutated
	// with array-union/array-remove so concurrent registrations don't
	// clobber each other's link entries.
	Teams    []string `bson:"teams" json:"teams"`
	ImageURL string   `bson:"image_url" json:"image_url"`

	// TeamObjects is populated on detail reads by expanding Teams; it is
	// never persisted.
	TeamObjects []Team `bson:"-" json:"team_objects,omitempty"`
}
