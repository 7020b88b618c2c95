package dto

import "time"

type CreateEventRequest struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Location             string    `json:"location"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MinTeamSize          int       `json:"min_team_size"`
	MaxTeamSize          int       `json:"max_team_size"`
	Tags                 []string  `json:"tags"`
	MaxParticipants      int       `json:"max_participants"`
	Prizes               []string  `json:"prizes"`
	ImageURL             string    `json:"image_url"`
}

type UpdateEventRequest struct {
	Name                 *string    `json:"name"`
	Description          *string    `json:"description"`
	Location             *string    `json:"location"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	MinTeamSize          *int       `json:"min_team_size"`
	MaxTeamSize          *int       `json:"max_team_size"`
	Status               *string    `json:"status"`
	Tags                 []string   `json:"tags"`
	MaxParticipants      *int       `json:"max_participants"`
	Prizes               []string   `json:"prizes"`
	ImageURL             *string    `json:"image_url"`
}
