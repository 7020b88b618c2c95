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

type EventService struct {
	events store.EventStore
	teams  store.TeamStore
	logger *zap.Logger
}

func NewEventService(events store.EventStore, teams store.TeamStore, logger *zap.Logger) *EventService {
	return &EventService{events: events, teams: teams, logger: logger}
}

type CreateEventInput struct {
	Name                 string
	Description          string
	Location             string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time
	MinTeamSize          int
	MaxTeamSize          int
	Tags                 []string
	MaxParticipants      int
	Prizes               []string
	ImageURL             string
}

func (s *EventService) Create(ctx context.Context, organizerID string, in CreateEventInput) (*models.HackathonEvent, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if in.MaxTeamSize > 0 && in.MinTeamSize > in.MaxTeamSize {
		return nil, fmt.Errorf("min team size exceeds max team size")
	}

	event := &models.HackathonEvent{
		ID:                   uuid.NewString(),
		Name:                 in.Name,
		Description:          in.Description,
		Location:             in.Location,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		RegistrationDeadline: in.RegistrationDeadline,
		MinTeamSize:          in.MinTeamSize,
		MaxTeamSize:          in.MaxTeamSize,
		Status:               models.EventStatusUpcoming,
		Tags:                 in.Tags,
		OrganizerID:          organizerID,
		MaxParticipants:      in.MaxParticipants,
		Prizes:               in.Prizes,
		Teams:                []string{},
		ImageURL:             in.ImageURL,
	}

	if err := s.events.Put(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.HackathonEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// GetDetail returns the event with each linked team expanded in place.
// Dangling team links are skipped rather than failing the read.
func (s *EventService) GetDetail(ctx context.Context, id string) (*models.HackathonEvent, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.TeamObjects = make([]models.Team, 0, len(event.Teams))
	for _, teamID := range event.Teams {
		team, err := s.teams.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("event references missing team",
					zap.String("event_id", id), zap.String("team_id", teamID))
				continue
			}
			return nil, err
		}
		event.TeamObjects = append(event.TeamObjects, *team)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, filter store.EventFilter) ([]models.HackathonEvent, error) {
	return s.events.List(ctx, filter)
}

type UpdateEventInput struct {
	Name                 *string
	Description          *string
	Location             *string
	StartDate            *time.Time
	EndDate              *time.Time
	RegistrationDeadline *time.Time
	MinTeamSize          *int
	MaxTeamSize          *int
	Status               *string
	Tags                 []string
	MaxParticipants      *int
	Prizes               []string
	ImageURL             *string
}

func (s *EventService) Update(ctx context.Context, id string, in UpdateEventInput) (*models.HackathonEvent, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		event.Name = *in.Name
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.StartDate != nil {
		event.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		event.EndDate = *in.EndDate
	}
	if in.RegistrationDeadline != nil {
		event.RegistrationDeadline = *in.RegistrationDeadline
	}
	if in.MinTeamSize != nil {
		event.MinTeamSize = *in.MinTeamSize
	}
	if in.MaxTeamSize != nil {
		event.MaxTeamSize = *in.MaxTeamSize
	}
	if in.Status != nil {
		switch *in.Status {
		case models.EventStatusUpcoming, models.EventStatusOngoing,
			models.EventStatusCompleted, models.EventStatusCancelled:
			event.Status = *in.Status
		default:
			return nil, fmt.Errorf("invalid event status %q", *in.Status)
		}
	}
	if in.Tags != nil {
		event.Tags = in.Tags
	}
	if in.MaxParticipants != nil {
		event.MaxParticipants = *in.MaxParticipants
	}
	if in.Prizes != nil {
		event.Prizes = in.Prizes
	}
	if in.ImageURL != nil {
		event.ImageURL = *in.ImageURL
	}

	if err := s.events.Put(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes the event and every team registered under it.
func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, teamID := range event.Teams {
		if err := s.teams.Delete(ctx, teamID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete team %s: %w", teamID, err)
		}
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}
