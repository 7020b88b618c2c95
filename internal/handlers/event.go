package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/store"
	"github.com/mtl/myhackx-api/pkg/dto"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents supports optional status and location query filters.
func (h *EventHandler) ListEvents(c *drift.Context) {
	filter := store.EventFilter{
		Status:   c.QueryParam("status"),
		Location: c.QueryParam("location"),
	}

	events, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		c.InternalServerError("failed to list events")
		return
	}

	_ = c.JSON(200, events)
}

// GetEvent returns the event with its registered teams expanded.
func (h *EventHandler) GetEvent(c *drift.Context) {
	event, err := h.eventService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.NotFound("event not found")
			return
		}
		c.InternalServerError("failed to load event")
		return
	}

	_ = c.JSON(200, event)
}

// CreateEvent is admin only.
func (h *EventHandler) CreateEvent(c *drift.Context) {
	var req dto.CreateEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), middleware.GetUserID(c), services.CreateEventInput{
		Name:                 req.Name,
		Description:          req.Description,
		Location:             req.Location,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MinTeamSize:          req.MinTeamSize,
		MaxTeamSize:          req.MaxTeamSize,
		Tags:                 req.Tags,
		MaxParticipants:      req.MaxParticipants,
		Prizes:               req.Prizes,
		ImageURL:             req.ImageURL,
	})
	if err != nil {
		c.BadRequest(err.Error())
		return
	}

	_ = c.JSON(201, event)
}

// UpdateEvent is admin only.
func (h *EventHandler) UpdateEvent(c *drift.Context) {
	var req dto.UpdateEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("id"), services.UpdateEventInput{
		Name:                 req.Name,
		Description:          req.Description,
		Location:             req.Location,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		MinTeamSize:          req.MinTeamSize,
		MaxTeamSize:          req.MaxTeamSize,
		Status:               req.Status,
		Tags:                 req.Tags,
		MaxParticipants:      req.MaxParticipants,
		Prizes:               req.Prizes,
		ImageURL:             req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.NotFound("event not found")
			return
		}
		c.BadRequest(err.Error())
		return
	}

	_ = c.JSON(200, event)
}

// DeleteEvent is admin only.
func (h *EventHandler) DeleteEvent(c *drift.Context) {
	if err := h.eventService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.NotFound("event not found")
			return
		}
		c.InternalServerError("failed to delete event")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "event deleted"})
}
