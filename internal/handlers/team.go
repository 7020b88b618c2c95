package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/metrics"
	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/pkg/dto"
)

type TeamHandler struct {
	registrationService RegistrationServiceInterface
	metrics             *metrics.Metrics
}

func NewTeamHandler(registrationService RegistrationServiceInterface, m *metrics.Metrics) *TeamHandler {
	return &TeamHandler{registrationService: registrationService, metrics: m}
}

// conflict mirrors the JSON error envelope drift's helpers produce; drift has
// no 409 helper.
func conflict(c *drift.Context, msg string) {
	_ = c.JSON(409, map[string]string{"error": msg})
}

// writeRegistrationError maps registration service errors onto the
// not-found / conflict / forbidden statuses the mobile client expects.
func writeRegistrationError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrRegistrationClosed),
		errors.Is(err, services.ErrInvitationNotPending),
		errors.Is(err, services.ErrAlreadyRegistered):
		conflict(c, err.Error())
	case errors.Is(err, services.ErrNotTeamLeader):
		c.Forbidden(err.Error())
	default:
		c.InternalServerError("operation failed")
	}
}

func (h *TeamHandler) RegisterIndividual(c *drift.Context) {
	var req dto.RegisterIndividualRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.EventID == "" {
		c.BadRequest("event_id is required")
		return
	}

	team, err := h.registrationService.RegisterIndividual(c.Request.Context(), req.EventID, middleware.GetUserID(c))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	h.metrics.RegistrationsTotal.WithLabelValues("individual").Inc()
	_ = c.JSON(201, team)
}

func (h *TeamHandler) RegisterTeam(c *drift.Context) {
	var req dto.RegisterTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.EventID == "" || req.TeamName == "" {
		c.BadRequest("event_id and team_name are required")
		return
	}

	team, err := h.registrationService.RegisterTeam(c.Request.Context(), req.EventID, req.TeamName, req.MemberEmails, middleware.GetUserID(c))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	h.metrics.RegistrationsTotal.WithLabelValues("team").Inc()
	_ = c.JSON(201, team)
}

func (h *TeamHandler) GetTeam(c *drift.Context) {
	team, err := h.registrationService.TeamByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, team)
}

func (h *TeamHandler) ListEventTeams(c *drift.Context) {
	teams, err := h.registrationService.TeamsForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, teams)
}

func (h *TeamHandler) JoinTeam(c *drift.Context) {
	var req dto.JoinTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.EventID == "" {
		c.BadRequest("event_id is required")
		return
	}

	team, err := h.registrationService.JoinTeam(c.Request.Context(), c.Param("id"), req.EventID, middleware.GetUserID(c))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, team)
}

func (h *TeamHandler) LeaveTeam(c *drift.Context) {
	var req dto.LeaveTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := h.registrationService.LeaveTeam(c.Request.Context(), c.Param("id"), req.EventID, middleware.GetUserID(c)); err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left team"})
}

func (h *TeamHandler) UnregisterFromEvent(c *drift.Context) {
	if err := h.registrationService.UnregisterFromEvent(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "unregistered"})
}

func (h *TeamHandler) RemoveMember(c *drift.Context) {
	var req dto.RemoveMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.MemberUID == "" {
		c.BadRequest("member_uid is required")
		return
	}

	if err := h.registrationService.RemoveTeamMember(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req.MemberUID); err != nil {
		writeRegistrationError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}
