package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/metrics"
	"github.com/mtl/myhackx-api/internal/middleware"
)

type InvitationHandler struct {
	registrationService RegistrationServiceInterface
	metrics             *metrics.Metrics
}

func NewInvitationHandler(registrationService RegistrationServiceInterface, m *metrics.Metrics) *InvitationHandler {
	return &InvitationHandler{registrationService: registrationService, metrics: m}
}

// ListMine returns the caller's pending invitations.
func (h *InvitationHandler) ListMine(c *drift.Context) {
	invitations, err := h.registrationService.PendingInvitations(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		c.InternalServerError("failed to list invitations")
		return
	}

	_ = c.JSON(200, invitations)
}

func (h *InvitationHandler) Accept(c *drift.Context) {
	team, err := h.registrationService.AcceptTeamInvitation(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeRegistrationError(c, err)
		return
	}

	h.metrics.InvitationsTotal.WithLabelValues("accepted").Inc()
	_ = c.JSON(200, team)
}

func (h *InvitationHandler) Decline(c *drift.Context) {
	if err := h.registrationService.DeclineTeamInvitation(c.Request.Context(), c.Param("id")); err != nil {
		writeRegistrationError(c, err)
		return
	}

	h.metrics.InvitationsTotal.WithLabelValues("declined").Inc()
	_ = c.JSON(200, map[string]string{"message": "invitation declined"})
}
