package handlers

import (
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/metrics"
	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/sse"
	"github.com/mtl/myhackx-api/internal/store"
	"github.com/mtl/myhackx-api/pkg/dto"
)

type NotificationHandler struct {
	notificationService NotificationServiceInterface
	hub                 *sse.Hub
	metrics             *metrics.Metrics
}

func NewNotificationHandler(notificationService NotificationServiceInterface, hub *sse.Hub, m *metrics.Metrics) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		hub:                 hub,
		metrics:             m,
	}
}

// ListMine returns the caller's notifications, newest first.
func (h *NotificationHandler) ListMine(c *drift.Context) {
	notifications, err := h.notificationService.ListForRecipient(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		c.InternalServerError("failed to list notifications")
		return
	}

	_ = c.JSON(200, notifications)
}

func (h *NotificationHandler) MarkRead(c *drift.Context) {
	err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), middleware.GetUserEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.NotFound("notification not found")
		case errors.Is(err, services.ErrNotRecipient):
			c.Forbidden("notification belongs to another recipient")
		default:
			c.InternalServerError("failed to mark notification read")
		}
		return
	}

	_ = c.JSON(200, map[string]string{"message": "marked read"})
}

// Broadcast is admin only.
func (h *NotificationHandler) Broadcast(c *drift.Context) {
	var req dto.BroadcastRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" || req.Message == "" {
		c.BadRequest("title and message are required")
		return
	}
	if req.Type == "" {
		req.Type = "GENERAL"
	}

	sent, err := h.notificationService.Broadcast(c.Request.Context(), req.Title, req.Message, req.Type, req.Data)
	if err != nil {
		c.InternalServerError("failed to broadcast")
		return
	}

	_ = c.JSON(200, dto.BroadcastResponse{Sent: sent})
}

// Stream holds an SSE connection open and relays the caller's notifications
// as they are created.
func (h *NotificationHandler) Stream(c *drift.Context) {
	email := middleware.GetUserEmail(c)
	if email == "" {
		c.Unauthorized("not authenticated")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:    clientID,
		Email: email,
		Send:  make(chan []byte, 256),
	}

	h.hub.Register(client)
	h.metrics.SSEClientsConnected.Inc()
	defer func() {
		h.hub.Unregister(client)
		h.metrics.SSEClientsConnected.Dec()
	}()

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
