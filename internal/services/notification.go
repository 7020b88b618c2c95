package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/sse"
	"github.com/mtl/myhackx-api/internal/store"
)

// NotificationService creates notification records and pushes them to any
// open SSE streams. Failures to push are logged, never surfaced; the record
// itself is the source of truth.
type NotificationService struct {
	notifications store.NotificationStore
	users         store.UserStore
	hub           *sse.Hub
	logger        *zap.Logger
}

func NewNotificationService(notifications store.NotificationStore, users store.UserStore, hub *sse.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		hub:           hub,
		logger:        logger,
	}
}

// Notify persists a notification for the recipient and pushes it out. The
// recipient uid is looked up best effort; invitees may not have accounts yet.
func (s *NotificationService) Notify(ctx context.Context, recipientEmail, title, message, notifType string, data map[string]string) (*models.Notification, error) {
	n := &models.Notification{
		ID:             uuid.NewString(),
		RecipientEmail: recipientEmail,
		Title:          title,
		Message:        message,
		Type:           notifType,
		Data:           data,
		Timestamp:      time.Now(),
	}

	if user, err := s.users.GetByEmail(ctx, recipientEmail); err == nil {
		n.RecipientUID = user.UID
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("failed to resolve notification recipient",
			zap.String("email", recipientEmail), zap.Error(err))
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.hub != nil {
		s.hub.NotifyRecipient(recipientEmail, sse.Event{Type: "notification", Data: n})
	}
	return n, nil
}

// Broadcast sends the same notification to every user. Used by admins for
// announcements and event reminders.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, notifType string, data map[string]string) (int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	sent := 0
	for _, user := range users {
		n := &models.Notification{
			ID:             uuid.NewString(),
			RecipientEmail: user.Email,
			RecipientUID:   user.UID,
			Title:          title,
			Message:        message,
			Type:           notifType,
			Data:           data,
			Timestamp:      time.Now(),
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Warn("failed to create broadcast notification",
				zap.String("email", user.Email), zap.Error(err))
			continue
		}
		sent++
	}

	if s.hub != nil {
		s.hub.BroadcastAll(sse.Event{Type: "notification", Data: map[string]string{
			"title":   title,
			"message": message,
			"type":    notifType,
		}})
	}
	return sent, nil
}

// ListForRecipient returns the recipient's notifications newest first.
func (s *NotificationService) ListForRecipient(ctx context.Context, email string) ([]models.Notification, error) {
	return s.notifications.ListByRecipient(ctx, email)
}

// MarkRead flips the read flag. Recipients can only mark their own
// notifications; callers pass the authenticated email for that check.
func (s *NotificationService) MarkRead(ctx context.Context, id, email string) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	if n.RecipientEmail != email {
		return ErrNotRecipient
	}
	return s.notifications.MarkRead(ctx, id)
}
