package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtl/myhackx-api/internal/metrics"
	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/sse"
	"github.com/mtl/myhackx-api/internal/store"
	"github.com/mtl/myhackx-api/pkg/dto"
	"github.com/mtl/myhackx-api/tests/testutil"
)

func setupNotificationTest(t *testing.T) (*testutil.MockNotificationService, *NotificationHandler, *services.JWTService) {
	t.Helper()
	mockNotificationService := new(testutil.MockNotificationService)
	handler := NewNotificationHandler(mockNotificationService, sse.NewHub(), metrics.New())
	jwtSvc := newTestJWTService()
	return mockNotificationService, handler, jwtSvc
}

func TestNotificationHandler_ListMine_Success(t *testing.T) {
	mockNotificationService, handler, jwtSvc := setupNotificationTest(t)

	email := "test@example.com"
	notifications := []models.Notification{
		{
			ID:             "n-1",
			RecipientEmail: email,
			Title:          "Team Invitation",
			Type:           models.NotificationTeamInvitation,
			Timestamp:      time.Now(),
		},
	}

	mockNotificationService.On("ListForRecipient", mock.Anything, email).Return(notifications, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/notifications", handler.ListMine)

	token := generateTestToken(t, jwtSvc, "user-1", email, false)
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.Notification
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "Team Invitation", response[0].Title)

	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead_Success(t *testing.T) {
	mockNotificationService, handler, jwtSvc := setupNotificationTest(t)

	email := "test@example.com"

	mockNotificationService.On("MarkRead", mock.Anything, "n-1", email).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/notifications/:id/read", handler.MarkRead)

	token := generateTestToken(t, jwtSvc, "user-1", email, false)
	req := httptest.NewRequest(http.MethodPost, "/notifications/n-1/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marked read")

	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	mockNotificationService, handler, jwtSvc := setupNotificationTest(t)

	email := "test@example.com"

	mockNotificationService.On("MarkRead", mock.Anything, "missing", email).Return(store.ErrNotFound)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/notifications/:id/read", handler.MarkRead)

	token := generateTestToken(t, jwtSvc, "user-1", email, false)
	req := httptest.NewRequest(http.MethodPost, "/notifications/missing/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_MarkRead_WrongRecipient(t *testing.T) {
	mockNotificationService, handler, jwtSvc := setupNotificationTest(t)

	email := "test@example.com"

	mockNotificationService.On("MarkRead", mock.Anything, "n-1", email).Return(services.ErrNotRecipient)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/notifications/:id/read", handler.MarkRead)

	token := generateTestToken(t, jwtSvc, "user-1", email, false)
	req := httptest.NewRequest(http.MethodPost, "/notifications/n-1/read", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_Broadcast_Success(t *testing.T) {
	mockNotificationService, handler, jwtSvc := setupNotificationTest(t)

	mockNotificationService.On("Broadcast", mock.Anything, "Reminder", "Starts soon", "EVENT_REMINDER", map[string]string(nil)).
		Return(12, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Post("/admin/notifications/broadcast", handler.Broadcast)

	body := dto.BroadcastRequest{Title: "Reminder", Message: "Starts soon", Type: "EVENT_REMINDER"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, "admin-1", "admin@example.com", true)
	req := httptest.NewRequest(http.MethodPost, "/admin/notifications/broadcast", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.BroadcastResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 12, response.Sent)

	mockNotificationService.AssertExpectations(t)
}

func TestNotificationHandler_Broadcast_MissingFields(t *testing.T) {
	_, handler, jwtSvc := setupNotificationTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Post("/admin/notifications/broadcast", handler.Broadcast)

	body := dto.BroadcastRequest{Title: "Reminder"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, "admin-1", "admin@example.com", true)
	req := httptest.NewRequest(http.MethodPost, "/admin/notifications/broadcast", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title and message are required")
}

// Stream tests cover the validation path only; the streaming loop itself is
// exercised through the hub tests.

func TestNotificationHandler_Stream_NotAuthenticated(t *testing.T) {
	_, handler, _ := setupNotificationTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Get("/notifications/stream", handler.Stream)

	req := httptest.NewRequest(http.MethodGet, "/notifications/stream", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not authenticated")
}

func TestNotificationHandler_Broadcast_NonAdminForbidden(t *testing.T) {
	_, handler, jwtSvc := setupNotificationTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Post("/admin/notifications/broadcast", handler.Broadcast)

	body := dto.BroadcastRequest{Title: "Reminder", Message: "Starts soon"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, "user-1", "test@example.com", false)
	req := httptest.NewRequest(http.MethodPost, "/admin/notifications/broadcast", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
