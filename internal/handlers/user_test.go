package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/pkg/dto"
	"github.com/mtl/myhackx-api/tests/testutil"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID, email string, admin bool) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email, admin)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestUserHandler_GetMe_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	userID := "user-1"
	email := "test@example.com"
	user := &models.User{
		UID:         userID,
		Email:       email,
		DisplayName: "Test User",
		Provider:    "google",
		Skills:      []string{"go"},
	}

	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)

	token := generateTestToken(t, jwtSvc, userID, email, false)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, userID, response.ID)
	assert.Equal(t, email, response.Email)
	assert.Equal(t, "Test User", response.DisplayName)
	assert.Equal(t, "google", response.Provider)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GetMe_NotAuthenticated(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserHandler_GetMe_UserNotFound(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	userID := "user-1"
	email := "test@example.com"

	mockUserService.On("GetByID", mock.Anything, userID).Return(nil, errors.New("not found"))

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)

	token := generateTestToken(t, jwtSvc, userID, email, false)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	userID := "user-1"
	email := "test@example.com"
	skills := []string{"go", "react"}
	updated := &models.User{
		UID:         userID,
		Email:       email,
		DisplayName: "New Name",
		Bio:         "Builder",
		Skills:      skills,
	}

	mockUserService.On("UpdateProfile", mock.Anything, userID, "New Name", "", "Builder", skills).Return(updated, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/users/me", handler.UpdateMe)

	body := dto.UpdateProfileRequest{DisplayName: "New Name", Bio: "Builder", Skills: skills}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, email, false)
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "New Name", response.DisplayName)
	assert.Equal(t, "Builder", response.Bio)
	assert.Equal(t, skills, response.Skills)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_GetUser_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	other := &models.User{UID: "user-2", Email: "other@example.com", DisplayName: "Other"}

	mockUserService.On("GetByID", mock.Anything, "user-2").Return(other, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/:id", handler.GetUser)

	token := generateTestToken(t, jwtSvc, "user-1", "test@example.com", false)
	req := httptest.NewRequest(http.MethodGet, "/users/user-2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "user-2", response.ID)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_ListUsers_AdminOnly(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Get("/admin/users", handler.ListUsers)

	token := generateTestToken(t, jwtSvc, "user-1", "test@example.com", false)
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserHandler_ListUsers_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	users := []models.User{
		{UID: "user-1", Email: "a@example.com"},
		{UID: "user-2", Email: "b@example.com"},
	}

	mockUserService.On("List", mock.Anything).Return(users, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Get("/admin/users", handler.ListUsers)

	token := generateTestToken(t, jwtSvc, "admin-1", "admin@example.com", true)
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_SetAdmin_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	promoted := &models.User{UID: "user-2", Email: "b@example.com", IsAdmin: true}

	mockUserService.On("SetAdmin", mock.Anything, "user-2", true).Return(promoted, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Patch("/admin/users/:id/admin", handler.SetAdmin)

	jsonBody, _ := json.Marshal(map[string]bool{"admin": true})

	token := generateTestToken(t, jwtSvc, "admin-1", "admin@example.com", true)
	req := httptest.NewRequest(http.MethodPatch, "/admin/users/user-2/admin", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.IsAdmin)

	mockUserService.AssertExpectations(t)
}

func TestUserHandler_DeleteUser_Success(t *testing.T) {
	mockUserService := new(testutil.MockUserService)
	handler := NewUserHandler(mockUserService)
	jwtSvc := newTestJWTService()

	mockUserService.On("Delete", mock.Anything, "user-2").Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Delete("/admin/users/:id", handler.DeleteUser)

	token := generateTestToken(t, jwtSvc, "admin-1", "admin@example.com", true)
	req := httptest.NewRequest(http.MethodDelete, "/admin/users/user-2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user deleted")

	mockUserService.AssertExpectations(t)
}
