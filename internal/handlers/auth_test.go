package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtl/myhackx-api/internal/config"
	"github.com/mtl/myhackx-api/internal/metrics"
	"github.com/mtl/myhackx-api/internal/models"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/pkg/dto"
	"github.com/mtl/myhackx-api/tests/testutil"
)

type authTestDeps struct {
	userService  *testutil.MockUserService
	tokenService *testutil.MockTokenService
	emailService *testutil.MockEmailService
	jwtService   *services.JWTService
	handler      *AuthHandler
}

func setupAuthTest(t *testing.T) *authTestDeps {
	t.Helper()
	deps := &authTestDeps{
		userService:  new(testutil.MockUserService),
		tokenService: new(testutil.MockTokenService),
		emailService: new(testutil.MockEmailService),
		jwtService:   newTestJWTService(),
	}
	cfg := &config.Config{FrontendCallbackURL: "myhackx://auth/callback"}
	deps.handler = NewAuthHandler(cfg, deps.userService, deps.tokenService, deps.jwtService, deps.emailService, metrics.New())
	return deps
}

func newAuthApp(deps *authTestDeps) *drift.Engine {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", deps.handler.Register)
	app.Post("/auth/login", deps.handler.Login)
	app.Post("/auth/forgot-password", deps.handler.ForgotPassword)
	app.Post("/auth/reset-password", deps.handler.ResetPassword)
	app.Get("/auth/:provider/consent", deps.handler.GetConsentURL)
	app.Post("/auth/exchange", deps.handler.ExchangeCode)
	app.Post("/auth/refresh", deps.handler.RefreshToken)
	app.Post("/auth/logout", deps.handler.Logout)
	return app
}

func TestAuthHandler_Register_Success(t *testing.T) {
	deps := setupAuthTest(t)

	user := &models.User{UID: "user-1", Email: "a@example.com", DisplayName: "Alice"}

	deps.userService.On("Register", mock.Anything, "a@example.com", "hunter2hunter2", "Alice").Return(user, nil)
	deps.tokenService.On("StoreRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("string"), 24*time.Hour).Return(nil)

	app := newAuthApp(deps)

	body := dto.RegisterRequest{Email: "a@example.com", Password: "hunter2hunter2", DisplayName: "Alice"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)

	claims, err := deps.jwtService.ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	deps.userService.AssertExpectations(t)
	deps.tokenService.AssertExpectations(t)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	deps := setupAuthTest(t)
	app := newAuthApp(deps)

	body := dto.RegisterRequest{Email: "a@example.com", Password: "short"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 8 characters")
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	deps := setupAuthTest(t)

	deps.userService.On("Register", mock.Anything, "a@example.com", "hunter2hunter2", "").
		Return(nil, fmt.Errorf("register: %w", services.ErrEmailTaken))

	app := newAuthApp(deps)

	body := dto.RegisterRequest{Email: "a@example.com", Password: "hunter2hunter2"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")

	deps.userService.AssertExpectations(t)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	deps := setupAuthTest(t)

	user := &models.User{UID: "user-1", Email: "a@example.com", IsAdmin: true}

	deps.userService.On("Authenticate", mock.Anything, "a@example.com", "hunter2hunter2").Return(user, nil)
	deps.tokenService.On("StoreRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("string"), 24*time.Hour).Return(nil)

	app := newAuthApp(deps)

	body := dto.LoginRequest{Email: "a@example.com", Password: "hunter2hunter2"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	claims, err := deps.jwtService.ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.Admin)

	deps.userService.AssertExpectations(t)
	deps.tokenService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	deps := setupAuthTest(t)

	deps.userService.On("Authenticate", mock.Anything, "a@example.com", "wrong-password").
		Return(nil, services.ErrInvalidCredentials)

	app := newAuthApp(deps)

	body := dto.LoginRequest{Email: "a@example.com", Password: "wrong-password"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")

	deps.userService.AssertExpectations(t)
}

func TestAuthHandler_ForgotPassword_KnownEmail(t *testing.T) {
	deps := setupAuthTest(t)

	user := &models.User{UID: "user-1", Email: "a@example.com"}

	deps.userService.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	deps.tokenService.On("CreatePasswordReset", mock.Anything, "a@example.com", 30*time.Minute).Return("reset-token", nil)
	deps.emailService.On("SendPasswordReset", "a@example.com", "reset-token", 30*time.Minute).Return(nil)

	app := newAuthApp(deps)

	body := dto.ForgotPasswordRequest{Email: "a@example.com"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "if the account exists")

	deps.tokenService.AssertExpectations(t)
	deps.emailService.AssertExpectations(t)
}

func TestAuthHandler_ForgotPassword_UnknownEmail_SameResponse(t *testing.T) {
	deps := setupAuthTest(t)

	deps.userService.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, services.ErrUserNotFound)

	app := newAuthApp(deps)

	body := dto.ForgotPasswordRequest{Email: "ghost@example.com"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "if the account exists")

	deps.tokenService.AssertNotCalled(t, "CreatePasswordReset", mock.Anything, mock.Anything, mock.Anything)
	deps.emailService.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	deps := setupAuthTest(t)

	user := &models.User{UID: "user-1", Email: "a@example.com"}

	deps.tokenService.On("ConsumePasswordReset", mock.Anything, "reset-token").Return("a@example.com", nil)
	deps.userService.On("ChangePassword", mock.Anything, "a@example.com", "new-password-1").Return(nil)
	deps.userService.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	deps.tokenService.On("RevokeAllUserTokens", mock.Anything, "user-1").Return(nil)

	app := newAuthApp(deps)

	body := dto.ResetPasswordRequest{Token: "reset-token", NewPassword: "new-password-1"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password updated")

	deps.tokenService.AssertExpectations(t)
	deps.userService.AssertExpectations(t)
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	deps := setupAuthTest(t)

	deps.tokenService.On("ConsumePasswordReset", mock.Anything, "bad-token").
		Return("", services.ErrInvalidCredentials)

	app := newAuthApp(deps)

	body := dto.ResetPasswordRequest{Token: "bad-token", NewPassword: "new-password-1"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired reset token")

	deps.tokenService.AssertExpectations(t)
}

func TestAuthHandler_GetConsentURL_UnsupportedProvider(t *testing.T) {
	deps := setupAuthTest(t)
	app := newAuthApp(deps)

	req := httptest.NewRequest(http.MethodGet, "/auth/github/consent", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported provider")
}

func TestAuthHandler_ExchangeCode_InvalidCode(t *testing.T) {
	deps := setupAuthTest(t)
	app := newAuthApp(deps)

	body := dto.ExchangeCodeRequest{Code: "never-issued"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/exchange", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired code")
}

func TestAuthHandler_RefreshToken_RotatesToken(t *testing.T) {
	deps := setupAuthTest(t)

	user := &models.User{UID: "user-1", Email: "a@example.com"}
	pair, err := deps.jwtService.GenerateTokenPair("user-1", "a@example.com", false)
	require.NoError(t, err)

	deps.tokenService.On("ValidateRefreshToken", mock.Anything, pair.RefreshToken).Return("user-1", nil)
	deps.userService.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	deps.tokenService.On("RevokeRefreshToken", mock.Anything, pair.RefreshToken).Return(nil)
	deps.tokenService.On("StoreRefreshToken", mock.Anything, "user-1", mock.AnythingOfType("string"), 24*time.Hour).Return(nil)

	app := newAuthApp(deps)

	body := dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	deps.tokenService.AssertExpectations(t)
	deps.userService.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_NotOnRecord(t *testing.T) {
	deps := setupAuthTest(t)

	pair, err := deps.jwtService.GenerateTokenPair("user-1", "a@example.com", false)
	require.NoError(t, err)

	deps.tokenService.On("ValidateRefreshToken", mock.Anything, pair.RefreshToken).
		Return("", services.ErrInvalidCredentials)

	app := newAuthApp(deps)

	body := dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "refresh token not found or expired")

	deps.tokenService.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_Malformed(t *testing.T) {
	deps := setupAuthTest(t)
	app := newAuthApp(deps)

	body := dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid refresh token")
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	deps := setupAuthTest(t)

	deps.tokenService.On("RevokeRefreshToken", mock.Anything, "some-refresh-token").Return(nil)

	app := newAuthApp(deps)

	body := dto.RefreshTokenRequest{RefreshToken: "some-refresh-token"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out")

	deps.tokenService.AssertExpectations(t)
}
