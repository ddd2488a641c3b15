package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	"frishta/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthUsecase struct {
	registerStartIn  *usecase.RegisterStartInput
	registerVerifyIn *usecase.RegisterVerifyInput
	loginIn          *usecase.LoginInput
	loggedOutHash    string
	profileID        uuid.UUID

	loginOut *usecase.LoginOutput
	user     *entity.User
	err      error
}

func (s *stubAuthUsecase) RegisterStart(_ context.Context, in *usecase.RegisterStartInput) (*usecase.OtpIssuedOutput, error) {
	s.registerStartIn = in
	if s.err != nil {
		return nil, s.err
	}

	return &usecase.OtpIssuedOutput{Message: "OTP generated. Please check your email.", EmailQueued: true}, nil
}

func (s *stubAuthUsecase) RegisterVerify(_ context.Context, in *usecase.RegisterVerifyInput) error {
	s.registerVerifyIn = in

	return s.err
}

func (s *stubAuthUsecase) RegisterResend(context.Context, string) (*usecase.OtpIssuedOutput, error) {
	return &usecase.OtpIssuedOutput{Message: "New OTP generated. Please check your email.", EmailQueued: true}, nil
}

func (s *stubAuthUsecase) Login(_ context.Context, in *usecase.LoginInput) (*usecase.LoginOutput, error) {
	s.loginIn = in
	if s.err != nil {
		return nil, s.err
	}

	return s.loginOut, nil
}

func (s *stubAuthUsecase) Logout(_ context.Context, tokenHash string) error {
	s.loggedOutHash = tokenHash

	return s.err
}

func (s *stubAuthUsecase) Profile(_ context.Context, userID uuid.UUID) (*entity.User, error) {
	s.profileID = userID
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}

func newHandlerContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestRegisterStartBindsInput(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	body := `{
		"fullName": "Asha Rahimi",
		"email": "asha@example.com",
		"password": "s3cret-pass",
		"role": "listener",
		"phoneNo": "+93 70-123-4567",
		"country": "Afghanistan",
		"state": "Kabul",
		"gender": "female",
		"age": 21,
		"categories": ["Pop", "Jazz", "Folk"]
	}`
	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/register/start", body)

	require.NoError(t, h.RegisterStart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.registerStartIn)
	assert.Equal(t, "asha@example.com", stub.registerStartIn.Email)
	require.NotNil(t, stub.registerStartIn.Age)
	assert.Equal(t, 21, *stub.registerStartIn.Age)
	assert.Equal(t, []string{"Pop", "Jazz", "Folk"}, stub.registerStartIn.Categories)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			EmailQueued bool `json:"emailQueued"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.True(t, envelope.Data.EmailQueued)
}

func TestRegisterStartMissingAgeStaysNil(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	c, _ := newHandlerContext(t, http.MethodPost, "/api/auth/register/start",
		`{"fullName": "Asha", "email": "asha@example.com"}`)

	require.NoError(t, h.RegisterStart(c))
	require.NotNil(t, stub.registerStartIn)
	assert.Nil(t, stub.registerStartIn.Age)
}

func TestRegisterVerifyBindsInput(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/register/verify",
		`{"email": "asha@example.com", "otp": "123456"}`)

	require.NoError(t, h.RegisterVerify(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.registerVerifyIn)
	assert.Equal(t, "123456", stub.registerVerifyIn.Otp)
}

func TestLoginReturnsTokenAndSanitizedUser(t *testing.T) {
	user := &entity.User{
		ID:              uuid.New(),
		FullName:        "Asha Rahimi",
		Email:           "asha@example.com",
		Role:            entity.RoleListener,
		Gender:          entity.GenderFemale,
		Age:             21,
		Categories:      []string{"Pop", "Jazz", "Folk"},
		PasswordHash:    "super-secret-hash",
		PasswordSalt:    "super-secret-salt",
		IsEmailVerified: true,
	}
	stub := &stubAuthUsecase{loginOut: &usecase.LoginOutput{Token: "raw-token", User: user}}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/login",
		`{"email": "asha@example.com", "password": "s3cret-pass"}`)
	c.Request().Header.Set("User-Agent", "test-agent")

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-agent", stub.loginIn.UserAgent)

	payload := rec.Body.String()
	assert.Contains(t, payload, `"token":"raw-token"`)
	assert.Contains(t, payload, `"fullName":"Asha Rahimi"`)
	// Credential material never leaves the server.
	assert.NotContains(t, payload, "super-secret-hash")
	assert.NotContains(t, payload, "super-secret-salt")
}

func TestLogoutUsesSessionIdentity(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/logout", "")
	deliverycontext.SetIdentity(c, uuid.New(), "digest-abc")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "digest-abc", stub.loggedOutHash)
}

func TestLogoutWithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{}, slog.New(slog.DiscardHandler))

	c, rec := newHandlerContext(t, http.MethodPost, "/api/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileUsesSessionIdentity(t *testing.T) {
	userID := uuid.New()
	stub := &stubAuthUsecase{user: &entity.User{
		ID:       userID,
		FullName: "Asha Rahimi",
		Email:    "asha@example.com",
		Role:     entity.RoleListener,
		Gender:   entity.GenderFemale,
	}}
	h := NewAuthHandler(stub, slog.New(slog.DiscardHandler))

	c, rec := newHandlerContext(t, http.MethodGet, "/api/auth/me", "")
	deliverycontext.SetIdentity(c, userID, "digest-abc")

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, stub.profileID)
	assert.Contains(t, rec.Body.String(), `"email":"asha@example.com"`)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newHandlerContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
