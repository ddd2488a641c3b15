package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionUsecase struct {
	sessions map[string]*entity.Session
}

func (s *stubSessionUsecase) Issue(context.Context, uuid.UUID, string) (string, error) {
	panic("not used")
}

func (s *stubSessionUsecase) Resolve(_ context.Context, tokenHash string) (*entity.Session, error) {
	if session, ok := s.sessions[tokenHash]; ok {
		return session, nil
	}

	return nil, domainerrors.ErrInvalidSession
}

func (s *stubSessionUsecase) Revoke(context.Context, string) error { return nil }

func (s *stubSessionUsecase) CleanupExpired(context.Context) (int64, error) { return 0, nil }

func runAuthenticate(t *testing.T, sessions map[string]*entity.Session, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewAuthMiddleware(&stubSessionUsecase{sessions: sessions}, slog.New(slog.DiscardHandler))

	nextCalled := false
	err := m.Authenticate(func(echo.Context) error {
		nextCalled = true
		return nil
	})(c)
	require.NoError(t, err)

	return rec, c, nextCalled
}

func TestAuthenticateMissingToken(t *testing.T) {
	rec, _, nextCalled := runAuthenticate(t, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)

	rec, _, nextCalled = runAuthenticate(t, nil, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)

	// Wrong scheme is treated as missing.
	rec, _, nextCalled = runAuthenticate(t, nil, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	rec, _, nextCalled := runAuthenticate(t, nil, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	token, err := auth.NewSessionToken()
	require.NoError(t, err)
	tokenHash := auth.HashSessionToken(token)
	userID := uuid.New()

	sessions := map[string]*entity.Session{
		tokenHash: {
			ID:        uuid.New(),
			UserID:    userID,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}

	_, c, nextCalled := runAuthenticate(t, sessions, "Bearer "+token)
	require.True(t, nextCalled)

	gotUserID, ok := deliverycontext.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotUserID)

	gotHash, ok := deliverycontext.GetTokenHash(c)
	require.True(t, ok)
	assert.Equal(t, tokenHash, gotHash)
}
