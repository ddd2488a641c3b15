package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"frishta/config"
	domainerrors "frishta/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOtpServiceForTest(repo *fakeOtpRepo) *otpService {
	srv := NewOtpService(&config.Config{
		Auth: &config.AuthConfig{
			OtpPepper:      "test-pepper",
			OtpTTL:         10 * time.Minute,
			OtpMaxAttempts: 5,
		},
	}, repo, slog.New(slog.DiscardHandler))

	return srv.(*otpService)
}

func TestOtpIssueAndVerify(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Only the digest is stored.
	record, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, code, record.OtpHash)
	assert.Len(t, record.OtpHash, 64)

	require.NoError(t, srv.Verify(ctx, "user@example.com", code))
}

func TestOtpVerifyUnknownEmail(t *testing.T) {
	srv := newOtpServiceForTest(newFakeOtpRepo())

	err := srv.Verify(context.Background(), "nobody@example.com", "123456")
	require.ErrorIs(t, err, domainerrors.ErrOtpInvalidOrExpired)
}

func TestOtpVerifyExpired(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	srv.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	err = srv.Verify(ctx, "user@example.com", code)
	require.ErrorIs(t, err, domainerrors.ErrOtpInvalidOrExpired)
}

func TestOtpVerifyMismatchSpendsAttempt(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err = srv.Verify(ctx, "user@example.com", wrong)
	require.ErrorIs(t, err, domainerrors.ErrOtpInvalid)

	record, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, record.Attempts)
}

func TestOtpVerifyAttemptCeiling(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Exactly five guesses are allowed.
	for range 5 {
		err = srv.Verify(ctx, "user@example.com", wrong)
		require.ErrorIs(t, err, domainerrors.ErrOtpInvalid)
	}

	// The sixth attempt is rejected before the code is even compared, so
	// even the correct code is refused now.
	err = srv.Verify(ctx, "user@example.com", code)
	require.ErrorIs(t, err, domainerrors.ErrTooManyAttempts)
}

func TestOtpIssueResetsAttempts(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for range 5 {
		_ = srv.Verify(ctx, "user@example.com", wrong)
	}

	// Reissuing replaces the record and restarts the counter.
	fresh, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	record, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Attempts)

	require.NoError(t, srv.Verify(ctx, "user@example.com", fresh))
}

func TestOtpIssueInvalidatesPreviousCode(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	first, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	second, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	if first != second {
		err = srv.Verify(ctx, "user@example.com", first)
		require.ErrorIs(t, err, domainerrors.ErrOtpInvalid)
	}
	require.NoError(t, srv.Verify(ctx, "user@example.com", second))
}

func TestOtpDiscard(t *testing.T) {
	repo := newFakeOtpRepo()
	srv := newOtpServiceForTest(repo)
	ctx := context.Background()

	code, err := srv.Issue(ctx, "user@example.com")
	require.NoError(t, err)

	require.NoError(t, srv.Discard(ctx, "user@example.com"))
	// Discarding twice is fine.
	require.NoError(t, srv.Discard(ctx, "user@example.com"))

	err = srv.Verify(ctx, "user@example.com", code)
	require.ErrorIs(t, err, domainerrors.ErrOtpInvalidOrExpired)
}
