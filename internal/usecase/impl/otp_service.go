// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"frishta/config"
	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/repository"
	"frishta/internal/infra/auth"
	"frishta/internal/usecase"

	"github.com/pkg/errors"
)

// otpService implements the OtpUsecase interface.
type otpService struct {
	otpRepo     repository.OtpRepository
	pepper      string
	ttl         time.Duration
	maxAttempts int
	logger      *slog.Logger

	now func() time.Time
}

// NewOtpService is the constructor for otpService.
func NewOtpService(
	cfg *config.Config,
	otpRepo repository.OtpRepository,
	logger *slog.Logger,
) usecase.OtpUsecase {
	return &otpService{
		otpRepo:     otpRepo,
		pepper:      cfg.Auth.OtpPepper,
		ttl:         cfg.Auth.OtpTTL,
		maxAttempts: cfg.Auth.OtpMaxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *otpService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue mints a fresh code and replaces any previous record for the email in
// one write, so concurrent issuance is last-write-wins and the attempt
// counter always restarts at zero.
func (srv *otpService) Issue(ctx context.Context, email string) (string, error) {
	code, err := auth.NewOtpCode()
	if err != nil {
		return "", errors.Wrap(err, "failed to issue otp")
	}

	record := &entity.OtpCode{
		Email:     email,
		OtpHash:   auth.HashOtpCode(code, srv.pepper),
		ExpiresAt: srv.now().Add(srv.ttl),
		Attempts:  0,
	}
	if err := srv.otpRepo.Replace(ctx, record); err != nil {
		return "", errors.Wrap(err, "failed to store otp record")
	}

	srv.log(ctx).Debug("OTP issued", slog.String("email", email))

	return code, nil
}

// Verify checks a submitted code. Order matters: expiry and the attempt
// ceiling are enforced before the digest comparison, so a caller who has
// already spent the ceiling cannot probe further codes.
func (srv *otpService) Verify(ctx context.Context, email, code string) error {
	record, err := srv.otpRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOtpNotFound) {
			return domainerrors.ErrOtpInvalidOrExpired.WrapMessage("no otp record")
		}

		return errors.Wrap(err, "failed to load otp record")
	}

	if record.Expired(srv.now()) {
		return domainerrors.ErrOtpInvalidOrExpired.WrapMessage("otp expired")
	}

	if record.Attempts >= srv.maxAttempts {
		return domainerrors.ErrTooManyAttempts.WrapMessage("otp attempt ceiling reached")
	}

	if auth.HashOtpCode(code, srv.pepper) != record.OtpHash {
		if err := srv.otpRepo.SaveAttempts(ctx, email, record.Attempts+1); err != nil {
			return errors.Wrap(err, "failed to record otp attempt")
		}

		srv.log(ctx).Warn("OTP mismatch",
			slog.String("email", email),
			slog.Int("attempts", record.Attempts+1),
		)

		return domainerrors.ErrOtpInvalid.WrapMessage("otp mismatch")
	}

	return nil
}

// Discard removes the record for an email.
func (srv *otpService) Discard(ctx context.Context, email string) error {
	if err := srv.otpRepo.Delete(ctx, email); err != nil {
		return errors.Wrap(err, "failed to discard otp record")
	}

	return nil
}
