package usecase

import "context"

// OtpUsecase manages the one-per-email verification code lifecycle.
type OtpUsecase interface {
	// Issue mints a fresh code for the email and atomically replaces any
	// previous record, resetting the attempt counter. It returns the raw
	// code for delivery.
	Issue(ctx context.Context, email string) (string, error)

	// Verify checks a submitted code against the live record. A mismatch
	// spends an attempt; expiry and the attempt ceiling are enforced before
	// the code is compared. Failures surface as domain errors.
	Verify(ctx context.Context, email, code string) error

	// Discard removes the record for an email. Idempotent.
	Discard(ctx context.Context, email string) error
}
