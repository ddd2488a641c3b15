package service

import (
	"context"

	"frishta/internal/domain/entity"
)

// WelcomeEmail is the payload for the post-verification notification.
type WelcomeEmail struct {
	To         string
	FullName   string
	Categories []string
	Songs      []*entity.Song // Catalog entries filtered to the user's categories.
}

// Mailer delivers transactional email. From the core's perspective both sends
// are fire-and-forget: callers detach them from the request path and a
// delivery failure is reported to the operator log, never to the end user.
type Mailer interface {
	// SendOtpEmail delivers a one-time passcode to an address.
	SendOtpEmail(ctx context.Context, to, otp string) error

	// SendWelcomeEmail delivers the post-verification welcome notification.
	SendWelcomeEmail(ctx context.Context, email *WelcomeEmail) error
}
