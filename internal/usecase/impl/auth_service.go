package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"frishta/config"
	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	domainerrors "frishta/internal/domain/errors"
	"frishta/internal/domain/lifecycle"
	"frishta/internal/domain/repository"
	"frishta/internal/domain/service"
	"frishta/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// phoneRegex accepts a leading plus or digit followed by 6 to 19 digits,
// spaces or dashes.
var phoneRegex = regexp.MustCompile(`^[+\d][\d\s-]{6,19}$`)

const (
	minAge = 5
	maxAge = 120
)

// authService implements the AuthUsecase interface. It orchestrates the
// registration flow: validation, the pending-identity upsert, OTP issuance
// and the post-verification side effects.
type authService struct {
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	mailer    service.Mailer
	otpUC     usecase.OtpUsecase
	sessionUC usecase.SessionUsecase
	songUC    usecase.SongUsecase
	exposeOtp bool
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	mailer service.Mailer,
	otpUC usecase.OtpUsecase,
	sessionUC usecase.SessionUsecase,
	songUC usecase.SongUsecase,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		mailer:    mailer,
		otpUC:     otpUC,
		sessionUC: sessionUC,
		songUC:    songUC,
		exposeOtp: cfg.Auth.ExposeOtpInResponse,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterStart validates the submission, stores the pending identity and
// queues the verification email. Restarting a pending registration is
// allowed and overwrites the previous submission; a verified email is
// rejected with a conflict.
func (srv *authService) RegisterStart(ctx context.Context, input *usecase.RegisterStartInput) (*usecase.OtpIssuedOutput, error) {
	user, err := buildPendingUser(input)
	if err != nil {
		return nil, err
	}

	existing, err := srv.userRepo.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing registration")
	}
	if existing != nil && existing.IsEmailVerified {
		return nil, domainerrors.ErrAlreadyRegistered.WrapMessage("email already verified")
	}

	salt, hash, err := srv.hasher.Derive(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive credentials")
	}
	user.PasswordSalt = salt
	user.PasswordHash = hash

	if err := srv.userRepo.UpsertPending(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to store pending registration")
	}

	otp, err := srv.otpUC.Issue(ctx, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue otp")
	}

	srv.log(ctx).Info("Registration started", slog.String("email", user.Email))
	srv.queueOtpEmail(ctx, user.Email, otp)

	return srv.otpIssuedOutput("OTP generated. Please check your email.", otp), nil
}

// RegisterVerify confirms the OTP, marks the email verified and queues the
// welcome email with songs for the user's categories.
func (srv *authService) RegisterVerify(ctx context.Context, input *usecase.RegisterVerifyInput) error {
	email := normalizeEmail(input.Email)

	if err := srv.otpUC.Verify(ctx, email, input.Otp); err != nil {
		return err
	}

	user, err := srv.userRepo.MarkEmailVerified(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("no registration for verified otp")
		}

		return errors.Wrap(err, "failed to mark email verified")
	}

	if err := srv.otpUC.Discard(ctx, email); err != nil {
		// The code was already consumed; a stale record only blocks reuse.
		srv.log(ctx).Warn("Failed to discard consumed otp", slog.Any("error", err))
	}

	srv.log(ctx).Info("Email verified", slog.String("email", email))
	srv.queueWelcomeEmail(ctx, user)

	return nil
}

// RegisterResend issues a fresh OTP for a pending registration.
func (srv *authService) RegisterResend(ctx context.Context, email string) (*usecase.OtpIssuedOutput, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, domainerrors.ErrMissingFields.WrapMessage("email is required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no registration to resend for")
		}

		return nil, errors.Wrap(err, "failed to load registration")
	}

	if user.IsEmailVerified {
		return nil, domainerrors.ErrAlreadyVerified.WrapMessage("resend after verification")
	}

	otp, err := srv.otpUC.Issue(ctx, normalized)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue otp")
	}

	srv.log(ctx).Info("OTP resent", slog.String("email", normalized))
	srv.queueOtpEmail(ctx, normalized, otp)

	return srv.otpIssuedOutput("New OTP generated. Please check your email.", otp), nil
}

// Login checks the credentials and mints a session. Unknown emails and wrong
// passwords are indistinguishable to the caller; an unverified email is
// reported as such only after the account is known to exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	if !user.IsEmailVerified {
		return nil, domainerrors.ErrEmailNotVerified.WrapMessage("login before verification")
	}

	if !srv.hasher.Verify(input.Password, user.PasswordSalt, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.sessionUC.Issue(ctx, user.ID, input.UserAgent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	srv.log(ctx).Info("User logged in", slog.Any("user_id", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// Logout revokes the presented session.
func (srv *authService) Logout(ctx context.Context, tokenHash string) error {
	return srv.sessionUC.Revoke(ctx, tokenHash)
}

// Profile returns the authenticated user's account.
func (srv *authService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile for revoked account")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

func (srv *authService) otpIssuedOutput(message, otp string) *usecase.OtpIssuedOutput {
	out := &usecase.OtpIssuedOutput{Message: message, EmailQueued: true}
	if srv.exposeOtp {
		out.Otp = otp
	}

	return out
}

// queueOtpEmail delivers the code in the background. Delivery failure never
// fails the request; the caller already got its response.
func (srv *authService) queueOtpEmail(ctx context.Context, email, otp string) {
	logger := srv.log(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer cancel()

		if err := srv.mailer.SendOtpEmail(sendCtx, email, otp); err != nil {
			logger.Error("OTP email failed", slog.String("email", email), slog.Any("error", err))

			return
		}
		logger.Info("OTP email sent", slog.String("email", email))
	}()
}

// queueWelcomeEmail assembles the category-matched song list and delivers the
// welcome email in the background.
func (srv *authService) queueWelcomeEmail(ctx context.Context, user *entity.User) {
	logger := srv.log(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer cancel()

		songs, err := srv.songUC.SongsForCategories(sendCtx, user.Categories)
		if err != nil {
			logger.Warn("Welcome email song lookup failed", slog.Any("error", err))
			songs = nil
		}

		welcome := &service.WelcomeEmail{
			To:         user.Email,
			FullName:   user.FullName,
			Categories: user.Categories,
			Songs:      songs,
		}
		if err := srv.mailer.SendWelcomeEmail(sendCtx, welcome); err != nil {
			logger.Error("Welcome email failed", slog.String("email", user.Email), slog.Any("error", err))

			return
		}
		logger.Info("Welcome email sent", slog.String("email", user.Email))
	}()
}

// buildPendingUser runs the registration validation chain and returns the
// normalized pending identity. Credential fields are filled in by the caller.
func buildPendingUser(input *usecase.RegisterStartInput) (*entity.User, error) {
	if input.FullName == "" || input.Email == "" || input.Password == "" || input.Role == "" ||
		input.PhoneNo == "" || input.Country == "" || input.State == "" || input.Gender == "" ||
		input.Age == nil {
		return nil, domainerrors.ErrMissingFields.WrapMessage("incomplete registration")
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + input.Role)
	}

	gender := entity.Gender(strings.ToLower(strings.TrimSpace(input.Gender)))
	if !gender.IsValid() {
		return nil, domainerrors.ErrInvalidGender.WrapMessage("unknown gender")
	}

	age := *input.Age
	if age < minAge || age > maxAge {
		return nil, domainerrors.ErrInvalidAge.WrapMessage("age out of range")
	}

	phone := strings.TrimSpace(input.PhoneNo)
	if !phoneRegex.MatchString(phone) {
		return nil, domainerrors.ErrInvalidPhone.WrapMessage("phone format rejected")
	}

	country := strings.TrimSpace(input.Country)
	state := strings.TrimSpace(input.State)
	if country == "" || state == "" {
		return nil, domainerrors.ErrMissingCountryState.WrapMessage("blank country or state")
	}

	categories, err := canonicalizeCategories(input.Categories)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		FullName:   strings.TrimSpace(input.FullName),
		Email:      normalizeEmail(input.Email),
		PhoneNo:    phone,
		Country:    country,
		State:      state,
		Gender:     gender,
		Age:        age,
		Categories: categories,
		Role:       role,
	}, nil
}

// canonicalizeCategories maps the submitted categories onto the canonical
// set and enforces the exactly-three-distinct rule. Distinctness is judged
// after canonicalization, so "pop" and "Pop " are the same pick.
func canonicalizeCategories(raw []string) ([]string, error) {
	canonical := make([]string, 0, len(raw))
	for _, value := range raw {
		category, ok := entity.CanonicalCategory(value)
		if !ok {
			return nil, domainerrors.ErrInvalidCategory.WrapMessage("unknown category " + value)
		}
		canonical = append(canonical, category)
	}

	if len(canonical) != entity.RequiredCategoryCount {
		return nil, domainerrors.ErrCategoryCount.WrapMessage("wrong category count")
	}

	seen := make(map[string]struct{}, len(canonical))
	for _, category := range canonical {
		if _, dup := seen[category]; dup {
			return nil, domainerrors.ErrDuplicateCategories.WrapMessage("category picked twice")
		}
		seen[category] = struct{}{}
	}

	return canonical, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
