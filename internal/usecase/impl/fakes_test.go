package impl

import (
	"context"
	"sync"
	"time"

	"frishta/internal/domain/entity"
	"frishta/internal/domain/repository"
	"frishta/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and service interfaces. They mimic the
// store semantics the services rely on (guarded upsert, replace, idempotent
// delete) without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (f *fakeUserRepo) UpsertPending(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return f.upsertErr
	}

	if existing, ok := f.users[user.Email]; ok {
		if existing.IsEmailVerified {
			// Guarded upsert never clobbers a verified row.
			return nil
		}
		user.ID = existing.ID
	} else {
		user.ID = uuid.New()
	}
	user.IsEmailVerified = false
	clone := *user
	f.users[user.Email] = &clone

	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.IsEmailVerified = true
	clone := *user

	return &clone, nil
}

type fakeOtpRepo struct {
	mu      sync.Mutex
	records map[string]*entity.OtpCode
}

func newFakeOtpRepo() *fakeOtpRepo {
	return &fakeOtpRepo{records: make(map[string]*entity.OtpCode)}
}

func (f *fakeOtpRepo) Replace(_ context.Context, record *entity.OtpCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *record
	f.records[record.Email] = &clone

	return nil
}

func (f *fakeOtpRepo) FindByEmail(_ context.Context, email string) (*entity.OtpCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[email]
	if !ok {
		return nil, repository.ErrOtpNotFound
	}
	clone := *record

	return &clone, nil
}

func (f *fakeOtpRepo) SaveAttempts(_ context.Context, email string, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if record, ok := f.records[email]; ok {
		record.Attempts = attempts
	}

	return nil
}

func (f *fakeOtpRepo) Delete(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.records, email)

	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.ID = uuid.New()
	clone := *session
	f.sessions[session.TokenHash] = &clone

	return nil
}

func (f *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := *session

	return &clone, nil
}

func (f *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, tokenHash)

	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	now := time.Now()
	for hash, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, hash)
			count++
		}
	}

	return count, nil
}

// fakeHasher derives reversible "credentials" so tests can assert on them.
type fakeHasher struct{}

func (fakeHasher) Derive(password string) (string, string, error) {
	return "salt", "hash:" + password, nil
}

func (fakeHasher) Verify(password, _, expectedHash string) bool {
	return expectedHash == "hash:"+password
}

type sentOtp struct {
	To  string
	Otp string
}

type fakeMailer struct {
	mu       sync.Mutex
	otps     []sentOtp
	welcomes []*service.WelcomeEmail
}

func (f *fakeMailer) SendOtpEmail(_ context.Context, to, otp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.otps = append(f.otps, sentOtp{To: to, Otp: otp})

	return nil
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, email *service.WelcomeEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.welcomes = append(f.welcomes, email)

	return nil
}

func (f *fakeMailer) sentOtps() []sentOtp {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]sentOtp(nil), f.otps...)
}

func (f *fakeMailer) sentWelcomes() []*service.WelcomeEmail {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*service.WelcomeEmail(nil), f.welcomes...)
}

type fakeCatalog struct {
	songs []*entity.Song
	err   error
}

func (f *fakeCatalog) List(context.Context) ([]*entity.Song, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.songs, nil
}
