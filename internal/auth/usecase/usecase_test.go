package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/config"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
	"github.com/shandysiswandi/gauth/internal/pkg/hash"
	"github.com/shandysiswandi/gauth/internal/pkg/instrument"
	"github.com/shandysiswandi/gauth/internal/pkg/jwt"
	"github.com/shandysiswandi/gauth/internal/pkg/validator"
)

type fakeDB struct {
	users map[int64]*entity.User

	createdUsers []entity.User
	createdOTPs  []entity.OneTimeCode
	verified     []int64
	touched      []int64
	consumed     []entity.OTPPurpose

	consumeOK  bool
	consumeErr error
	createErr  error
	getErr     error
}

func newFakeDB(users ...entity.User) *fakeDB {
	db := &fakeDB{users: make(map[int64]*entity.User), consumeOK: true}
	for i := range users {
		u := users[i]
		db.users[u.ID] = &u
	}
	return db
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdUsers = append(f.createdUsers, user)
	f.users[user.ID] = &user
	return nil
}

func (f *fakeDB) CreateOTP(_ context.Context, code entity.OneTimeCode) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdOTPs = append(f.createdOTPs, code)
	return nil
}

func (f *fakeDB) MarkUserVerified(_ context.Context, id int64) error {
	f.verified = append(f.verified, id)
	if u, ok := f.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (f *fakeDB) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	f.touched = append(f.touched, id)
	if u, ok := f.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (f *fakeDB) ConsumeOTP(_ context.Context, _ int64, _ string, purpose entity.OTPPurpose, _ time.Time) (bool, error) {
	if f.consumeErr != nil {
		return false, f.consumeErr
	}
	if f.consumeOK {
		f.consumed = append(f.consumed, purpose)
	}
	return f.consumeOK, nil
}

type fakeMessaging struct {
	events []OTPIssuedEvent
	err    error
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)
	return nil
}

type fakeJWT struct{ token string }

func (f fakeJWT) Generate(int64, string) (string, error) { return f.token, nil }
func (f fakeJWT) Verify(string) (jwt.Claims, error)      { return jwt.Claims{}, nil }

type fixedOTP struct{ code string }

func (f fixedOTP) Generate() (string, error) { return f.code, nil }

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubConfig struct{ config.Config }

func (stubConfig) GetMinute(string) time.Duration { return 10 * time.Minute }

var (
	testNow   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	errBroker = errors.New("broker unavailable")
	errDown   = errors.New("database unavailable")
)

func newTestUsecase(t *testing.T, db *fakeDB, msg *fakeMessaging) *Usecase {
	t.Helper()

	return newTestUsecaseOTPWidth(t, db, msg, 6, "123456")
}

func newTestUsecaseOTPWidth(t *testing.T, db *fakeDB, msg *fakeMessaging, width int, code string) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator(validator.WithOTPCodeLength(width))
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	return New(Dependency{
		RepoDB:        db,
		RepoMessaging: msg,
		Validator:     v,
		Config:        stubConfig{},
		Bcrypt:        hash.NewBcrypt(4, ""),
		UID:           &seqID{next: 1000},
		OTP:           fixedOTP{code: code},
		Clock:         fixedClock{now: testNow},
		JWT:           fakeJWT{token: "test-token"},
		Instrument:    instrument.NewNoop(),
	})
}

func mustHash(t *testing.T, plaintext string) string {
	t.Helper()

	digest, err := hash.NewBcrypt(4, "").Hash(plaintext)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	return string(digest)
}

func assertGoError(t *testing.T, err error, wantStatus, wantAPICode int) {
	t.Helper()

	if err == nil {
		t.Fatal("error = nil, want error")
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("error type = %T (%v), want *goerror.Error", err, err)
	}
	if got := gerr.StatusCode(); got != wantStatus {
		t.Fatalf("StatusCode() = %d, want %d (err=%v)", got, wantStatus, err)
	}
	if got := gerr.APICode(); got != wantAPICode {
		t.Fatalf("APICode() = %d, want %d (err=%v)", got, wantAPICode, err)
	}
}
