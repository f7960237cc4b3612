package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/clock"
	"github.com/shandysiswandi/gauth/internal/pkg/config"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
	"github.com/shandysiswandi/gauth/internal/pkg/hash"
	"github.com/shandysiswandi/gauth/internal/pkg/instrument"
	"github.com/shandysiswandi/gauth/internal/pkg/jwt"
	"github.com/shandysiswandi/gauth/internal/pkg/otp"
	"github.com/shandysiswandi/gauth/internal/pkg/uid"
	"github.com/shandysiswandi/gauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPIssuedEvent struct {
	UserID   int64
	Email    string
	Username string
	Code     string
	Purpose  entity.OTPPurpose
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) error
	CreateOTP(ctx context.Context, code entity.OneTimeCode) error

	MarkUserVerified(ctx context.Context, id int64) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	ConsumeOTP(ctx context.Context, userID int64, code string, purpose entity.OTPPurpose, now time.Time) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UID           uid.NumberID
	OTP           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// findUserByIdentifier looks a user up by email when the identifier contains
// an "@", otherwise by username.
func (s *Usecase) findUserByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if strings.Contains(identifier, "@") {
		return s.repoDB.GetUserByEmail(ctx, identifier)
	}
	return s.repoDB.GetUserByUsername(ctx, identifier)
}

// issueOTP persists a fresh code and publishes it for out-of-band delivery.
// Earlier codes for the same user and purpose stay valid until they expire.
// Publish failures are logged only; delivery is not part of the request path.
func (s *Usecase) issueOTP(ctx context.Context, user *entity.User, purpose entity.OTPPurpose) error {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	if err := s.repoDB.CreateOTP(ctx, entity.OneTimeCode{
		ID:        s.uid.Generate(),
		UserID:    user.ID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.cfg.GetMinute("modules.auth.otp_ttl_minutes")),
		CreatedAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Code:     code,
		Purpose:  purpose,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)
	}

	return nil
}

// consumeOTP burns the code or fails with an enumeration-safe error. Wrong,
// expired and already-used codes are indistinguishable to the caller.
func (s *Usecase) consumeOTP(ctx context.Context, userID int64, code string, purpose entity.OTPPurpose) error {
	ok, err := s.repoDB.ConsumeOTP(ctx, userID, strings.TrimSpace(code), purpose, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp code", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if !ok {
		slog.WarnContext(ctx, "otp code rejected", "user_id", userID, "purpose", purpose.String())
		return goerror.NewBusiness("Invalid credentials", goerror.CodeInvalidCredentials)
	}

	return nil
}

func (s *Usecase) getUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
