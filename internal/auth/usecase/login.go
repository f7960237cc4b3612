package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

type LoginInput struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

type LoginOutput struct {
	User                 entity.User
	OTPSent              bool
	RequiresVerification bool
}

// Login checks the password and, when it matches, issues a one-time code. No
// token is returned here; the login completes only after the code is
// confirmed. An unknown identifier and a wrong password produce the same
// error so accounts cannot be enumerated.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.findUserByIdentifier(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeInvalidCredentials)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeInvalidCredentials)
	}

	if !user.IsVerified {
		if err := s.issueOTP(ctx, user, entity.OTPPurposeRegistration); err != nil {
			return nil, err
		}

		return &LoginOutput{
			User:                 *user,
			OTPSent:              true,
			RequiresVerification: true,
		}, nil
	}

	if err := s.issueOTP(ctx, user, entity.OTPPurposeLogin); err != nil {
		return nil, err
	}

	return &LoginOutput{User: *user, OTPSent: true}, nil
}
