package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

type VerifyEmailInput struct {
	Email   string `validate:"required,email"`
	OTPCode string `validate:"required,otpcode"`
}

type VerifyEmailOutput struct {
	User  entity.User
	Token string
}

// VerifyEmail burns a registration code, marks the account verified and logs
// the user in with a fresh token in one step.
func (s *Usecase) VerifyEmail(ctx context.Context, in VerifyEmailInput) (*VerifyEmailOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyEmail")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.getUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if user.IsVerified {
		return nil, goerror.NewBusiness("User is already verified", goerror.CodeInvalidInput)
	}

	if err := s.consumeOTP(ctx, user.ID, in.OTPCode, entity.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	if err := s.repoDB.MarkUserVerified(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark user verified", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	user.IsVerified = true

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyEmailOutput{User: *user, Token: token}, nil
}
