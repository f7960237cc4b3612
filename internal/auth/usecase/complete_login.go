package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

type CompleteLoginInput struct {
	UserID  int64  `validate:"required"`
	OTPCode string `validate:"required,otpcode"`
}

type CompleteLoginOutput struct {
	User  entity.User
	Token string
}

func (s *Usecase) CompleteLogin(ctx context.Context, in CompleteLoginInput) (*CompleteLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "CompleteLogin")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", in.UserID)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.consumeOTP(ctx, user.ID, in.OTPCode, entity.OTPPurposeLogin); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.repoDB.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo touch last login", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	user.LastLoginAt = &now

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CompleteLoginOutput{User: *user, Token: token}, nil
}
