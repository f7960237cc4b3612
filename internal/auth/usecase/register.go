package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,username"`
	Password string `validate:"required,password"`
}

type RegisterOutput struct {
	User entity.User
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(strings.ToLower(in.Username))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, goerror.NewBusiness("Username already taken", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.User{
		ID:         s.uid.Generate(),
		Email:      in.Email,
		Username:   in.Username,
		Password:   string(hashedPassword),
		IsVerified: false,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Email or username already in use", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", user.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.issueOTP(ctx, &user, entity.OTPPurposeRegistration); err != nil {
		return nil, err
	}

	return &RegisterOutput{User: user}, nil
}
