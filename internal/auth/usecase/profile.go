package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
	"github.com/shandysiswandi/gauth/internal/pkg/jwt"
)

type ProfileInput struct{}

type ProfileOutput struct {
	User entity.User
}

func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{User: *user}, nil
}
