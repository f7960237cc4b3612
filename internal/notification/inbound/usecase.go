package inbound

import (
	"context"

	"github.com/shandysiswandi/gauth/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPIssued(ctx context.Context, in usecase.ConsumeOTPIssuedInput) error
}
