package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/gauth/internal/pkg/mail"
	"github.com/shandysiswandi/gauth/internal/shared/event"
)

type (
	ConsumeOTPIssuedInput struct {
		UserID   int64  `validate:"required,gt=0"`
		Email    string `validate:"required,email"`
		Username string `validate:"required"`
		Code     string `validate:"required,otpcode"`
		Purpose  int16  `validate:"required,oneof=1 2"`
	}
)

// ConsumeOTPIssued emails a one-time code to its owner. Redelivered events are
// deduplicated by (user, purpose, code), so a broker retry does not send the
// same email twice.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	key := fmt.Sprintf("otp_issued:%d:%d:%s", in.UserID, in.Purpose, in.Code)
	err := s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return s.sendOTPEmail(ctx, in)
	}, idempotency.WithStateTTL(s.cfg.GetMinute("modules.notification.dedupe_ttl_minutes")))

	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "otp email already handled", "user_id", in.UserID)
		return nil
	}
	if errors.Is(err, idempotency.ErrAlreadyFailed) {
		slog.WarnContext(ctx, "otp email previously failed, skipping", "user_id", in.UserID)
		return nil
	}

	return err
}

func (s *Usecase) sendOTPEmail(ctx context.Context, in ConsumeOTPIssuedInput) error {
	registration := in.Purpose == event.OTPPurposeRegistration

	subject := lo.Ternary(registration, "Verify your email address", "Your login code")
	intro := lo.Ternary(registration,
		"Use this code to verify your email address:",
		"Use this code to complete your login:")

	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	body := fmt.Sprintf(
		"Hi %s,\n\n%s\n\n    %s\n\nThis code expires in %d minutes. If you did not request it, you can ignore this email.\n",
		in.Username, intro, in.Code, int(ttl.Minutes()),
	)

	b := retry.NewFibonacci(500 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(3, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, mail.Message{
			To:       []string{in.Email},
			Subject:  subject,
			TextBody: body,
		}); err != nil {
			slog.WarnContext(ctx, "failed to send otp email", "user_id", in.UserID, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}
