package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gauth/internal/pkg/config"
	"github.com/shandysiswandi/gauth/internal/pkg/idempotency"
	"github.com/shandysiswandi/gauth/internal/pkg/instrument"
	"github.com/shandysiswandi/gauth/internal/pkg/mail"
	"github.com/shandysiswandi/gauth/internal/pkg/validator"
)

type fakeIdempotency struct {
	keys    []string
	execErr error
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

type fakeMail struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type stubConfig struct{ config.Config }

func (stubConfig) GetMinute(string) time.Duration { return 10 * time.Minute }

func newTestUsecase(t *testing.T, idemp *fakeIdempotency, mailer *fakeMail) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	return NewNotification(Dependency{
		Config:      stubConfig{},
		Validator:   v,
		Idempotency: idemp,
		RepoMail:    mailer,
		Instrument:  instrument.NewNoop(),
	})
}

func validInput() ConsumeOTPIssuedInput {
	return ConsumeOTPIssuedInput{
		UserID:   1,
		Email:    "user@example.com",
		Username: "user_01",
		Code:     "123456",
		Purpose:  1,
	}
}

func TestConsumeOTPIssuedRegistration(t *testing.T) {
	idemp := &fakeIdempotency{}
	mailer := &fakeMail{}
	uc := newTestUsecase(t, idemp, mailer)

	if err := uc.ConsumeOTPIssued(t.Context(), validInput()); err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent emails = %d, want 1", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To[0] != "user@example.com" {
		t.Fatalf("To = %v, want user@example.com", msg.To)
	}
	if msg.Subject != "Verify your email address" {
		t.Fatalf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.TextBody, "123456") {
		t.Fatalf("body does not carry the code: %q", msg.TextBody)
	}
	if !strings.Contains(msg.TextBody, "user_01") {
		t.Fatalf("body does not address the user: %q", msg.TextBody)
	}

	if len(idemp.keys) != 1 || idemp.keys[0] != "otp_issued:1:1:123456" {
		t.Fatalf("idempotency keys = %v", idemp.keys)
	}
}

func TestConsumeOTPIssuedLoginSubject(t *testing.T) {
	mailer := &fakeMail{}
	uc := newTestUsecase(t, &fakeIdempotency{}, mailer)

	in := validInput()
	in.Purpose = 2

	if err := uc.ConsumeOTPIssued(t.Context(), in); err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}

	if mailer.sent[0].Subject != "Your login code" {
		t.Fatalf("Subject = %q, want Your login code", mailer.sent[0].Subject)
	}
}

func TestConsumeOTPIssuedDeduplicated(t *testing.T) {
	for _, execErr := range []error{
		idempotency.ErrAlreadyCompleted,
		idempotency.ErrAlreadyInProgress,
		idempotency.ErrAlreadyFailed,
	} {
		mailer := &fakeMail{}
		uc := newTestUsecase(t, &fakeIdempotency{execErr: execErr}, mailer)

		if err := uc.ConsumeOTPIssued(t.Context(), validInput()); err != nil {
			t.Fatalf("ConsumeOTPIssued() error = %v for %v", err, execErr)
		}
		if len(mailer.sent) != 0 {
			t.Fatalf("email sent despite dedupe state %v", execErr)
		}
	}
}

func TestConsumeOTPIssuedInvalidPayloadDropped(t *testing.T) {
	mailer := &fakeMail{}
	uc := newTestUsecase(t, &fakeIdempotency{}, mailer)

	in := validInput()
	in.Email = "not-an-email"

	// Malformed events are dropped, not retried.
	if err := uc.ConsumeOTPIssued(t.Context(), in); err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v, want nil", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("email sent for an invalid payload")
	}
}

func TestConsumeOTPIssuedRetriesTransientFailure(t *testing.T) {
	mailer := &fakeMail{failures: 2}
	uc := newTestUsecase(t, &fakeIdempotency{}, mailer)

	if err := uc.ConsumeOTPIssued(t.Context(), validInput()); err != nil {
		t.Fatalf("ConsumeOTPIssued() error = %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent emails = %d, want 1 after retries", len(mailer.sent))
	}
}
