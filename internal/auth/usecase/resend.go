package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

type ResendVerificationInput struct {
	Email string `validate:"required,email"`
}

// ResendVerification issues a fresh registration code. Codes issued earlier
// stay valid until they expire.
func (s *Usecase) ResendVerification(ctx context.Context, in ResendVerificationInput) error {
	ctx, span := s.startSpan(ctx, "ResendVerification")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.getUserByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return goerror.NewBusiness("User is already verified", goerror.CodeInvalidInput)
	}

	return s.issueOTP(ctx, user, entity.OTPPurposeRegistration)
}

type ResendLoginOTPInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) ResendLoginOTP(ctx context.Context, in ResendLoginOTPInput) error {
	ctx, span := s.startSpan(ctx, "ResendLoginOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.getUserByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	return s.issueOTP(ctx, user, entity.OTPPurposeLogin)
}
