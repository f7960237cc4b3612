package usecase

import (
	"net/http"
	"testing"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
)

func TestVerifyEmail(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01"})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	out, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "User@Example.com",
		OTPCode: "123456",
	})
	if err != nil {
		t.Fatalf("VerifyEmail() error = %v", err)
	}

	if !out.User.IsVerified {
		t.Fatal("user.IsVerified = false after verification")
	}
	if out.Token != "test-token" {
		t.Fatalf("token = %q, want test-token", out.Token)
	}
	if len(db.verified) != 1 || db.verified[0] != 1 {
		t.Fatalf("verified ids = %v, want [1]", db.verified)
	}
	if len(db.consumed) != 1 || db.consumed[0] != entity.OTPPurposeRegistration {
		t.Fatalf("consumed purposes = %v, want registration", db.consumed)
	}
}

func TestVerifyEmailUnknownUser(t *testing.T) {
	uc := newTestUsecase(t, newFakeDB(), &fakeMessaging{})

	_, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "nobody@example.com",
		OTPCode: "123456",
	})
	assertGoError(t, err, http.StatusNotFound, 2002)
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01", IsVerified: true})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "user@example.com",
		OTPCode: "123456",
	})
	assertGoError(t, err, http.StatusUnprocessableEntity, 4001)

	if len(db.consumed) != 0 {
		t.Fatal("otp consumed for an already verified account")
	}
}

func TestVerifyEmailRejectedCode(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01"})
	db.consumeOK = false
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "user@example.com",
		OTPCode: "654321",
	})
	assertGoError(t, err, http.StatusUnauthorized, 1002)

	if len(db.verified) != 0 {
		t.Fatal("user marked verified despite rejected code")
	}
}

// Code width follows the generator configuration, not a fixed six digits.
func TestVerifyEmailConfiguredCodeWidth(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01"})
	uc := newTestUsecaseOTPWidth(t, db, &fakeMessaging{}, 8, "12345678")

	// Six digits is the wrong width for this deployment.
	_, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "user@example.com",
		OTPCode: "123456",
	})
	assertGoError(t, err, http.StatusUnprocessableEntity, 4001)

	out, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
		Email:   "user@example.com",
		OTPCode: "12345678",
	})
	if err != nil {
		t.Fatalf("VerifyEmail() error = %v", err)
	}
	if !out.User.IsVerified {
		t.Fatal("user.IsVerified = false after verification")
	}
}

func TestVerifyEmailBadCodeFormat(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01"})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		_, err := uc.VerifyEmail(t.Context(), VerifyEmailInput{
			Email:   "user@example.com",
			OTPCode: code,
		})
		assertGoError(t, err, http.StatusUnprocessableEntity, 4001)
	}
}
