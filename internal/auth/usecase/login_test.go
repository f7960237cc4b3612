package usecase

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/goerror"
)

func TestLoginWithEmail(t *testing.T) {
	db := newFakeDB(entity.User{
		ID:         1,
		Email:      "user@example.com",
		Username:   "user_01",
		Password:   mustHash(t, "Secret123!"),
		IsVerified: true,
	})
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, db, msg)

	out, err := uc.Login(t.Context(), LoginInput{
		Identifier: "User@Example.com",
		Password:   "Secret123!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !out.OTPSent {
		t.Fatal("OTPSent = false, want true")
	}
	if out.RequiresVerification {
		t.Fatal("RequiresVerification = true for a verified account")
	}
	if len(db.createdOTPs) != 1 || db.createdOTPs[0].Purpose != entity.OTPPurposeLogin {
		t.Fatalf("created OTPs = %+v, want one login OTP", db.createdOTPs)
	}
	if len(msg.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(msg.events))
	}
}

func TestLoginWithUsername(t *testing.T) {
	db := newFakeDB(entity.User{
		ID:         1,
		Email:      "user@example.com",
		Username:   "user_01",
		Password:   mustHash(t, "Secret123!"),
		IsVerified: true,
	})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	out, err := uc.Login(t.Context(), LoginInput{
		Identifier: "USER_01",
		Password:   "Secret123!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.User.ID != 1 {
		t.Fatalf("user.ID = %d, want 1", out.User.ID)
	}
}

func TestLoginUnverifiedIssuesRegistrationOTP(t *testing.T) {
	db := newFakeDB(entity.User{
		ID:       1,
		Email:    "user@example.com",
		Username: "user_01",
		Password: mustHash(t, "Secret123!"),
	})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	out, err := uc.Login(t.Context(), LoginInput{
		Identifier: "user@example.com",
		Password:   "Secret123!",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !out.RequiresVerification {
		t.Fatal("RequiresVerification = false for an unverified account")
	}
	if len(db.createdOTPs) != 1 || db.createdOTPs[0].Purpose != entity.OTPPurposeRegistration {
		t.Fatalf("created OTPs = %+v, want one registration OTP", db.createdOTPs)
	}
}

// An unknown identifier and a wrong password must be indistinguishable.
func TestLoginEnumerationResistance(t *testing.T) {
	db := newFakeDB(entity.User{
		ID:         1,
		Email:      "user@example.com",
		Username:   "user_01",
		Password:   mustHash(t, "Secret123!"),
		IsVerified: true,
	})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, errUnknown := uc.Login(t.Context(), LoginInput{
		Identifier: "nobody@example.com",
		Password:   "Secret123!",
	})
	_, errWrongPass := uc.Login(t.Context(), LoginInput{
		Identifier: "user@example.com",
		Password:   "WrongPass1!",
	})

	assertGoError(t, errUnknown, http.StatusUnauthorized, 1002)
	assertGoError(t, errWrongPass, http.StatusUnauthorized, 1002)

	var g1, g2 *goerror.Error
	if !errors.As(errUnknown, &g1) || !errors.As(errWrongPass, &g2) {
		t.Fatal("expected *goerror.Error for both failures")
	}
	if g1.Msg() != g2.Msg() {
		t.Fatalf("messages differ: %q vs %q", g1.Msg(), g2.Msg())
	}

	if len(db.createdOTPs) != 0 {
		t.Fatal("OTP issued for a failed login")
	}
}

func TestLoginRepoFault(t *testing.T) {
	db := newFakeDB()
	db.getErr = errDown
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.Login(t.Context(), LoginInput{
		Identifier: "user@example.com",
		Password:   "Secret123!",
	})
	assertGoError(t, err, http.StatusInternalServerError, 1000)
}
