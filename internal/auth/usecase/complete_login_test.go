package usecase

import (
	"net/http"
	"testing"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
)

func TestCompleteLogin(t *testing.T) {
	db := newFakeDB(entity.User{
		ID:         1,
		Email:      "user@example.com",
		Username:   "user_01",
		IsVerified: true,
	})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	out, err := uc.CompleteLogin(t.Context(), CompleteLoginInput{
		UserID:  1,
		OTPCode: "123456",
	})
	if err != nil {
		t.Fatalf("CompleteLogin() error = %v", err)
	}

	if out.Token != "test-token" {
		t.Fatalf("token = %q, want test-token", out.Token)
	}
	if out.User.LastLoginAt == nil || !out.User.LastLoginAt.Equal(testNow) {
		t.Fatalf("LastLoginAt = %v, want %v", out.User.LastLoginAt, testNow)
	}
	if len(db.touched) != 1 || db.touched[0] != 1 {
		t.Fatalf("touched ids = %v, want [1]", db.touched)
	}
	if len(db.consumed) != 1 || db.consumed[0] != entity.OTPPurposeLogin {
		t.Fatalf("consumed purposes = %v, want login", db.consumed)
	}
}

func TestCompleteLoginUnknownUser(t *testing.T) {
	uc := newTestUsecase(t, newFakeDB(), &fakeMessaging{})

	_, err := uc.CompleteLogin(t.Context(), CompleteLoginInput{
		UserID:  99,
		OTPCode: "123456",
	})
	assertGoError(t, err, http.StatusNotFound, 2002)
}

func TestCompleteLoginRejectedCode(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01", IsVerified: true})
	db.consumeOK = false
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.CompleteLogin(t.Context(), CompleteLoginInput{
		UserID:  1,
		OTPCode: "654321",
	})
	assertGoError(t, err, http.StatusUnauthorized, 1002)

	if len(db.touched) != 0 {
		t.Fatal("last login touched despite rejected code")
	}
}

// A second confirmation with the same code must fail once the code is burned.
func TestCompleteLoginSingleUse(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "user_01", IsVerified: true})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	if _, err := uc.CompleteLogin(t.Context(), CompleteLoginInput{UserID: 1, OTPCode: "123456"}); err != nil {
		t.Fatalf("first CompleteLogin() error = %v", err)
	}

	db.consumeOK = false

	_, err := uc.CompleteLogin(t.Context(), CompleteLoginInput{UserID: 1, OTPCode: "123456"})
	assertGoError(t, err, http.StatusUnauthorized, 1002)
}
