package usecase

import (
	"net/http"
	"testing"
	"time"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/hash"
)

func TestRegister(t *testing.T) {
	db := newFakeDB()
	msg := &fakeMessaging{}
	uc := newTestUsecase(t, db, msg)

	out, err := uc.Register(t.Context(), RegisterInput{
		Email:    "  User@Example.COM ",
		Username: "New_User",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if out.User.Email != "user@example.com" {
		t.Fatalf("user.Email = %q, want normalized user@example.com", out.User.Email)
	}
	if out.User.Username != "new_user" {
		t.Fatalf("user.Username = %q, want normalized new_user", out.User.Username)
	}
	if out.User.IsVerified {
		t.Fatal("user.IsVerified = true, want unverified account")
	}
	if out.User.Password == "Secret123!" {
		t.Fatal("user.Password stored in plaintext")
	}
	if !hash.NewBcrypt(4, "").Verify(out.User.Password, "Secret123!") {
		t.Fatal("stored password digest does not verify")
	}

	if len(db.createdOTPs) != 1 {
		t.Fatalf("created OTPs = %d, want 1", len(db.createdOTPs))
	}
	otp := db.createdOTPs[0]
	if otp.Purpose != entity.OTPPurposeRegistration {
		t.Fatalf("otp.Purpose = %v, want registration", otp.Purpose)
	}
	if otp.Code != "123456" {
		t.Fatalf("otp.Code = %q, want 123456", otp.Code)
	}
	if want := testNow.Add(10 * time.Minute); !otp.ExpiresAt.Equal(want) {
		t.Fatalf("otp.ExpiresAt = %v, want %v", otp.ExpiresAt, want)
	}

	if len(msg.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(msg.events))
	}
	if msg.events[0].Code != "123456" || msg.events[0].Email != "user@example.com" {
		t.Fatalf("published event = %+v", msg.events[0])
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{name: "bad email", in: RegisterInput{Email: "nope", Username: "new_user", Password: "Secret123!"}},
		{name: "bad username", in: RegisterInput{Email: "user@example.com", Username: "a!", Password: "Secret123!"}},
		{name: "short password", in: RegisterInput{Email: "user@example.com", Username: "new_user", Password: "short"}},
		{name: "missing fields", in: RegisterInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newFakeDB()
			uc := newTestUsecase(t, db, &fakeMessaging{})

			_, err := uc.Register(t.Context(), tt.in)
			assertGoError(t, err, http.StatusUnprocessableEntity, 4001)

			if len(db.createdUsers) != 0 {
				t.Fatal("user created despite validation failure")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "user@example.com", Username: "existing"})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.Register(t.Context(), RegisterInput{
		Email:    "user@example.com",
		Username: "new_user",
		Password: "Secret123!",
	})
	assertGoError(t, err, http.StatusConflict, 2001)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newFakeDB(entity.User{ID: 1, Email: "other@example.com", Username: "new_user"})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	_, err := uc.Register(t.Context(), RegisterInput{
		Email:    "user@example.com",
		Username: "new_user",
		Password: "Secret123!",
	})
	assertGoError(t, err, http.StatusConflict, 2001)
}

func TestRegisterPublishFailureDoesNotFail(t *testing.T) {
	db := newFakeDB()
	msg := &fakeMessaging{err: errBroker}
	uc := newTestUsecase(t, db, msg)

	out, err := uc.Register(t.Context(), RegisterInput{
		Email:    "user@example.com",
		Username: "new_user",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v, want nil when only publish fails", err)
	}
	if out == nil {
		t.Fatal("Register() output = nil")
	}
	if len(db.createdOTPs) != 1 {
		t.Fatalf("created OTPs = %d, want 1", len(db.createdOTPs))
	}
}
