package usecase

import (
	"net/http"
	"testing"

	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/jwt"
)

func TestProfile(t *testing.T) {
	db := newFakeDB(entity.User{ID: 7, Email: "user@example.com", Username: "user_01", IsVerified: true})
	uc := newTestUsecase(t, db, &fakeMessaging{})

	ctx := jwt.SetAuth(t.Context(), jwt.Claims{UserID: 7, UserEmail: "user@example.com"})

	out, err := uc.Profile(ctx, ProfileInput{})
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if out.User.ID != 7 || out.User.Username != "user_01" {
		t.Fatalf("user = %+v, want id 7 username user_01", out.User)
	}
}

func TestProfileWithoutClaims(t *testing.T) {
	uc := newTestUsecase(t, newFakeDB(), &fakeMessaging{})

	_, err := uc.Profile(t.Context(), ProfileInput{})
	assertGoError(t, err, http.StatusUnauthorized, 1001)
}

func TestProfileUnknownUser(t *testing.T) {
	uc := newTestUsecase(t, newFakeDB(), &fakeMessaging{})

	ctx := jwt.SetAuth(t.Context(), jwt.Claims{UserID: 99, UserEmail: "ghost@example.com"})

	_, err := uc.Profile(ctx, ProfileInput{})
	assertGoError(t, err, http.StatusUnauthorized, 1001)
}
