package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticID struct{ id string }

func (g staticID) Generate() string { return g.id }

var testSecret = []byte(strings.Repeat("s", 64))

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     testSecret,
		Issuer:     "gauth",
		Audiences:  []string{"gauth-api"},
		TTLMinutes: time.Hour,
		Clock:      fixedClock{now: now},
		UUID:       staticID{id: "jti-1"},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}
	return s
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want %v", err, ErrSigningKeyTooShort)
	}
}

func TestSymmetricGenerateVerify(t *testing.T) {
	s := newTestJWT(t, time.Now())

	token, err := s.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.UserEmail != "user@example.com" {
		t.Fatalf("claims.UserEmail = %q, want user@example.com", claims.UserEmail)
	}
	if claims.Subject != "42" {
		t.Fatalf("claims.Subject = %q, want 42", claims.Subject)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("claims.ID = %q, want jti-1", claims.ID)
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {
	s := newTestJWT(t, time.Now().Add(-2*time.Hour))

	token, err := s.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := s.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestSymmetricVerifyTampered(t *testing.T) {
	s := newTestJWT(t, time.Now())

	token, err := s.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	other, err := NewHS512(Config{
		Secret:     []byte(strings.Repeat("x", 64)),
		Issuer:     "gauth",
		Audiences:  []string{"gauth-api"},
		TTLMinutes: time.Hour,
		Clock:      fixedClock{now: time.Now()},
		UUID:       staticID{id: "jti-2"},
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatal("Verify() error = nil for token signed with a different key")
	}
}

func TestAuthContext(t *testing.T) {
	ctx := t.Context()

	if got := GetAuth(ctx); got != nil {
		t.Fatalf("GetAuth() = %v on empty context, want nil", got)
	}

	ctx = SetAuth(ctx, Claims{UserID: 7, UserEmail: "user@example.com"})

	got := GetAuth(ctx)
	if got == nil {
		t.Fatal("GetAuth() = nil after SetAuth")
	}
	if got.UserID != 7 {
		t.Fatalf("GetAuth().UserID = %d, want 7", got.UserID)
	}
}
