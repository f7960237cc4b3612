//go:build integration

package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gauth/internal/auth/entity"
	"github.com/shandysiswandi/gauth/internal/pkg/instrument"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = `
CREATE TABLE auth_users (
	id BIGINT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	last_login_at TIMESTAMPTZ
);

CREATE TABLE auth_otps (
	id BIGINT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	code TEXT NOT NULL,
	purpose SMALLINT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	used BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);`

func setupDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gauth_test"),
		postgres.WithUsername("gauth"),
		postgres.WithPassword("gauth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return NewDB(pool, instrument.NewNoop())
}

func seedOTP(t *testing.T, s *DB, otp entity.OneTimeCode) {
	t.Helper()

	if err := s.CreateOTP(context.Background(), otp); err != nil {
		t.Fatalf("CreateOTP() error = %v", err)
	}
}

// Clients racing on the same code must not both get through with it.
func TestConsumeOTPConcurrent(t *testing.T) {
	s := setupDB(t)
	now := time.Now().UTC()

	seedOTP(t, s, entity.OneTimeCode{
		ID:        1,
		UserID:    10,
		Code:      "123456",
		Purpose:   entity.OTPPurposeLogin,
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	})

	const racers = 8
	results := make(chan bool, racers)
	errs := make(chan error, racers)

	var wg sync.WaitGroup
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.ConsumeOTP(context.Background(), 10, "123456", entity.OTPPurposeLogin, now)
			results <- ok
			errs <- err
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("ConsumeOTP() error = %v", err)
		}
	}

	var wins int
	for ok := range results {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("successful consumes = %d, want exactly 1", wins)
	}
}

func TestConsumeOTPLedgerRules(t *testing.T) {
	s := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("expired code is rejected", func(t *testing.T) {
		seedOTP(t, s, entity.OneTimeCode{
			ID:        2,
			UserID:    20,
			Code:      "111111",
			Purpose:   entity.OTPPurposeRegistration,
			ExpiresAt: now.Add(-time.Minute),
			CreatedAt: now.Add(-11 * time.Minute),
		})

		ok, err := s.ConsumeOTP(ctx, 20, "111111", entity.OTPPurposeRegistration, now)
		if err != nil {
			t.Fatalf("ConsumeOTP() error = %v", err)
		}
		if ok {
			t.Fatal("expired code consumed")
		}

		var used bool
		if err := s.conn.QueryRow(ctx, `SELECT used FROM auth_otps WHERE id = 2`).Scan(&used); err != nil {
			t.Fatalf("query used flag: %v", err)
		}
		if used {
			t.Fatal("expired row marked used")
		}
	})

	t.Run("used code stays burned", func(t *testing.T) {
		seedOTP(t, s, entity.OneTimeCode{
			ID:        3,
			UserID:    30,
			Code:      "222222",
			Purpose:   entity.OTPPurposeLogin,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now,
		})

		ok, err := s.ConsumeOTP(ctx, 30, "222222", entity.OTPPurposeLogin, now)
		if err != nil || !ok {
			t.Fatalf("first ConsumeOTP() = (%v, %v), want (true, nil)", ok, err)
		}

		ok, err = s.ConsumeOTP(ctx, 30, "222222", entity.OTPPurposeLogin, now)
		if err != nil {
			t.Fatalf("second ConsumeOTP() error = %v", err)
		}
		if ok {
			t.Fatal("used code consumed twice")
		}
	})

	t.Run("purpose must match", func(t *testing.T) {
		seedOTP(t, s, entity.OneTimeCode{
			ID:        4,
			UserID:    40,
			Code:      "333333",
			Purpose:   entity.OTPPurposeRegistration,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now,
		})

		ok, err := s.ConsumeOTP(ctx, 40, "333333", entity.OTPPurposeLogin, now)
		if err != nil {
			t.Fatalf("ConsumeOTP() error = %v", err)
		}
		if ok {
			t.Fatal("registration code consumed as a login code")
		}

		ok, err = s.ConsumeOTP(ctx, 40, "333333", entity.OTPPurposeRegistration, now)
		if err != nil || !ok {
			t.Fatalf("ConsumeOTP() = (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("newest matching code is burned first", func(t *testing.T) {
		seedOTP(t, s, entity.OneTimeCode{
			ID:        5,
			UserID:    50,
			Code:      "444444",
			Purpose:   entity.OTPPurposeLogin,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now.Add(-2 * time.Minute),
		})
		seedOTP(t, s, entity.OneTimeCode{
			ID:        6,
			UserID:    50,
			Code:      "444444",
			Purpose:   entity.OTPPurposeLogin,
			ExpiresAt: now.Add(10 * time.Minute),
			CreatedAt: now.Add(-time.Minute),
		})

		ok, err := s.ConsumeOTP(ctx, 50, "444444", entity.OTPPurposeLogin, now)
		if err != nil || !ok {
			t.Fatalf("ConsumeOTP() = (%v, %v), want (true, nil)", ok, err)
		}

		var olderUsed, newerUsed bool
		if err := s.conn.QueryRow(ctx, `SELECT used FROM auth_otps WHERE id = 5`).Scan(&olderUsed); err != nil {
			t.Fatalf("query older row: %v", err)
		}
		if err := s.conn.QueryRow(ctx, `SELECT used FROM auth_otps WHERE id = 6`).Scan(&newerUsed); err != nil {
			t.Fatalf("query newer row: %v", err)
		}
		if olderUsed || !newerUsed {
			t.Fatalf("used flags = (older=%v, newer=%v), want the newest burned", olderUsed, newerUsed)
		}
	})
}
