package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gauth/internal/auth/entity"
)

func (s *DB) CreateOTP(ctx context.Context, code entity.OneTimeCode) (err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO auth_otps (id, user_id, code, purpose, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)`,
		code.ID, code.UserID, code.Code, int16(code.Purpose), code.ExpiresAt, code.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

// ConsumeOTP marks the newest matching unused, unexpired code as used.
// It reports false when no such code exists; used rows stay in place.
func (s *DB) ConsumeOTP(ctx context.Context, userID int64, code string, purpose entity.OTPPurpose, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOTP")
	defer func() { s.endSpan(span, err) }()

	var id int64
	err = s.conn.QueryRow(ctx, `
		UPDATE auth_otps SET used = TRUE
		WHERE id = (
			SELECT id FROM auth_otps
			WHERE user_id = $1 AND code = $2 AND purpose = $3 AND used = FALSE AND expires_at > $4
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id`,
		userID, code, int16(purpose), now,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return false, nil
	}
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return true, nil
}
