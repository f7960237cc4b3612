package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/gauth/internal/auth/entity"
)

const userColumns = `id, email, username, password, is_verified, created_at, last_login_at`

func (s *DB) scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var user entity.User
	var lastLoginAt pgtype.Timestamptz

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Password,
		&user.IsVerified,
		&user.CreatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	return &user, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO auth_users (id, email, username, password, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.Password, user.IsVerified, user.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE email = $1`, email)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE username = $1`, username)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) MarkUserVerified(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserVerified")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `UPDATE auth_users SET is_verified = TRUE WHERE id = $1`, id)

	err = s.mapError(err)
	return err
}

func (s *DB) TouchLastLogin(ctx context.Context, id int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "TouchLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `UPDATE auth_users SET last_login_at = $2 WHERE id = $1`, id, at)

	err = s.mapError(err)
	return err
}
