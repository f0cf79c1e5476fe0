package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyUsed   = errors.New("user already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("unauthorized access")

	ErrUnknownEmail = errors.New("email not found")
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrOTPExpired   = errors.New("OTP expired")
	ErrUserNotFound = errors.New("user not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation matches Postgres SQLSTATE 23505 surfaced through the
// pgx stdlib driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
