package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash []byte     `db:"password_hash" json:"-"`
	PasswordSalt []byte     `db:"password_salt" json:"-"`
	Role         string     `db:"role" json:"role"`
	OTP          *string    `db:"otp" json:"-"`
	OTPExpiry    *time.Time `db:"otp_expiry" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// HasPendingOTP reports whether a reset code is currently stored on the
// record. The otp and otp_expiry columns are set and cleared together.
func (u *User) HasPendingOTP() bool {
	return u.OTP != nil && u.OTPExpiry != nil
}
