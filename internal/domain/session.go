package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session kinds. A login session authorizes the whole protected surface;
// a reset session authorizes exactly one password-reset completion.
const (
	SessionKindLogin = "login"
	SessionKindReset = "reset"
)

type Session struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"token"`
	Kind      string    `db:"kind" json:"kind"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}
