package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the status every complaint is created with. Status is
// otherwise a free-form string set by admins; no fixed vocabulary is
// enforced.
const StatusPending = "Pending"

type Complaint struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
