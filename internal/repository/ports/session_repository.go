package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token, kind, role string, expiresAt time.Time) (*domain.Session, error)
	FindActive(ctx context.Context, token string) (*domain.Session, error)
	Deactivate(ctx context.Context, token string) error
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error
}
