package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// FindByEmailAndOTP matches the stored code by exact string equality.
	FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.User, error)
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
	List(ctx context.Context) ([]domain.User, error)
}
