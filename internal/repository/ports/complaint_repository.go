package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

type ComplaintRepository interface {
	Create(ctx context.Context, userID uuid.UUID, category, description string) (*domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Complaint, error)
	// UpdateStatus is a no-op when no complaint matches id.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
