package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

const complaintColumns = `id, category, description, status, user_id, created_at`

type ComplaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepo(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, userID uuid.UUID, category, description string) (*domain.Complaint, error) {
	const query = `
        INSERT INTO complaint (category, description, user_id)
        VALUES ($1, $2, $3)
        RETURNING ` + complaintColumns
	row := r.db.QueryRowxContext(ctx, query, category, description, userID)
	var complaint domain.Complaint
	if err := row.StructScan(&complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaint ORDER BY created_at`
	var complaints []domain.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaint WHERE user_id = $1 ORDER BY created_at`
	var complaints []domain.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, userID); err != nil {
		return nil, err
	}
	return complaints, nil
}

// UpdateStatus silently does nothing when id does not resolve; callers
// that need the distinction do not exist in this system.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	const query = `UPDATE complaint SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
