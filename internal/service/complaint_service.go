package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/domain"
	"github.com/civicdesk/civicdesk-api/internal/repository/ports"
)

type ComplaintService struct {
	complaints ports.ComplaintRepository
	users      ports.UserRepository
}

func NewComplaintService(complaints ports.ComplaintRepository, users ports.UserRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints, users: users}
}

// Submit creates a complaint owned by userID. Status always starts as
// Pending.
func (s *ComplaintService) Submit(ctx context.Context, userID uuid.UUID, category, description string) (*domain.Complaint, error) {
	return s.complaints.Create(ctx, userID, category, description)
}

// List returns every complaint for admins and only the caller's own
// complaints otherwise.
func (s *ComplaintService) List(ctx context.Context, callerID uuid.UUID, callerIsAdmin bool) ([]domain.Complaint, error) {
	if callerIsAdmin {
		return s.complaints.ListAll(ctx)
	}
	return s.complaints.ListByUser(ctx, callerID)
}

// ListUsers backs the admin dashboard. Non-admins get nothing.
func (s *ComplaintService) ListUsers(ctx context.Context, callerIsAdmin bool) ([]domain.User, error) {
	if !callerIsAdmin {
		return nil, nil
	}
	return s.users.List(ctx)
}

// SetStatus overwrites a complaint's status with the caller-supplied
// string. Non-admin callers get ErrForbidden and nothing changes. A
// complaintID that does not resolve is a silent no-op.
func (s *ComplaintService) SetStatus(ctx context.Context, callerIsAdmin bool, complaintID uuid.UUID, status string) error {
	if !callerIsAdmin {
		return ErrForbidden
	}
	return s.complaints.UpdateStatus(ctx, complaintID, status)
}
