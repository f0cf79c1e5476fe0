package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

// In-memory repositories backing the service tests. They imitate the
// Postgres implementations closely enough for the flows under test:
// sql.ErrNoRows for misses, SQLSTATE 23505 for duplicate emails, silent
// no-op status updates.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	if _, exists := f.users[email]; exists {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		PasswordSalt: append([]byte(nil), passwordSalt...),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := f.byID(id)
	if user == nil {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.User, error) {
	user, ok := f.users[email]
	if !ok || user.OTP == nil || *user.OTP != otp {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error {
	if user := f.byID(id); user != nil {
		code := otp
		when := expiry
		user.OTP = &code
		user.OTPExpiry = &when
	}
	return nil
}

func (f *fakeUserRepo) ClearOTP(ctx context.Context, id uuid.UUID) error {
	if user := f.byID(id); user != nil {
		user.OTP = nil
		user.OTPExpiry = nil
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	if user := f.byID(id); user != nil {
		user.PasswordHash = append([]byte(nil), passwordHash...)
		user.PasswordSalt = append([]byte(nil), passwordSalt...)
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) byID(id uuid.UUID) *domain.User {
	for _, user := range f.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	nextID   int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, userID uuid.UUID, token, kind, role string, expiresAt time.Time) (*domain.Session, error) {
	f.nextID++
	session := &domain.Session{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		Kind:      kind,
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	f.sessions[token] = session
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) FindActive(ctx context.Context, token string) (*domain.Session, error) {
	session, ok := f.sessions[token]
	if !ok || !session.IsActive || time.Now().After(session.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionRepo) Deactivate(ctx context.Context, token string) error {
	if session, ok := f.sessions[token]; ok {
		session.IsActive = false
	}
	return nil
}

func (f *fakeSessionRepo) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.IsActive = false
		}
	}
	return nil
}

func (f *fakeSessionRepo) activeCount(userID uuid.UUID) int {
	count := 0
	for _, session := range f.sessions {
		if session.UserID == userID && session.IsActive {
			count++
		}
	}
	return count
}

type fakeComplaintRepo struct {
	complaints []*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{}
}

func (f *fakeComplaintRepo) Create(ctx context.Context, userID uuid.UUID, category, description string) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		ID:          uuid.New(),
		Category:    category,
		Description: description,
		Status:      domain.StatusPending,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	f.complaints = append(f.complaints, complaint)
	clone := *complaint
	return &clone, nil
}

func (f *fakeComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	out := make([]domain.Complaint, 0, len(f.complaints))
	for _, complaint := range f.complaints {
		out = append(out, *complaint)
	}
	return out, nil
}

func (f *fakeComplaintRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Complaint, error) {
	var out []domain.Complaint
	for _, complaint := range f.complaints {
		if complaint.UserID == userID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, complaint := range f.complaints {
		if complaint.ID == id {
			complaint.Status = status
		}
	}
	return nil
}

func (f *fakeComplaintRepo) statusOf(id uuid.UUID) string {
	for _, complaint := range f.complaints {
		if complaint.ID == id {
			return complaint.Status
		}
	}
	return ""
}

type fakeOTPSender struct {
	sent []struct {
		email string
		code  string
	}
	err error
}

func (f *fakeOTPSender) SendOTP(ctx context.Context, email, code string) error {
	f.sent = append(f.sent, struct {
		email string
		code  string
	}{email: email, code: code})
	return f.err
}
