package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/civicdesk/civicdesk-api/internal/domain"
)

const userColumns = `id, email, password_hash, password_salt, role, otp, otp_expiry, created_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, password_hash, password_salt)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns
	row := r.db.QueryRowxContext(ctx, query, email, passwordHash, passwordSalt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND otp = $2`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, otp); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error {
	const query = `UPDATE users SET otp = $2, otp_expiry = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, otp, expiry)
	return err
}

func (r *UserRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET otp = NULL, otp_expiry = NULL WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `UPDATE users SET password_hash = $2, password_salt = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}
