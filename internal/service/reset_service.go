package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/repository/ports"
	"github.com/civicdesk/civicdesk-api/internal/util"
)

// OTPSender delivers a reset code out of band. The default
// implementation writes it to the process log, standing in for a real
// mail/SMS channel.
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

// ResetService drives the forgot-password flow:
// Start -> AwaitingOtp -> ReadyToReset -> Start. The machine is cyclic;
// completion and expiry both return it to Start. State lives in the
// user row (pending code + expiry) and, after verification, in the
// reset-session slot bound by the transport layer.
type ResetService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	sender   OTPSender
	otpTTL   time.Duration
}

func NewResetService(users ports.UserRepository, sessions ports.SessionRepository, sender OTPSender, otpTTL time.Duration) *ResetService {
	return &ResetService{
		users:    users,
		sessions: sessions,
		sender:   sender,
		otpTTL:   otpTTL,
	}
}

// Start issues a fresh code for email. A pending code is overwritten;
// there is no rate limiting or attempt counting.
func (s *ResetService) Start(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownEmail
		}
		return err
	}

	code, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.otpTTL)
	if err := s.users.SetOTP(ctx, user.ID, code, expiry); err != nil {
		return err
	}
	return s.sender.SendOTP(ctx, user.Email, code)
}

// Resend re-issues a code. It is intentionally identical to Start and
// reachable without a prior Start.
func (s *ResetService) Resend(ctx context.Context, email string) error {
	return s.Start(ctx, email)
}

// Verify checks email+code by exact string match against the stored
// pending code. On success the caller binds the reset-session slot to
// the returned user id.
func (s *ResetService) Verify(ctx context.Context, email, code string) (uuid.UUID, error) {
	user, err := s.users.FindByEmailAndOTP(ctx, normalizeEmail(email), code)
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, ErrInvalidOTP
		}
		return uuid.Nil, err
	}
	if !user.HasPendingOTP() {
		return uuid.Nil, ErrInvalidOTP
	}
	if time.Now().After(*user.OTPExpiry) {
		return uuid.Nil, ErrOTPExpired
	}
	return user.ID, nil
}

// Complete overwrites the password, clears the pending code
// unconditionally, and deactivates every session of the user. The bound
// reset slot dies with them, so a second Complete without a fresh
// Start/Verify cycle is impossible.
func (s *ResetService) Complete(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return err
	}
	if err := s.users.ClearOTP(ctx, user.ID); err != nil {
		return err
	}
	return s.sessions.DeactivateAllForUser(ctx, user.ID)
}
