package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/civicdesk-api/internal/domain"
	"github.com/civicdesk/civicdesk-api/internal/repository/ports"
	"github.com/civicdesk/civicdesk-api/internal/util"
)

// Identity is the request-scoped authentication result carried through
// handlers. Role is the value cached in the session token at login time;
// a role change on the user record is not visible until re-login.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// LoginResult bundles the session cookie value with its expiry.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager

	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, jwtManager *util.JWTManager, sessionTTL, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwt:        jwtManager,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// Register creates a user with the default role. Password/confirmation
// matching is a form concern handled at the transport layer.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, email, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Role, domain.SessionKindLogin, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Create(ctx, user.ID, token, domain.SessionKindLogin, user.Role, expiresAt); err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout deactivates the presented session. It is idempotent: unknown or
// already-inactive tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.Deactivate(ctx, token)
}

// Authenticate resolves a login-session token to an identity. The role
// comes from the token claims, not from the user record.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.parseSession(ctx, token, domain.SessionKindLogin)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// BindResetSlot issues the short-lived session that authorizes exactly
// one password-reset completion for userID.
func (s *AuthService) BindResetSlot(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	token, expiresAt, err := s.jwt.Generate(userID, "", domain.SessionKindReset, s.resetTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	if _, err := s.sessions.Create(ctx, userID, token, domain.SessionKindReset, "", expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// AuthenticateReset resolves a reset-slot token to the bound user id.
func (s *AuthService) AuthenticateReset(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.parseSession(ctx, token, domain.SessionKindReset)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

func (s *AuthService) parseSession(ctx context.Context, token, kind string) (*util.SessionClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if claims.Kind != kind {
		return nil, ErrNotAuthenticated
	}
	if _, err := s.sessions.FindActive(ctx, token); err != nil {
		if isNotFound(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
