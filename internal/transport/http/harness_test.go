package http

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/civicdesk/civicdesk-api/internal/domain"
	"github.com/civicdesk/civicdesk-api/internal/service"
	"github.com/civicdesk/civicdesk-api/internal/util"
)

// The handler tests run real services over in-memory repositories and
// drive the full echo stack, middleware included, through httptest.

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	if _, exists := m.users[email]; exists {
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
	m.users[email] = user
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := m.byID(id)
	if user == nil {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok || user.OTP == nil || *user.OTP != otp {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiry time.Time) error {
	if user := m.byID(id); user != nil {
		code := otp
		when := expiry
		user.OTP = &code
		user.OTPExpiry = &when
	}
	return nil
}

func (m *memUserRepo) ClearOTP(ctx context.Context, id uuid.UUID) error {
	if user := m.byID(id); user != nil {
		user.OTP = nil
		user.OTPExpiry = nil
	}
	return nil
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	if user := m.byID(id); user != nil {
		user.PasswordHash = append([]byte(nil), passwordHash...)
		user.PasswordSalt = append([]byte(nil), passwordSalt...)
	}
	return nil
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

func (m *memUserRepo) byID(id uuid.UUID) *domain.User {
	for _, user := range m.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

type memSessionRepo struct {
	sessions map[string]*domain.Session
	nextID   int64
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *memSessionRepo) Create(ctx context.Context, userID uuid.UUID, token, kind, role string, expiresAt time.Time) (*domain.Session, error) {
	m.nextID++
	session := &domain.Session{
		ID:        m.nextID,
		UserID:    userID,
		Token:     token,
		Kind:      kind,
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	m.sessions[token] = session
	clone := *session
	return &clone, nil
}

func (m *memSessionRepo) FindActive(ctx context.Context, token string) (*domain.Session, error) {
	session, ok := m.sessions[token]
	if !ok || !session.IsActive || time.Now().After(session.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	clone := *session
	return &clone, nil
}

func (m *memSessionRepo) Deactivate(ctx context.Context, token string) error {
	if session, ok := m.sessions[token]; ok {
		session.IsActive = false
	}
	return nil
}

func (m *memSessionRepo) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, session := range m.sessions {
		if session.UserID == userID {
			session.IsActive = false
		}
	}
	return nil
}

type memComplaintRepo struct {
	complaints []*domain.Complaint
}

func newMemComplaintRepo() *memComplaintRepo {
	return &memComplaintRepo{}
}

func (m *memComplaintRepo) Create(ctx context.Context, userID uuid.UUID, category, description string) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		ID:          uuid.New(),
		Category:    category,
		Description: description,
		Status:      domain.StatusPending,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	m.complaints = append(m.complaints, complaint)
	clone := *complaint
	return &clone, nil
}

func (m *memComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	out := make([]domain.Complaint, 0, len(m.complaints))
	for _, complaint := range m.complaints {
		out = append(out, *complaint)
	}
	return out, nil
}

func (m *memComplaintRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Complaint, error) {
	var out []domain.Complaint
	for _, complaint := range m.complaints {
		if complaint.UserID == userID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (m *memComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, complaint := range m.complaints {
		if complaint.ID == id {
			complaint.Status = status
		}
	}
	return nil
}

func (m *memComplaintRepo) statusOf(id uuid.UUID) string {
	for _, complaint := range m.complaints {
		if complaint.ID == id {
			return complaint.Status
		}
	}
	return ""
}

type recordingSender struct {
	sent []struct {
		email string
		code  string
	}
}

func (r *recordingSender) SendOTP(ctx context.Context, email, code string) error {
	r.sent = append(r.sent, struct {
		email string
		code  string
	}{email: email, code: code})
	return nil
}

func (r *recordingSender) lastCode() string {
	if len(r.sent) == 0 {
		return ""
	}
	return r.sent[len(r.sent)-1].code
}

type testApp struct {
	e          *echo.Echo
	users      *memUserRepo
	sessions   *memSessionRepo
	complaints *memComplaintRepo
	sender     *recordingSender
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	complaints := newMemComplaintRepo()
	sender := &recordingSender{}

	jwtManager := util.NewJWTManager("handler-test-secret")
	auth := service.NewAuthService(users, sessions, jwtManager, time.Hour, 15*time.Minute)
	reset := service.NewResetService(users, sessions, sender, 5*time.Minute)
	complaintService := service.NewComplaintService(complaints, users)

	e := NewRouter([]string{"*"})
	e.Logger.SetOutput(io.Discard)
	RegisterAuth(e, auth)
	RegisterReset(e, auth, reset)
	RegisterComplaints(e, auth, complaintService)

	return &testApp{
		e:          e,
		users:      users,
		sessions:   sessions,
		complaints: complaints,
		sender:     sender,
	}
}

// browser carries cookies between requests the way a real client would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func newBrowser(app *testApp) *browser {
	return &browser{app: app, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return b.do(t, http.MethodGet, target, nil)
}

func (b *browser) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return b.do(t, http.MethodPost, target, form)
}

func (b *browser) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.app.e.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(b.cookies, cookie.Name)
			continue
		}
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) hasCookie(name string) bool {
	cookie, ok := b.cookies[name]
	return ok && cookie.Value != ""
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, path, flash string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d (body %q)", rec.Code, rec.Body.String())
	}
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	if location.Path != path {
		t.Fatalf("expected redirect to %q, got %q", path, location.Path)
	}
	if got := location.Query().Get("flash"); got != flash {
		t.Fatalf("expected flash %q, got %q", flash, got)
	}
}

func registerAndLogin(t *testing.T, b *browser, email, password string) {
	t.Helper()

	rec := b.postForm(t, "/register", url.Values{
		"email":    {email},
		"password": {password},
		"confirm":  {password},
	})
	assertRedirect(t, rec, "/login", "Registration successful. Please login.")

	rec = b.postForm(t, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	assertRedirect(t, rec, "/dashboard", "")
	if !b.hasCookie(sessionCookieName) {
		t.Fatal("expected a session cookie after login")
	}
}
