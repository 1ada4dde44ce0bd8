package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/measurebook/measurebook/internal/shared"
)

type mockAuthRepo struct {
	users  map[string]*User
	nextID int64
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: make(map[string]*User), nextID: 1}
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockAuthRepo) CreateCompanyAndAdmin(ctx context.Context, companyName string, user User) (*User, error) {
	email := strings.ToLower(user.Email)
	if _, ok := m.users[email]; ok {
		return nil, ErrEmailTaken
	}
	created := user
	created.ID = m.nextID
	created.CompanyID = m.nextID
	created.Email = email
	created.Role = RoleAdmin
	m.nextID++
	m.users[email] = &created
	return &created, nil
}

func newTestServer(t *testing.T, repo Repository) (*httptest.Server, *shared.SessionManager) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "mb_session", time.Hour, false)
	handler := NewHandler(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), NewService(repo), sessions)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			sess, err := sessions.Load(ctx, req)
			require.NoError(t, err)
			ctx = shared.ContextWithSession(ctx, sess)
			// Commit before the handler writes so cookie headers land.
			next.ServeHTTP(&commitWriter{ResponseWriter: w, ctx: ctx, sessions: sessions, sess: sess}, req.WithContext(ctx))
		})
	})
	r.Route("/auth", handler.MountRoutes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sessions
}

type commitWriter struct {
	http.ResponseWriter
	ctx       context.Context
	sessions  *shared.SessionManager
	sess      *shared.Session
	committed bool
}

func (w *commitWriter) WriteHeader(statusCode int) {
	if !w.committed {
		w.committed = true
		_ = w.sessions.Commit(w.ctx, w.ResponseWriter, w.sess)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *commitWriter) Write(data []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}

func postJSON(t *testing.T, url string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestSignupCreatesCompanyAndSession(t *testing.T) {
	srv, _ := newTestServer(t, newMockAuthRepo())

	resp := postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"companyName": "Test Builders",
		"name":        "Asha",
		"email":       "asha@example.com",
		"password":    "secret123",
	}, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Positive(t, body.UserID)
	assert.Positive(t, body.CompanyID)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "mb_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newMockAuthRepo()
	srv, _ := newTestServer(t, repo)

	body := map[string]string{
		"companyName": "Test Builders",
		"name":        "Asha",
		"email":       "asha@example.com",
		"password":    "secret123",
	}
	resp := postJSON(t, srv.URL+"/auth/signup", body, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/auth/signup", body, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignupMissingFields(t *testing.T) {
	srv, _ := newTestServer(t, newMockAuthRepo())

	resp := postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"email": "asha@example.com",
	}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginSuccessAndWrongPassword(t *testing.T) {
	repo := newMockAuthRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["asha@example.com"] = &User{
		ID: 1, CompanyID: 1, Email: "asha@example.com", Name: "Asha",
		PasswordHash: string(hash), Role: RoleAdmin,
	}
	srv, _ := newTestServer(t, repo)

	resp := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "secret123",
	}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	}, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	srv, _ := newTestServer(t, newMockAuthRepo())

	resp := postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"companyName": "Test Builders",
		"name":        "Asha",
		"email":       "asha@example.com",
		"password":    "secret123",
	}, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = postJSON(t, srv.URL+"/auth/logout", map[string]string{}, cookies)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The cookie is expired on logout.
	for _, c := range resp.Cookies() {
		if c.Name == "mb_session" {
			assert.True(t, c.MaxAge < 0 || c.Value == "")
		}
	}
}
