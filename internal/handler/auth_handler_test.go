package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/service"
	"github.com/campuscoders/clubsite-api/internal/token"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserStore implements port.UserStore in memory for handler tests.
type memUserStore struct {
	users map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*domain.User{}}
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, port.ErrUserNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (m *memUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, port.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users[u.ID.Hex()] = &cp
	out := *u
	return &out, nil
}

func (m *memUserStore) UpdateByID(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (m *memUserStore) DeleteByID(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *memUserStore) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		cp := *u
		cp.Password = ""
		out = append(out, cp)
	}
	return out, nil
}

func newAuthTestApp(t *testing.T) (*fiber.App, *token.Service, *memUserStore) {
	t.Helper()

	store := newMemUserStore()
	tokens := token.New("handler-secret", 0)
	authService := service.NewAuthService(store, tokens, nil)

	app := fiber.New()
	h := NewAuthHandler(authService, "http://localhost:3000")
	h.Register(app)

	api := app.Group("/api/v1", middleware.Authenticate(tokens, store))
	h.RegisterProtected(api)

	return app, tokens, store
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRegisterEndpoint_Success(t *testing.T) {
	t.Parallel()

	app, tokens, _ := newAuthTestApp(t)

	status, body := postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"name":        "Ada",
		"email":       "Ada@Club.EDU",
		"password":    "hunter22",
		"collegeName": "KIIT",
	})
	require.Equal(t, http.StatusCreated, status)

	assert.NotEmpty(t, body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ada@club.edu", user["email"])
	assert.Equal(t, domain.RoleMember, user["role"])
	assert.NotContains(t, user, "password")

	gotID, _, err := tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], gotID)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthTestApp(t)

	payload := map[string]string{"name": "Ada", "email": "a@x.com", "password": "pw123456"}
	status, _ := postJSON(t, app, "/api/v1/auth/register", payload)
	require.Equal(t, http.StatusCreated, status)

	payload["email"] = "A@X.com"
	status, body := postJSON(t, app, "/api/v1/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["message"])
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthTestApp(t)

	status, _ := postJSON(t, app, "/api/v1/auth/register", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginEndpoint_InvalidCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthTestApp(t)

	status, _ := postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"name": "Ada", "email": "ada@club.edu", "password": "correct-pw",
	})
	require.Equal(t, http.StatusCreated, status)

	wrongStatus, wrongBody := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email": "ada@club.edu", "password": "wrong-pw",
	})
	noUserStatus, noUserBody := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email": "nobody@club.edu", "password": "whatever",
	})

	assert.Equal(t, http.StatusBadRequest, wrongStatus)
	assert.Equal(t, wrongStatus, noUserStatus)
	assert.Equal(t, wrongBody["message"], noUserBody["message"])
	assert.Equal(t, "Invalid credentials", wrongBody["message"])
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthTestApp(t)

	status, regBody := postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"name": "Ada", "email": "ada@club.edu", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+regBody["token"].(string))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "ada@club.edu", me["email"])
	assert.NotContains(t, me, "password")
}
