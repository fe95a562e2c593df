package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/token"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore implements the subset of port.UserStore the middleware touches.
type fakeUserStore struct {
	users   map[string]*domain.User
	findErr error
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, port.ErrUserNotFound
}
func (f *fakeUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (f *fakeUserStore) UpdateByID(context.Context, string, domain.UserPatch) (*domain.User, error) {
	return nil, port.ErrUserNotFound
}
func (f *fakeUserStore) DeleteByID(context.Context, string) error    { return nil }
func (f *fakeUserStore) List(context.Context) ([]domain.User, error) { return nil, nil }

type testEnv struct {
	app    *fiber.App
	tokens *token.Service
	store  *fakeUserStore
	member *domain.User
	admin  *domain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	member := &domain.User{ID: primitive.NewObjectID(), Name: "Mem", Email: "mem@club.edu", Role: domain.RoleMember, Active: true}
	admin := &domain.User{ID: primitive.NewObjectID(), Name: "Adm", Email: "adm@club.edu", Role: domain.RoleAdmin, Active: true}

	store := &fakeUserStore{users: map[string]*domain.User{
		member.ID.Hex(): member,
		admin.ID.Hex():  admin,
	}}
	tokens := token.New("mw-secret", 0)

	app := fiber.New()
	api := app.Group("/api", Authenticate(tokens, store))
	api.Get("/me", func(c fiber.Ctx) error {
		return c.JSON(CurrentUser(c))
	})
	api.Get("/admin", RequireAdmin(), func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return &testEnv{app: app, tokens: tokens, store: store, member: member, admin: admin}
}

func (e *testEnv) get(t *testing.T, path, bearer string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func (e *testEnv) issue(t *testing.T, u *domain.User) string {
	t.Helper()
	tok, err := e.tokens.Issue(u.ID.Hex())
	require.NoError(t, err)
	return tok
}

func TestAuthenticate_NoToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, body := env.get(t, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no token provided", body["message"])
}

func TestAuthenticate_BadToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, body := env.get(t, "/api/me", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
}

func TestAuthenticate_UserDeleted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tok := env.issue(t, env.member)
	delete(env.store.users, env.member.ID.Hex())

	status, body := env.get(t, "/api/me", tok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "user no longer exists", body["message"])
}

func TestAuthenticate_StoreFailureIsNotUnauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tok := env.issue(t, env.member)
	env.store.findErr = errors.New("connection reset by peer")

	// an outage must not read as a revoked account
	status, body := env.get(t, "/api/me", tok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["message"])
}

func TestAuthenticate_DeactivationDefeatsValidToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tok := env.issue(t, env.member)

	// the token works while the account is active
	status, _ := env.get(t, "/api/me", tok)
	require.Equal(t, http.StatusOK, status)

	// the token itself still verifies after deactivation
	env.store.users[env.member.ID.Hex()].Active = false
	_, _, err := env.tokens.Verify(tok)
	require.NoError(t, err)

	// but authorization now rejects it
	status, body := env.get(t, "/api/me", tok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "account inactive", body["message"])
}

func TestRequireAdmin_MemberForbidden(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, body := env.get(t, "/api/admin", env.issue(t, env.member))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "member")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, body := env.get(t, "/api/admin", env.issue(t, env.admin))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}

func TestRequireAdmin_NoTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, _ := env.get(t, "/api/admin", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
