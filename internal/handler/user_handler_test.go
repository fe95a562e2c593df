package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/token"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type adminTestEnv struct {
	app         *fiber.App
	store       *memUserStore
	adminToken  string
	memberToken string
	member      *domain.User
}

func newAdminTestEnv(t *testing.T) *adminTestEnv {
	t.Helper()

	store := newMemUserStore()
	tokens := token.New("admin-secret", 0)

	admin := &domain.User{ID: primitive.NewObjectID(), Name: "Adm", Email: "adm@club.edu", Role: domain.RoleAdmin, Active: true}
	member := &domain.User{ID: primitive.NewObjectID(), Name: "Mem", Email: "mem@club.edu", Role: domain.RoleMember, Active: true}
	store.users[admin.ID.Hex()] = admin
	store.users[member.ID.Hex()] = member

	app := fiber.New()
	api := app.Group("/api/v1", middleware.Authenticate(tokens, store))
	adminGroup := api.Group("/", middleware.RequireAdmin())
	NewUserHandler(store).Register(adminGroup)

	adminTok, err := tokens.Issue(admin.ID.Hex())
	require.NoError(t, err)
	memberTok, err := tokens.Issue(member.ID.Hex())
	require.NoError(t, err)

	return &adminTestEnv{app: app, store: store, adminToken: adminTok, memberToken: memberTok, member: member}
}

func (e *adminTestEnv) do(t *testing.T, method, path, bearer string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestUserRoutes_MemberForbiddenWithRole(t *testing.T) {
	t.Parallel()

	env := newAdminTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/api/v1/users", env.memberToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], domain.RoleMember)
}

func TestUserRoutes_NoTokenUnauthorized(t *testing.T) {
	t.Parallel()

	env := newAdminTestEnv(t)
	status, _ := env.do(t, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUserRoutes_AdminListAndGet(t *testing.T) {
	t.Parallel()

	env := newAdminTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/users", env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["count"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/users/"+env.member.ID.Hex(), env.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/users/"+primitive.NewObjectID().Hex(), env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestUserRoutes_DeactivateMember(t *testing.T) {
	t.Parallel()

	env := newAdminTestEnv(t)

	status, _ := env.do(t, http.MethodPut, "/api/v1/users/"+env.member.ID.Hex(), env.adminToken,
		map[string]any{"active": false})
	require.Equal(t, http.StatusOK, status)

	// the member's previously issued token no longer authorizes anything
	status, body := env.do(t, http.MethodGet, "/api/v1/users", env.memberToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "account inactive", body["message"])
}

func TestUserRoutes_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newAdminTestEnv(t)
	target := env.member.ID.Hex()

	status, _ := env.do(t, http.MethodDelete, "/api/v1/users/"+target, env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	// a second delete of the same id still succeeds
	status, _ = env.do(t, http.MethodDelete, "/api/v1/users/"+target, env.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}
