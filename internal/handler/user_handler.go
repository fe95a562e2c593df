package handler

import (
	"errors"
	"log/slog"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/gofiber/fiber/v3"
)

// UserHandler handles admin member management. All routes here sit behind
// both the auth middleware and the admin gate.
type UserHandler struct {
	users port.UserStore
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users port.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Register sets up member management routes on an admin-gated router.
func (h *UserHandler) Register(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/", h.List)
	users.Get("/:id", h.Get)
	users.Put("/:id", h.Update)
	users.Delete("/:id", h.Delete)
}

// List returns all members, secrets excluded.
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

// Get returns one member.
func (h *UserHandler) Get(c fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		slog.Error("get user failed", "error", err)
		return internalError(c)
	}
	return c.JSON(user)
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	CollegeName *string `json:"collegeName"`
	AvatarURL   *string `json:"avatarUrl"`
	Active      *bool   `json:"active"`
}

// Update applies a partial patch to a member. Role is deliberately not
// patchable: escalation happens out-of-band only.
func (h *UserHandler) Update(c fiber.Ctx) error {
	var body updateUserRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	user, err := h.users.UpdateByID(c.Context(), c.Params("id"), domain.UserPatch{
		Name:        body.Name,
		CollegeName: body.CollegeName,
		AvatarURL:   body.AvatarURL,
		Active:      body.Active,
	})
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		slog.Error("update user failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "User updated", "user": user})
}

// Delete removes a member permanently. Deleting an absent id still returns
// success.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	if err := h.users.DeleteByID(c.Context(), c.Params("id")); err != nil {
		slog.Error("delete user failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
