package handler

import (
	"strconv"

	"github.com/campuscoders/clubsite-api/internal/adapter/store"
	"github.com/gofiber/fiber/v3"
)

// AuditHandler exposes the request audit trail to admins.
type AuditHandler struct {
	store *store.MongoStore
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(store *store.MongoStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// Register sets up audit routes on an admin-gated router.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/audit/logs", h.ListLogs)
}

// ListLogs returns recent audit entries.
func (h *AuditHandler) ListLogs(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	logs, err := h.store.ListAuditLogs(c.Context(), limit)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}
