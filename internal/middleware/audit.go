package middleware

import (
	"log/slog"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/gofiber/fiber/v3"
)

// AuditWriter defines how audit records are persisted.
type AuditWriter interface {
	WriteAudit(entry domain.AuditLog) error
}

// Audit logs every request to the audit trail.
func Audit(writer AuditWriter) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		method := c.Method()
		path := c.Path()
		ip := c.IP()
		userAgent := c.Get("User-Agent")

		err := c.Next()

		userID := "anonymous"
		if u := CurrentUser(c); u != nil {
			userID = u.ID.Hex()
		}

		entry := domain.AuditLog{
			UserID:    userID,
			Action:    "http_request",
			Path:      path,
			Method:    method,
			Status:    c.Response().StatusCode(),
			IP:        ip,
			UserAgent: userAgent,
			CreatedAt: time.Now(),
		}

		// Write asynchronously — all values are captured, safe to use in goroutine
		go func() {
			if writeErr := writer.WriteAudit(entry); writeErr != nil {
				slog.Error("failed to write audit log", "error", writeErr)
			}
		}()

		return err
	}
}
