package handler

import (
	"fmt"
	"log/slog"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/gofiber/fiber/v3"
)

// ContactHandler handles the contact form: submissions are stored and
// relayed to the club inbox by email.
type ContactHandler struct {
	contacts  port.ContactStore
	mailer    port.Mailer
	clubInbox string
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts port.ContactStore, mailer port.Mailer, clubInbox string) *ContactHandler {
	return &ContactHandler{contacts: contacts, mailer: mailer, clubInbox: clubInbox}
}

// RegisterPublic sets up the public submission route.
func (h *ContactHandler) RegisterPublic(app *fiber.App) {
	app.Post("/api/v1/contact", h.Submit)
}

// RegisterAdmin exposes stored submissions to admins.
func (h *ContactHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/contact", h.List)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit stores the message and relays it to the club inbox. A mail relay
// failure is logged but does not fail the request: the message is already
// persisted.
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var body contactRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, email and message are required"})
	}

	msg, err := h.contacts.CreateContactMessage(c.Context(), &domain.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Message: body.Message,
	})
	if err != nil {
		slog.Error("store contact message failed", "error", err)
		return internalError(c)
	}

	subject := fmt.Sprintf("Contact form: message from %s", body.Name)
	mailBody := fmt.Sprintf("From: %s <%s>\n\n%s", body.Name, body.Email, body.Message)
	if err := h.mailer.Send(h.clubInbox, subject, mailBody); err != nil {
		slog.Error("contact mail relay failed", "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message received",
		"id":      msg.ID.Hex(),
	})
}

// List returns stored submissions, newest first.
func (h *ContactHandler) List(c fiber.Ctx) error {
	messages, err := h.contacts.ListContactMessages(c.Context())
	if err != nil {
		slog.Error("list contact messages failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"messages": messages, "count": len(messages)})
}
