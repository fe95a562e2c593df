package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/gofiber/fiber/v3"
)

// EventHandler handles club event CRUD. Reads are public; mutations are
// registered on an admin-gated router.
type EventHandler struct {
	events port.EventStore
	media  port.MediaUploader
}

// NewEventHandler creates a new event handler.
func NewEventHandler(events port.EventStore, media port.MediaUploader) *EventHandler {
	return &EventHandler{events: events, media: media}
}

// RegisterPublic sets up the read-only event routes.
func (h *EventHandler) RegisterPublic(app *fiber.App) {
	events := app.Group("/api/v1/events")
	events.Get("/", h.List)
	events.Get("/:id", h.Get)
}

// RegisterAdmin sets up event mutations on an admin-gated router.
func (h *EventHandler) RegisterAdmin(router fiber.Router) {
	events := router.Group("/events")
	events.Post("/", h.Create)
	events.Put("/:id", h.Update)
	events.Delete("/:id", h.Delete)
}

// List returns all events.
func (h *EventHandler) List(c fiber.Ctx) error {
	events, err := h.events.ListEvents(c.Context())
	if err != nil {
		slog.Error("list events failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

// Get returns one event.
func (h *EventHandler) Get(c fiber.Ctx) error {
	event, err := h.events.GetEventByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return notFound(c, "event not found")
		}
		slog.Error("get event failed", "error", err)
		return internalError(c)
	}
	return c.JSON(event)
}

// Create accepts a multipart form with the event fields and an optional
// image, which is pushed to the CDN before the document is stored.
func (h *EventHandler) Create(c fiber.Ctx) error {
	title := c.FormValue("title")
	description := c.FormValue("description")
	if title == "" || description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title and description are required"})
	}

	date := time.Now()
	if raw := c.FormValue("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "date must be RFC 3339"})
		}
		date = parsed
	}

	imageURL, err := h.uploadIfPresent(c)
	if err != nil {
		slog.Error("event image upload failed", "error", err)
		return internalError(c)
	}

	event := &domain.Event{
		Title:       title,
		Description: description,
		Venue:       c.FormValue("venue"),
		Date:        date,
		ImageURL:    imageURL,
	}
	if u := middleware.CurrentUser(c); u != nil {
		event.CreatedBy = u.ID
	}

	created, err := h.events.CreateEvent(c.Context(), event)
	if err != nil {
		slog.Error("create event failed", "error", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Event created", "event": created})
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	Date        *time.Time `json:"date"`
	ImageURL    *string    `json:"imageUrl"`
}

// Update applies a partial patch to an event.
func (h *EventHandler) Update(c fiber.Ctx) error {
	var body updateEventRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	event, err := h.events.UpdateEventByID(c.Context(), c.Params("id"), domain.EventPatch{
		Title:       body.Title,
		Description: body.Description,
		Venue:       body.Venue,
		Date:        body.Date,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return notFound(c, "event not found")
		}
		slog.Error("update event failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Event updated", "event": event})
}

// Delete removes an event.
func (h *EventHandler) Delete(c fiber.Ctx) error {
	if err := h.events.DeleteEventByID(c.Context(), c.Params("id")); err != nil {
		slog.Error("delete event failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// uploadIfPresent pushes the "image" form file to the CDN, if one was sent.
func (h *EventHandler) uploadIfPresent(c fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.media.Upload(c.Context(), fh.Filename, f)
}
