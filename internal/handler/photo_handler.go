package handler

import (
	"log/slog"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/gofiber/fiber/v3"
)

// PhotoHandler handles the gallery. Reads are public; uploads and deletes
// are admin-only.
type PhotoHandler struct {
	photos port.PhotoStore
	media  port.MediaUploader
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(photos port.PhotoStore, media port.MediaUploader) *PhotoHandler {
	return &PhotoHandler{photos: photos, media: media}
}

// RegisterPublic sets up the read-only gallery route.
func (h *PhotoHandler) RegisterPublic(app *fiber.App) {
	app.Get("/api/v1/photos", h.List)
}

// RegisterAdmin sets up gallery mutations on an admin-gated router.
func (h *PhotoHandler) RegisterAdmin(router fiber.Router) {
	photos := router.Group("/photos")
	photos.Post("/", h.Upload)
	photos.Delete("/:id", h.Delete)
}

// List returns the gallery, newest first.
func (h *PhotoHandler) List(c fiber.Ctx) error {
	photos, err := h.photos.ListPhotos(c.Context())
	if err != nil {
		slog.Error("list photos failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"photos": photos, "count": len(photos)})
}

// Upload accepts a multipart form with a required image file, pushes it to
// the CDN, and stores the gallery entry.
func (h *PhotoHandler) Upload(c fiber.Ctx) error {
	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "image file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		slog.Error("open uploaded photo failed", "error", err)
		return internalError(c)
	}
	defer f.Close()

	imageURL, err := h.media.Upload(c.Context(), fh.Filename, f)
	if err != nil {
		slog.Error("photo upload failed", "error", err)
		return internalError(c)
	}

	photo := &domain.Photo{
		Title:    title,
		ImageURL: imageURL,
		Category: c.FormValue("category"),
	}
	if u := middleware.CurrentUser(c); u != nil {
		photo.UploadedBy = u.ID
	}

	created, err := h.photos.CreatePhoto(c.Context(), photo)
	if err != nil {
		slog.Error("create photo failed", "error", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Photo uploaded", "photo": created})
}

// Delete removes a gallery entry. The CDN copy is left alone.
func (h *PhotoHandler) Delete(c fiber.Ctx) error {
	if err := h.photos.DeletePhotoByID(c.Context(), c.Params("id")); err != nil {
		slog.Error("delete photo failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Photo deleted"})
}
