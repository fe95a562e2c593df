package handler

import (
	"errors"
	"log/slog"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/gofiber/fiber/v3"
)

// ProjectHandler handles club project CRUD. Reads are public; mutations are
// admin-only.
type ProjectHandler struct {
	projects port.ProjectStore
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects port.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// RegisterPublic sets up the read-only project routes.
func (h *ProjectHandler) RegisterPublic(app *fiber.App) {
	projects := app.Group("/api/v1/projects")
	projects.Get("/", h.List)
	projects.Get("/:id", h.Get)
}

// RegisterAdmin sets up project mutations on an admin-gated router.
func (h *ProjectHandler) RegisterAdmin(router fiber.Router) {
	projects := router.Group("/projects")
	projects.Post("/", h.Create)
	projects.Put("/:id", h.Update)
	projects.Delete("/:id", h.Delete)
}

// List returns all projects.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.projects.ListProjects(c.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"projects": projects, "count": len(projects)})
}

// Get returns one project.
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	project, err := h.projects.GetProjectByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return notFound(c, "project not found")
		}
		slog.Error("get project failed", "error", err)
		return internalError(c)
	}
	return c.JSON(project)
}

type createProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repoUrl"`
	LiveURL     string   `json:"liveUrl"`
	Tech        []string `json:"tech"`
}

// Create stores a new project.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var body createProjectRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if body.Title == "" || body.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title and description are required"})
	}

	created, err := h.projects.CreateProject(c.Context(), &domain.Project{
		Title:       body.Title,
		Description: body.Description,
		RepoURL:     body.RepoURL,
		LiveURL:     body.LiveURL,
		Tech:        body.Tech,
	})
	if err != nil {
		slog.Error("create project failed", "error", err)
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Project created", "project": created})
}

type updateProjectRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	RepoURL     *string   `json:"repoUrl"`
	LiveURL     *string   `json:"liveUrl"`
	Tech        *[]string `json:"tech"`
}

// Update applies a partial patch to a project.
func (h *ProjectHandler) Update(c fiber.Ctx) error {
	var body updateProjectRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	project, err := h.projects.UpdateProjectByID(c.Context(), c.Params("id"), domain.ProjectPatch{
		Title:       body.Title,
		Description: body.Description,
		RepoURL:     body.RepoURL,
		LiveURL:     body.LiveURL,
		Tech:        body.Tech,
	})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return notFound(c, "project not found")
		}
		slog.Error("update project failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Project updated", "project": project})
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	if err := h.projects.DeleteProjectByID(c.Context(), c.Params("id")); err != nil {
		slog.Error("delete project failed", "error", err)
		return internalError(c)
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}
