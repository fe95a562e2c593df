package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"

	"github.com/campuscoders/clubsite-api/internal/middleware"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/service"
	"github.com/gofiber/fiber/v3"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{authService: authService, frontendURL: frontendURL}
}

// Register sets up the public auth routes.
func (h *AuthHandler) Register(app *fiber.App) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", h.RegisterUser)
	auth.Post("/login", h.Login)
	auth.Get("/:provider/login", h.OAuthLogin)
	auth.Get("/:provider/callback", h.OAuthCallback)

	// Shared callback route — all providers redirect here.
	// Provider is encoded in the state param as "provider:random"
	app.Get("/auth/callback", h.OAuthCallbackDirect)
}

// RegisterProtected sets up auth routes behind the auth middleware.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/auth/me", h.Me)
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CollegeName string `json:"collegeName"`
}

// RegisterUser creates a member account from a credential pair.
func (h *AuthHandler) RegisterUser(c fiber.Ctx) error {
	var body registerRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, email and password are required"})
	}

	user, tok, err := h.authService.Register(c.Context(), body.Name, body.Email, body.Password, body.CollegeName)
	if err != nil {
		if errors.Is(err, port.ErrDuplicateEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
		}
		slog.Error("register failed", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    user.Public(),
		"token":   tok,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies a credential pair and returns a token. Wrong password and
// unknown email produce the same response.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body loginRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	user, tok, err := h.authService.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, port.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		slog.Error("login failed", "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   tok,
		"user":    user.Public(),
	})
}

// Me returns the authenticated user's profile, secret excluded.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// OAuthLogin redirects to the OAuth2 provider's consent screen.
func (h *AuthHandler) OAuthLogin(c fiber.Ctx) error {
	provider := c.Params("provider")
	state := provider + ":" + generateState()

	authURL, err := h.authService.GetAuthURL(provider, state)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Redirect().To(authURL)
}

// OAuthCallback handles the provider-specific callback route.
func (h *AuthHandler) OAuthCallback(c fiber.Ctx) error {
	return h.completeOAuth(c, c.Params("provider"))
}

// OAuthCallbackDirect handles the shared /auth/callback route. The provider
// comes out of the state param ("github:abc123" → "github").
func (h *AuthHandler) OAuthCallbackDirect(c fiber.Ctx) error {
	provider := "google"
	if state := c.Query("state"); state != "" {
		if parts := strings.SplitN(state, ":", 2); len(parts) == 2 {
			provider = parts[0]
		}
	}
	return h.completeOAuth(c, provider)
}

func (h *AuthHandler) completeOAuth(c fiber.Ctx, provider string) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing authorization code"})
	}

	tok, user, err := h.authService.HandleCallback(c.Context(), provider, code)
	if err != nil {
		slog.Error("oauth callback failed", "provider", provider, "error", err)
		return internalError(c)
	}

	return c.Redirect().To(h.frontendURL + "/auth/callback?token=" + tok + "&name=" + user.Name)
}

func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}
