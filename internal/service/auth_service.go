package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/campuscoders/clubsite-api/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt.DefaultCost is 10; pinned here so a library default bump doesn't
// silently change stored-hash cost.
const hashCost = 10

// AuthService turns credentials into sessions: registration, login, and
// federated sign-in all end with an issued token.
type AuthService struct {
	users     port.UserStore
	tokens    *token.Service
	providers port.AuthProviderRegistry
}

// NewAuthService creates a new authentication service.
func NewAuthService(users port.UserStore, tokens *token.Service, providers port.AuthProviderRegistry) *AuthService {
	return &AuthService{users: users, tokens: tokens, providers: providers}
}

// Register creates a member account and returns it with a fresh token.
// The plaintext password is hashed immediately and never stored or logged.
func (s *AuthService) Register(ctx context.Context, name, email, password, collegeName string) (*domain.User, string, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user, err := s.users.Create(ctx, &domain.User{
		Name:        name,
		Email:       email,
		Password:    string(hash),
		CollegeName: collegeName,
		Role:        domain.RoleMember,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID.Hex())
	return user, tok, nil
}

// Login verifies a credential pair and issues a token. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the two cases
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return nil, "", port.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", port.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	user.Password = ""
	slog.Info("user logged in", "user_id", user.ID.Hex())
	return user, tok, nil
}

// GetAuthURL returns the OAuth2 authorization URL for the given provider.
func (s *AuthService) GetAuthURL(providerName, state string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", fmt.Errorf("unknown provider: %s", providerName)
	}
	return provider.AuthURL(state), nil
}

// HandleCallback processes the OAuth2 callback: exchanges the code, fetches
// the external profile, maps it onto a local user (creating a member account
// on first sign-in), and issues a token.
func (s *AuthService) HandleCallback(ctx context.Context, providerName, code string) (string, *domain.User, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", nil, fmt.Errorf("unknown provider: %s", providerName)
	}

	tokens, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("exchange code: %w", err)
	}

	profile, err := provider.GetUserProfile(ctx, tokens.AccessToken)
	if err != nil {
		return "", nil, fmt.Errorf("get profile: %w", err)
	}

	user, err := s.findOrCreateFromProfile(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	slog.Info("user authenticated", "user_id", user.ID.Hex(), "provider", providerName)
	return tok, user, nil
}

func (s *AuthService) findOrCreateFromProfile(ctx context.Context, p *domain.ExternalProfile) (*domain.User, error) {
	email := normalizeEmail(p.Email)
	// accounts key on email; never create one without it
	if email == "" {
		return nil, fmt.Errorf("%s profile has no email", p.Provider)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		user.Password = ""
		return user, nil
	}
	if !errors.Is(err, port.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	return s.users.Create(ctx, &domain.User{
		Name:       p.Name,
		Email:      email,
		AvatarURL:  p.AvatarURL,
		Provider:   p.Provider,
		ProviderID: p.ProviderID,
		Role:       domain.RoleMember,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
