package port

import (
	"context"

	"github.com/campuscoders/clubsite-api/internal/domain"
)

// UserStore is the credential store: durable storage and lookup of users.
type UserStore interface {
	// FindByEmail looks a user up by email. The lookup is case-insensitive:
	// emails are normalized to lowercase before storage and before lookup.
	// Returns ErrUserNotFound if no user matches. The returned record
	// includes the password hash; it is for credential checks only.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns the user with the given identity, with the password
	// hash stripped. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Create inserts a new user and returns it with a fresh identity.
	// Returns ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)

	// UpdateByID applies a partial patch. Returns ErrUserNotFound if the id
	// does not exist.
	UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// DeleteByID permanently removes a user. Deleting an absent user is not
	// an error.
	DeleteByID(ctx context.Context, id string) error

	// List returns all users, password hashes stripped.
	List(ctx context.Context) ([]domain.User, error)
}

// EventStore persists club events.
type EventStore interface {
	CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetEventByID(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEventByID(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error)
	DeleteEventByID(ctx context.Context, id string) error
}

// PhotoStore persists gallery entries.
type PhotoStore interface {
	CreatePhoto(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	ListPhotos(ctx context.Context) ([]domain.Photo, error)
	DeletePhotoByID(ctx context.Context, id string) error
}

// ProjectStore persists club projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetProjectByID(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProjectByID(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProjectByID(ctx context.Context, id string) error
}

// ContactStore persists contact form submissions.
type ContactStore interface {
	CreateContactMessage(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
}
