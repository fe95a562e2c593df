package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Role escalation to admin happens out-of-band (directly in the
// database); no endpoint grants it.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered club member or admin.
type User struct {
	ID          primitive.ObjectID `json:"id"           bson:"_id,omitempty"`
	Name        string             `json:"name"         bson:"name"`
	Email       string             `json:"email"        bson:"email"` // stored lowercase
	Password    string             `json:"-"            bson:"password,omitempty"` // bcrypt hash, never serialized
	CollegeName string             `json:"collegeName"  bson:"college_name,omitempty"`
	AvatarURL   string             `json:"avatarUrl"    bson:"avatar_url,omitempty"`
	Provider    string             `json:"provider"     bson:"provider,omitempty"` // "google", "github", empty for password auth
	ProviderID  string             `json:"-"            bson:"provider_id,omitempty"`
	Role        string             `json:"role"         bson:"role"`
	Active      bool               `json:"active"       bson:"active"`
	CreatedAt   time.Time          `json:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"   bson:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the shape returned by auth endpoints: identity, name, email,
// role and nothing else.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public projects a User into its PublicUser view.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserPatch is a partial update applied by UpdateByID. Nil fields are left
// untouched.
type UserPatch struct {
	Name        *string `bson:"name,omitempty"`
	CollegeName *string `bson:"college_name,omitempty"`
	AvatarURL   *string `bson:"avatar_url,omitempty"`
	Active      *bool   `bson:"active,omitempty"`
}

// TokenPair holds the OAuth2 tokens returned after code exchange.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ExternalProfile is what an OAuth provider returns about an authenticated
// user. The auth service maps it into a local User, creating one if absent.
type ExternalProfile struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}
