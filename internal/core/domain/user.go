package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is an authenticated principal as reported by the auth backend.
type Identity struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ProviderName returns the display name carried in the provider metadata,
// or "" when none was supplied.
func (i *Identity) ProviderName() string {
	if i == nil || i.Metadata == nil {
		return ""
	}
	name, _ := i.Metadata["full_name"].(string)
	return name
}

// EmailLocalPart returns the part of the email before the "@".
func (i *Identity) EmailLocalPart() string {
	if i == nil || i.Email == "" {
		return ""
	}
	local, _, _ := strings.Cut(i.Email, "@")
	return local
}

// Session is a live authenticated session issued by the auth backend.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *Identity `json:"user"`
}

// Account is the credential record held by the auth backend. It never
// leaves the backend adapter: services only see Identity.
type Account struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	EmailConfirmed bool           `json:"email_confirmed"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Identity projects the account into the shape the rest of the system sees.
func (a *Account) Identity() *Identity {
	return &Identity{ID: a.ID, Email: a.Email, Metadata: a.Metadata}
}

// UserMeta is the application-level profile associated one-to-one with an
// identity. The backend is the source of truth; services only cache it.
type UserMeta struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the record grants the admin role. The comparison
// is case-sensitive: only exactly "admin" qualifies.
func (m *UserMeta) IsAdmin() bool {
	return m != nil && m.Role == RoleAdmin
}

// FallbackDisplayName is shown when neither a metadata record, provider
// name, nor email is available for an identity.
const FallbackDisplayName = "anonymous"

// DisplayName resolves the name shown for an identity, in order: metadata
// full name, provider name, email local part, fallback placeholder. Both
// arguments may be nil.
func DisplayName(id *Identity, meta *UserMeta) string {
	if meta != nil && meta.FullName != "" {
		return meta.FullName
	}
	if name := id.ProviderName(); name != "" {
		return name
	}
	if local := id.EmailLocalPart(); local != "" {
		return local
	}
	return FallbackDisplayName
}
