package domain

import (
	"context"
	"time"
)

// UserProfile is the backend-owned account record. The client holds a
// read-mostly copy; IsPro must be re-fetched before gating any paid action.
type UserProfile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	IsPro     bool      `json:"is_pro"`
	CreatedAt time.Time `json:"created_at"`
}

// Session pairs the opaque bearer credential with the profile it resolved to.
// A present User implies a present Token; the reverse holds only after the
// next profile fetch resolves.
type Session struct {
	Token string
	User  *UserProfile
}

// CredentialStore persists the single durable bearer credential. An empty
// token from Load is the sole "anonymous" signal.
type CredentialStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// AuthGateway is the backend authentication surface.
type AuthGateway interface {
	Signup(ctx context.Context, email, password, fullName string) (*UserProfile, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	// Me resolves the profile for a bearer token, bypassing intermediate
	// caches so the paid-tier flag is never stale.
	Me(ctx context.Context, token string) (*UserProfile, error)
}

type SessionUsecase interface {
	// Signup registers the account and then logs in with the same
	// credentials; registration alone does not establish a session.
	Signup(ctx context.Context, email, password, fullName string) (*UserProfile, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Logout is idempotent and never fails; no network round-trip is made.
	Logout()
	// CurrentUser returns nil with no error when anonymous or when the
	// backend rejects the credential (which also clears it).
	CurrentUser(ctx context.Context) (*UserProfile, error)
	// Token returns the stored credential, or "" when anonymous.
	Token() string
}
