package domain

import (
	"context"
	"net/http"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account record.
type User struct {
	ID           string
	Name         string
	Email        string
	LoginMethod  string
	Role         Role
	CreatedAt    time.Time
	LastSignedIn time.Time
}

// Identity is the resolved caller of a request.
type Identity struct {
	ID   string
	Name string
	Role Role
}

// IsAdmin reports whether the identity may perform privileged mutations
// (report status changes, campaign creation).
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IdentityResolver resolves the caller of an HTTP request. The core consumes
// this capability instead of a hardcoded user, so a real identity provider can
// be substituted without touching handlers or services.
type IdentityResolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

type identityContextKey struct{}

// ContextWithIdentity stores the resolved identity in the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity stored by the middleware, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	if v, ok := ctx.Value(identityContextKey{}).(*Identity); ok {
		return v
	}
	return nil
}
