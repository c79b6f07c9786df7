package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"sismo/internal/domain"
)

// Identity resolves the caller through the injected resolver and stores the
// result in the request context. Requests the resolver rejects get 401.
func Identity(resolver domain.IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolver.Resolve(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := domain.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticResolver is the placeholder identity provider: every request resolves
// to a public user. The X-User-ID header selects the acting user, and the
// configured owner id resolves with the admin role. A real identity system
// replaces this without touching handlers or services.
type StaticResolver struct {
	OwnerID string
}

// PublicUserID is the identity assigned when no user header is present.
const PublicUserID = "public"

func (s *StaticResolver) Resolve(r *http.Request) (*domain.Identity, error) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		id = PublicUserID
	}
	role := domain.RoleUser
	if s.OwnerID != "" && id == s.OwnerID {
		role = domain.RoleAdmin
	}
	name := strings.TrimSpace(r.Header.Get("X-User-Name"))
	return &domain.Identity{ID: id, Name: name, Role: role}, nil
}

var _ domain.IdentityResolver = (*StaticResolver)(nil)

// RecordingResolver decorates another resolver and refreshes the caller's
// account record on every resolve. Record failures are logged, never fatal:
// a broken user store must not lock everyone out.
type RecordingResolver struct {
	Next   domain.IdentityResolver
	Users  domain.UserRepository
	Logger zerolog.Logger
}

func (rr *RecordingResolver) Resolve(r *http.Request) (*domain.Identity, error) {
	identity, err := rr.Next.Resolve(r)
	if err != nil || identity == nil {
		return identity, err
	}
	if rr.Users != nil {
		u := &domain.User{
			ID:          identity.ID,
			Name:        identity.Name,
			LoginMethod: "header",
			Role:        identity.Role,
		}
		if err := rr.Users.Upsert(r.Context(), u); err != nil {
			rr.Logger.Warn().Err(err).Str("user_id", identity.ID).Msg("account record refresh failed")
		}
	}
	return identity, nil
}

var _ domain.IdentityResolver = (*RecordingResolver)(nil)
