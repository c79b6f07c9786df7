package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"sismo/internal/domain"
)

func TestStaticResolver_DefaultsToPublicUser(t *testing.T) {
	resolver := &StaticResolver{OwnerID: "owner"}
	req := httptest.NewRequest("GET", "/", nil)

	identity, err := resolver.Resolve(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.ID != PublicUserID {
		t.Fatalf("expected public user, got %q", identity.ID)
	}
	if identity.IsAdmin() {
		t.Fatal("public user must not be admin")
	}
}

func TestStaticResolver_OwnerGetsAdminRole(t *testing.T) {
	resolver := &StaticResolver{OwnerID: "owner"}
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-ID", "owner")

	identity, err := resolver.Resolve(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !identity.IsAdmin() {
		t.Fatal("owner must resolve as admin")
	}
}

func TestIdentityMiddleware_StoresIdentityInContext(t *testing.T) {
	var got *domain.Identity
	handler := Identity(&StaticResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = domain.IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-ID", "u42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.ID != "u42" {
		t.Fatalf("expected identity u42 in context, got %+v", got)
	}
}

type recordingUsers struct {
	upserts []domain.User
	err     error
}

func (r *recordingUsers) Upsert(_ context.Context, u *domain.User) error {
	r.upserts = append(r.upserts, *u)
	return r.err
}

func (r *recordingUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func TestRecordingResolver_RefreshesAccountRecord(t *testing.T) {
	users := &recordingUsers{}
	resolver := &RecordingResolver{
		Next:   &StaticResolver{OwnerID: "owner"},
		Users:  users,
		Logger: zerolog.Nop(),
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-ID", "u42")
	req.Header.Set("X-User-Name", "Ana")

	identity, err := resolver.Resolve(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.ID != "u42" {
		t.Fatalf("expected u42, got %q", identity.ID)
	}
	if len(users.upserts) != 1 || users.upserts[0].Name != "Ana" {
		t.Fatalf("expected one upsert with name, got %+v", users.upserts)
	}
}

func TestRecordingResolver_StoreFailureDoesNotBlockRequest(t *testing.T) {
	users := &recordingUsers{err: errors.New("store down")}
	resolver := &RecordingResolver{
		Next:   &StaticResolver{},
		Users:  users,
		Logger: zerolog.Nop(),
	}

	identity, err := resolver.Resolve(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("resolve must not fail on record error: %v", err)
	}
	if identity == nil {
		t.Fatal("expected identity despite store failure")
	}
}
