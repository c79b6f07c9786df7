package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeThroughMiddleware(t *testing.T, configure func(r *http.Request)) string {
	t.Helper()
	var got string
	handler := I18N("es", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/", nil)
	configure(req)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestI18N_XLocaleHeaderWins(t *testing.T) {
	got := localeThroughMiddleware(t, func(r *http.Request) {
		r.Header.Set("X-Locale", "es-CL")
		r.Header.Set("Accept-Language", "en-US")
	})
	if got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
}

func TestI18N_AcceptLanguageFallback(t *testing.T) {
	got := localeThroughMiddleware(t, func(r *http.Request) {
		r.Header.Set("Accept-Language", "en-GB;q=0.9")
	})
	if got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}

func TestI18N_SpanishCountryHintSelectsSpanish(t *testing.T) {
	got := localeThroughMiddleware(t, func(r *http.Request) {
		r.Header.Set("CF-IPCountry", "cl")
	})
	if got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
}

func TestI18N_DefaultsToSpanish(t *testing.T) {
	got := localeThroughMiddleware(t, func(r *http.Request) {})
	if got != "es" {
		t.Fatalf("expected es, got %q", got)
	}
}
