package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("test-secret")
	w := httptest.NewRecorder()
	s.Create(w, 42)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	uid, ok := s.Parse(r)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	s := NewSessions("test-secret")
	w := httptest.NewRecorder()
	s.Create(w, 7)

	cookie := w.Result().Cookies()[0]
	// Change the user id but keep the old signature.
	parts := strings.SplitN(cookie.Value, ".", 2)
	cookie.Value = "8." + parts[1]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	if _, ok := s.Parse(r); ok {
		t.Fatalf("expected tampered session to be rejected")
	}
}

func TestDifferentSecretRejected(t *testing.T) {
	a := NewSessions("secret-a")
	b := NewSessions("secret-b")
	w := httptest.NewRecorder()
	a.Create(w, 1)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	if _, ok := b.Parse(r); ok {
		t.Fatalf("expected session signed with other secret to be rejected")
	}
}

func TestMiddlewareInjectsUserID(t *testing.T) {
	s := NewSessions("test-secret")
	w := httptest.NewRecorder()
	s.Create(w, 9)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	var got uint
	h := s.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	if got != 9 {
		t.Fatalf("expected uid 9 in context, got %d", got)
	}
}
