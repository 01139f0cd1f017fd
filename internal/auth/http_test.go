// ABOUTME: Tests for the admin gate middleware and role checks
// ABOUTME: Covers cookie and bearer extraction, redirects, 401 JSON and RequireRole

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func issueTestToken(t *testing.T, a *Authenticator, role string) string {
	t.Helper()
	token, err := a.Issue(Identity{ID: 1, Email: "user@example.com", Name: "User", Role: role})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestExtractToken(t *testing.T) {
	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
		if got := ExtractToken(r); got != "cookie-token" {
			t.Errorf("ExtractToken() = %q, want cookie-token", got)
		}
	})

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		r.Header.Set("Authorization", "Bearer header-token")
		if got := ExtractToken(r); got != "header-token" {
			t.Errorf("ExtractToken() = %q, want header-token", got)
		}
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")
		if got := ExtractToken(r); got != "cookie-token" {
			t.Errorf("ExtractToken() = %q, want cookie-token", got)
		}
	})

	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/admin", nil)
		if got := ExtractToken(r); got != "" {
			t.Errorf("ExtractToken() = %q, want empty", got)
		}
	})
}

func TestRequirePage_RedirectsWithoutToken(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin", nil)
	a.RequirePage(okHandler(&called))(w, r)

	if called {
		t.Error("handler should not be called")
	}
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != LoginPath {
		t.Errorf("Location = %q, want %q", loc, LoginPath)
	}
}

func TestRequirePage_ClearsStaleCookie(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage-token"})
	a.RequirePage(okHandler(&called))(w, r)

	if called {
		t.Error("handler should not be called")
	}
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale cookie should be cleared on verification failure")
	}
}

func TestRequirePage_AllowsValidToken(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	token := issueTestToken(t, a, "content_manager")

	var gotIdentity *Identity
	handler := a.RequirePage(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotIdentity == nil || gotIdentity.Role != "content_manager" {
		t.Errorf("identity = %+v, want content_manager", gotIdentity)
	}
}

func TestRequireAPI_Returns401JSON(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/admin/blogs", nil)
	a.RequireAPI(okHandler(&called))(w, r)

	if called {
		t.Error("handler should not be called")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized") {
		t.Errorf("body = %q, want generic Unauthorized error", w.Body.String())
	}
}

func TestRequireAPI_AllowsBearer(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	token := issueTestToken(t, a, "super_admin")
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/admin/blogs", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	a.RequireAPI(okHandler(&called))(w, r)

	if !called {
		t.Error("handler should be called for a valid bearer token")
	}
}

func TestRequireRole_FailsClosed(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)

	// content_manager is rejected from a super_admin-only operation
	token := issueTestToken(t, a, "content_manager")
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/api/admin/blogs/1", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	a.RequireRole([]string{"super_admin"}, okHandler(&called))(w, r)

	if called {
		t.Error("handler should not be called")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	token := issueTestToken(t, a, "super_admin")
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/api/admin/blogs/1", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	a.RequireRole([]string{"super_admin"}, okHandler(&called))(w, r)

	if !called {
		t.Error("handler should be called for an allowed role")
	}
}

func TestRequireRole_NoToken(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	called := false

	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/api/admin/blogs/1", nil)
	a.RequireRole([]string{"super_admin"}, okHandler(&called))(w, r)

	if called {
		t.Error("handler should not be called")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestOptionalIdentity(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, false)
	token := issueTestToken(t, a, "content_manager")

	var provisional *ProvisionalIdentity
	handler := OptionalIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provisional = ProvisionalFromContext(r.Context())
	}))

	// With a token
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if provisional == nil || provisional.Email != "user@example.com" {
		t.Errorf("provisional = %+v, want user@example.com", provisional)
	}

	// Without a token the request still proceeds, anonymously
	provisional = nil
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if provisional != nil {
		t.Errorf("provisional = %+v, want nil for anonymous request", provisional)
	}
}

func TestSetCookie(t *testing.T) {
	a := NewAuthenticator(testSecret, 7*24*time.Hour, true)

	w := httptest.NewRecorder()
	a.SetCookie(w, "the-token")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName || c.Value != "the-token" {
		t.Errorf("cookie = %s=%s, want %s=the-token", c.Name, c.Value, CookieName)
	}
	if !c.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie should be Secure when requested")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("cookie should be SameSite=Lax")
	}
	if c.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("MaxAge = %d, want 7 days in seconds", c.MaxAge)
	}
}

func TestClearCookie_MirrorsSetCookieAttributes(t *testing.T) {
	a := NewAuthenticator(testSecret, time.Hour, true)

	w := httptest.NewRecorder()
	a.ClearCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName || c.Value != "" {
		t.Errorf("cookie = %s=%s, want empty %s", c.Name, c.Value, CookieName)
	}
	if c.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative to delete", c.MaxAge)
	}
	// Same attributes as issuance, so the browser deletes the cookie
	// login set rather than writing a second variant
	if c.Path != "/" {
		t.Errorf("Path = %q, want /", c.Path)
	}
	if !c.HttpOnly {
		t.Error("cleared cookie should be HttpOnly")
	}
	if !c.Secure {
		t.Error("cleared cookie should carry the same Secure flag as issuance")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("cleared cookie should be SameSite=Lax")
	}
}
