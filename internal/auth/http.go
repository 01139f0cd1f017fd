// ABOUTME: HTTP middleware gating the admin area behind the session credential
// ABOUTME: Extracts the token from cookie or bearer header and attaches the identity

package auth

import (
	"net/http"
	"strings"
)

// CookieName is the name of the credential cookie.
const CookieName = "auth_token"

// LoginPath is where unauthenticated browser requests are sent.
const LoginPath = "/admin/login"

// ExtractToken pulls the credential from the auth cookie or the
// Authorization: Bearer header. Returns "" if neither is present.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// SetCookie attaches the credential cookie to the response.
func (a *Authenticator) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.ttl.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the credential cookie. Attributes mirror SetCookie so
// the deletion always targets the cookie login issued.
func (a *Authenticator) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequirePage wraps a browser-facing handler. On verification failure the
// stale cookie is cleared and the request is redirected to the login page.
func (a *Authenticator) RequirePage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		id, err := a.Verify(token)
		if err != nil {
			a.ClearCookie(w)
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// RequireAPI wraps a JSON API handler. Verification failure yields a 401
// JSON error; which check failed is never revealed to the caller.
func (a *Authenticator) RequireAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			unauthorized(w)
			return
		}

		id, err := a.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// RequireRole wraps a JSON API handler and additionally checks the decoded
// role against the allow-list. Fails closed: no identity yields 401, a role
// outside the list yields 403.
func (a *Authenticator) RequireRole(allowed []string, next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAPI(func(w http.ResponseWriter, r *http.Request) {
		id := FromContext(r.Context())
		if id == nil {
			unauthorized(w)
			return
		}

		for _, role := range allowed {
			if id.Role == role {
				next(w, r)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"Forbidden"}`))
	})
}

// OptionalIdentity attaches a provisional identity when a structurally
// valid, unexpired token is present. Used by public pages for rendering
// decisions only; the signature is not checked here, so nothing downstream
// may treat the result as authorization.
func OptionalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := Inspect(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithProvisional(r.Context(), id)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}
