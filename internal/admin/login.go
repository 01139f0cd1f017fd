// ABOUTME: Login, logout and credential issuing for the back-office
// ABOUTME: Keeps auth failures generic and distinguishes store outages as 503

package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
	Token   string    `json:"token"`
}

type loginUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// handleLoginPage serves the login form. An already-authenticated visitor
// is sent straight to the dashboard.
func (a *Admin) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if token := auth.ExtractToken(r); token != "" {
		if _, err := a.auth.Verify(token); err == nil {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
	}
	a.renderLoginPage(w, "")
}

// handleLogin serves POST /api/auth/login. Failure responses never reveal
// whether the email exists.
func (a *Admin) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Error("login store lookup failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
			return
		}
		// Unknown email burns the same bcrypt time as a real comparison
		auth.CompareDummy(req.Password)
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	identity := auth.Identity{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	token, err := a.auth.Issue(identity)
	if err != nil {
		a.logger.Error("issuing credential failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	a.auth.SetCookie(w, token)
	a.logger.Info("admin login", "user_id", user.ID, "role", user.Role)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		Success: true,
		User:    loginUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role},
		Token:   token,
	})
}

// handleLogout clears the credential cookie. Tokens are stateless, so there
// is nothing to revoke server-side.
func (a *Admin) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.auth.ClearCookie(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
