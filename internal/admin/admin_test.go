// ABOUTME: Shared test fixtures for the admin package
// ABOUTME: Builds a mux with a temporary store and seeded admin users

package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

const (
	testSuperEmail   = "owner@example.com"
	testManagerEmail = "editor@example.com"
	testPassword     = "correct-horse-battery"
)

func setupAdmin(t *testing.T) (*http.ServeMux, *store.SQLiteStore) {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, st.CreateUser(ctx, &store.User{
		Email: testSuperEmail, PasswordHash: hash, Name: "Owner", Role: store.RoleSuperAdmin,
	}))
	require.NoError(t, st.CreateUser(ctx, &store.User{
		Email: testManagerEmail, PasswordHash: hash, Name: "Editor", Role: store.RoleContentManager,
	}))

	authenticator := auth.NewAuthenticator([]byte("admin-test-secret"), time.Hour, false)
	a := NewAdmin(st, authenticator)

	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return mux, st
}

// login posts credentials and returns the issued token.
func login(t *testing.T, mux *http.ServeMux, email, password string) string {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"`+email+`","password":"`+password+`"}`))
	mux.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// doJSON performs an authenticated JSON request against the mux.
func doJSON(t *testing.T, mux *http.ServeMux, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}
