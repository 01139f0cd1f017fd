// ABOUTME: Admin back-office package with authenticated pages and JSON CRUD API
// ABOUTME: Registers login, dashboard, entity pages and content management routes

package admin

import (
	"log/slog"
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// Admin handles back-office routes and content management.
type Admin struct {
	store  *store.SQLiteStore
	auth   *auth.Authenticator
	logger *slog.Logger
}

// NewAdmin creates the back-office handler group.
func NewAdmin(st *store.SQLiteStore, authenticator *auth.Authenticator) *Admin {
	return &Admin{
		store:  st,
		auth:   authenticator,
		logger: slog.Default().With("component", "admin"),
	}
}

// RegisterRoutes registers all admin routes on the given mux.
func (a *Admin) RegisterRoutes(mux *http.ServeMux) {
	// Auth endpoints (no middleware)
	mux.HandleFunc("GET /admin/login", a.handleLoginPage)
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", a.handleLogout)

	// Pages (auth required)
	mux.HandleFunc("GET /admin", a.auth.RequirePage(a.handleDashboard))
	mux.HandleFunc("GET /admin/{$}", a.auth.RequirePage(a.handleDashboard))
	mux.HandleFunc("GET /admin/blogs", a.auth.RequirePage(a.handleBlogsPage))
	mux.HandleFunc("GET /admin/workouts", a.auth.RequirePage(a.handleWorkoutsPage))
	mux.HandleFunc("GET /admin/diet", a.auth.RequirePage(a.handleDietPage))
	mux.HandleFunc("GET /admin/media", a.auth.RequirePage(a.handleMediaPage))

	// Content API (auth required; deletes are super_admin only)
	superOnly := []string{store.RoleSuperAdmin}

	mux.HandleFunc("GET /api/admin/blogs", a.auth.RequireAPI(a.handleBlogsList))
	mux.HandleFunc("POST /api/admin/blogs", a.auth.RequireAPI(a.handleBlogCreate))
	mux.HandleFunc("PUT /api/admin/blogs/{id}", a.auth.RequireAPI(a.handleBlogUpdate))
	mux.HandleFunc("DELETE /api/admin/blogs/{id}", a.auth.RequireRole(superOnly, a.handleBlogDelete))

	mux.HandleFunc("GET /api/admin/workouts", a.auth.RequireAPI(a.handleWorkoutsList))
	mux.HandleFunc("POST /api/admin/workouts", a.auth.RequireAPI(a.handleWorkoutCreate))
	mux.HandleFunc("PUT /api/admin/workouts/{id}", a.auth.RequireAPI(a.handleWorkoutUpdate))
	mux.HandleFunc("DELETE /api/admin/workouts/{id}", a.auth.RequireRole(superOnly, a.handleWorkoutDelete))

	mux.HandleFunc("GET /api/admin/diet", a.auth.RequireAPI(a.handleDietList))
	mux.HandleFunc("POST /api/admin/diet", a.auth.RequireAPI(a.handleDietCreate))
	mux.HandleFunc("PUT /api/admin/diet/{id}", a.auth.RequireAPI(a.handleDietUpdate))
	mux.HandleFunc("DELETE /api/admin/diet/{id}", a.auth.RequireRole(superOnly, a.handleDietDelete))

	mux.HandleFunc("GET /api/admin/categories", a.auth.RequireAPI(a.handleCategoriesList))
	mux.HandleFunc("POST /api/admin/categories", a.auth.RequireAPI(a.handleCategoryCreate))

	mux.HandleFunc("GET /api/admin/media", a.auth.RequireAPI(a.handleMediaList))
	mux.HandleFunc("DELETE /api/admin/media/{id}", a.auth.RequireRole(superOnly, a.handleMediaDelete))
}
