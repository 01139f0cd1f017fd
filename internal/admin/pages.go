// ABOUTME: Browser-facing admin pages: dashboard and entity listings
// ABOUTME: All handlers run behind the page middleware and read the verified identity

package admin

import (
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/auth"
)

func (a *Admin) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := auth.FromContext(ctx)

	blogs, err := a.store.CountBlogPosts(ctx)
	if err != nil {
		a.logger.Error("counting blog posts", "error", err)
	}
	workouts, err := a.store.CountWorkouts(ctx)
	if err != nil {
		a.logger.Error("counting workouts", "error", err)
	}
	diet, err := a.store.CountDietContent(ctx)
	if err != nil {
		a.logger.Error("counting diet content", "error", err)
	}
	users, err := a.store.CountUsers(ctx)
	if err != nil {
		a.logger.Error("counting users", "error", err)
	}

	a.renderDashboard(w, user, dashboardCounts{
		Blogs:    blogs,
		Workouts: workouts,
		Diet:     diet,
		Users:    users,
	})
}

func (a *Admin) handleBlogsPage(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	posts, err := a.store.ListBlogPosts(r.Context(), false, apiListLimit)
	if err != nil {
		a.logger.Error("listing blog posts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.renderBlogsPage(w, user, posts)
}

func (a *Admin) handleWorkoutsPage(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	workouts, err := a.store.ListWorkouts(r.Context(), false, apiListLimit)
	if err != nil {
		a.logger.Error("listing workouts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.renderWorkoutsPage(w, user, workouts)
}

func (a *Admin) handleDietPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := auth.FromContext(ctx)

	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		a.logger.Error("listing categories", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	content, err := a.store.ListDietContent(ctx, false, apiListLimit)
	if err != nil {
		a.logger.Error("listing diet content", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.renderDietPage(w, user, categories, content)
}

func (a *Admin) handleMediaPage(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	media, err := a.store.ListMedia(r.Context(), apiListLimit)
	if err != nil {
		a.logger.Error("listing media", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	a.renderMediaPage(w, user, media)
}
