// ABOUTME: Template rendering functions for the admin UI
// ABOUTME: Loads templates from the embedded filesystem and renders them

package admin

import (
	"html/template"
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// Template data types
type loginData struct {
	Title string
	User  *auth.Identity // always nil; the base layout expects the field
	Error string
}

type dashboardCounts struct {
	Blogs    int
	Workouts int
	Diet     int
	Users    int
}

type dashboardData struct {
	Title  string
	User   *auth.Identity
	Counts dashboardCounts
}

type blogsPageData struct {
	Title string
	User  *auth.Identity
	Posts []*store.BlogPost
}

type workoutsPageData struct {
	Title    string
	User     *auth.Identity
	Workouts []*store.Workout
}

type dietPageData struct {
	Title      string
	User       *auth.Identity
	Categories []*store.Category
	Content    []*store.DietContent
}

type mediaPageData struct {
	Title string
	User  *auth.Identity
	Media []*store.Media
}

func (a *Admin) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+name))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		a.logger.Error("failed to render admin page", "template", name, "error", err)
	}
}

func (a *Admin) renderLoginPage(w http.ResponseWriter, errorMsg string) {
	a.renderTemplate(w, "login.html", loginData{Title: "Login", Error: errorMsg})
}

func (a *Admin) renderDashboard(w http.ResponseWriter, user *auth.Identity, counts dashboardCounts) {
	a.renderTemplate(w, "dashboard.html", dashboardData{Title: "Dashboard", User: user, Counts: counts})
}

func (a *Admin) renderBlogsPage(w http.ResponseWriter, user *auth.Identity, posts []*store.BlogPost) {
	a.renderTemplate(w, "blogs.html", blogsPageData{Title: "Blog Posts", User: user, Posts: posts})
}

func (a *Admin) renderWorkoutsPage(w http.ResponseWriter, user *auth.Identity, workouts []*store.Workout) {
	a.renderTemplate(w, "workouts.html", workoutsPageData{Title: "Workouts", User: user, Workouts: workouts})
}

func (a *Admin) renderDietPage(w http.ResponseWriter, user *auth.Identity, categories []*store.Category, content []*store.DietContent) {
	a.renderTemplate(w, "diet.html", dietPageData{Title: "Diet Content", User: user, Categories: categories, Content: content})
}

func (a *Admin) renderMediaPage(w http.ResponseWriter, user *auth.Identity, media []*store.Media) {
	a.renderTemplate(w, "media.html", mediaPageData{Title: "Media", User: user, Media: media})
}
