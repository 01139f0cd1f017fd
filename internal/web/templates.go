// ABOUTME: Template rendering functions for the public site
// ABOUTME: Loads templates from the embedded filesystem and renders them

package web

import (
	"html/template"
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/store"
)

// Template data types
type page struct {
	Title           string
	MetaTitle       string
	MetaDescription string
	LoggedIn        bool
}

type homeData struct {
	page
	Posts      []*store.BlogPost
	Workouts   []*store.Workout
	Categories []*store.Category
}

type blogIndexData struct {
	page
	Posts []*store.BlogPost
}

type blogDetailData struct {
	page
	Post *store.BlogPost
	Body template.HTML
}

type fitnessIndexData struct {
	page
	Workouts []*store.Workout
}

type fitnessDetailData struct {
	page
	Workout *store.Workout
	Body    template.HTML
}

type dietCategoryGroup struct {
	Category *store.Category
	Items    []*store.DietContent
}

type dietIndexData struct {
	page
	Groups []dietCategoryGroup
}

type dietDetailData struct {
	page
	Category *store.Category
	Content  *store.DietContent
	Body     template.HTML
}

type chatPageData struct {
	page
}

type notFoundData struct {
	page
}

// render parses base.html plus the named page template and executes it.
func (s *Site) render(w http.ResponseWriter, name string, data any) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+name))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "template", name, "error", err)
	}
}

// renderNotFound renders the 404 page.
func (s *Site) renderNotFound(w http.ResponseWriter, loggedIn bool) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/notfound.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	data := notFoundData{page: page{Title: "Page Not Found", LoggedIn: loggedIn}}
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render not found page", "error", err)
	}
}
