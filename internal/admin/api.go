// ABOUTME: JSON content management API for blogs, workouts, diet, categories and media
// ABOUTME: Validates input, derives slugs and maps store errors to HTTP statuses

package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vigorlabs/vigor-site/internal/store"
)

// apiListLimit caps admin list responses.
const apiListLimit = 200

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathID parses the {id} path segment. Returns false after writing a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// storeError maps typed store errors to HTTP responses.
func (a *Admin) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrDuplicateSlug):
		writeError(w, http.StatusBadRequest, "Slug already exists")
	case errors.Is(err, store.ErrDuplicateCategory):
		writeError(w, http.StatusBadRequest, "Category already exists")
	default:
		a.logger.Error("store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Blogs

type blogRequest struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	IsPublished     bool     `json:"isPublished"`
}

func (req *blogRequest) toPost() *store.BlogPost {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	return &store.BlogPost{
		Title:           req.Title,
		Slug:            slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Category:        req.Category,
		Tags:            req.Tags,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     req.IsPublished,
	}
}

func (a *Admin) handleBlogsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.store.ListBlogPosts(r.Context(), false, apiListLimit)
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (a *Admin) handleBlogCreate(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	post := req.toPost()
	if err := a.store.CreateBlogPost(r.Context(), post); err != nil {
		a.storeError(w, err)
		return
	}

	a.logger.Info("blog post created", "id", post.ID, "slug", post.Slug)
	writeJSON(w, http.StatusCreated, post)
}

func (a *Admin) handleBlogUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	post := req.toPost()
	post.ID = id

	taken, err := a.store.SlugExists(r.Context(), post.Slug, id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Slug already exists")
		return
	}

	if err := a.store.UpdateBlogPost(r.Context(), post); err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (a *Admin) handleBlogDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteBlogPost(r.Context(), id); err != nil {
		a.storeError(w, err)
		return
	}
	a.logger.Info("blog post deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Workouts

type workoutRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
	WorkoutType string `json:"workoutType"`
	IsActive    bool   `json:"isActive"`
}

func (req *workoutRequest) toWorkout() *store.Workout {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	return &store.Workout{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Content:     req.Content,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		WorkoutType: req.WorkoutType,
		IsActive:    req.IsActive,
	}
}

func (a *Admin) handleWorkoutsList(w http.ResponseWriter, r *http.Request) {
	workouts, err := a.store.ListWorkouts(r.Context(), false, apiListLimit)
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (a *Admin) handleWorkoutCreate(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	workout := req.toWorkout()
	if err := a.store.CreateWorkout(r.Context(), workout); err != nil {
		a.storeError(w, err)
		return
	}

	a.logger.Info("workout created", "id", workout.ID, "slug", workout.Slug)
	writeJSON(w, http.StatusCreated, workout)
}

func (a *Admin) handleWorkoutUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req workoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	workout := req.toWorkout()
	workout.ID = id

	taken, err := a.store.WorkoutSlugExists(r.Context(), workout.Slug, id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Slug already exists")
		return
	}

	if err := a.store.UpdateWorkout(r.Context(), workout); err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (a *Admin) handleWorkoutDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteWorkout(r.Context(), id); err != nil {
		a.storeError(w, err)
		return
	}
	a.logger.Info("workout deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Diet content

type dietRequest struct {
	CategoryID      *int64 `json:"categoryId"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	IsActive        bool   `json:"isActive"`
}

func (req *dietRequest) toDietContent() *store.DietContent {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	return &store.DietContent{
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Slug:            slug,
		Content:         req.Content,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsActive:        req.IsActive,
	}
}

func (a *Admin) handleDietList(w http.ResponseWriter, r *http.Request) {
	content, err := a.store.ListDietContent(r.Context(), false, apiListLimit)
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (a *Admin) handleDietCreate(w http.ResponseWriter, r *http.Request) {
	var req dietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	content := req.toDietContent()
	if err := a.store.CreateDietContent(r.Context(), content); err != nil {
		a.storeError(w, err)
		return
	}

	a.logger.Info("diet content created", "id", content.ID, "slug", content.Slug)
	writeJSON(w, http.StatusCreated, content)
}

func (a *Admin) handleDietUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dietRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	content := req.toDietContent()
	content.ID = id

	taken, err := a.store.DietSlugExists(r.Context(), content.Slug, id)
	if err != nil {
		a.storeError(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Slug already exists")
		return
	}

	if err := a.store.UpdateDietContent(r.Context(), content); err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (a *Admin) handleDietDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteDietContent(r.Context(), id); err != nil {
		a.storeError(w, err)
		return
	}
	a.logger.Info("diet content deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Categories

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (a *Admin) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.store.ListCategories(r.Context())
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *Admin) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}
	category := &store.Category{Name: req.Name, Slug: slug, Description: req.Description}
	if err := a.store.CreateCategory(r.Context(), category); err != nil {
		a.storeError(w, err)
		return
	}

	a.logger.Info("category created", "id", category.ID, "slug", category.Slug)
	writeJSON(w, http.StatusCreated, category)
}

// Media

func (a *Admin) handleMediaList(w http.ResponseWriter, r *http.Request) {
	media, err := a.store.ListMedia(r.Context(), apiListLimit)
	if err != nil {
		a.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, media)
}

func (a *Admin) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.store.DeleteMedia(r.Context(), id); err != nil {
		a.storeError(w, err)
		return
	}
	a.logger.Info("media deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
