// ABOUTME: Page handlers for the public marketing site
// ABOUTME: Home, blog, fitness, diet and chat pages rendered from the store

package web

import (
	"errors"
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// loggedIn reports whether the request carries a plausible admin session,
// used only to decide whether templates show the back-office link.
func loggedIn(r *http.Request) bool {
	return auth.ProvisionalFromContext(r.Context()) != nil
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := s.store.ListBlogPosts(ctx, true, 3)
	if err != nil {
		s.logger.Error("loading recent posts", "error", err)
	}
	workouts, err := s.store.ListWorkouts(ctx, true, 3)
	if err != nil {
		s.logger.Error("loading workouts", "error", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.Error("loading categories", "error", err)
	}

	s.render(w, "home.html", homeData{
		page: page{
			Title:           "Vigor",
			MetaTitle:       "Vigor - Health, Fitness & Nutrition",
			MetaDescription: "Workouts, nutrition guidance and healthy living content.",
			LoggedIn:        loggedIn(r),
		},
		Posts:      posts,
		Workouts:   workouts,
		Categories: categories,
	})
}

func (s *Site) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListBlogPosts(r.Context(), true, listLimit)
	if err != nil {
		s.logger.Error("listing blog posts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "blog_index.html", blogIndexData{
		page: page{
			Title:           "Blog",
			MetaTitle:       "Blog - Vigor",
			MetaDescription: "Articles on health, fitness and nutrition.",
			LoggedIn:        loggedIn(r),
		},
		Posts: posts,
	})
}

func (s *Site) handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	post, err := s.store.GetBlogPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, loggedIn(r))
			return
		}
		s.logger.Error("loading blog post", "slug", slug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	meta := page{
		Title:           post.Title,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		LoggedIn:        loggedIn(r),
	}
	if meta.MetaTitle == "" {
		meta.MetaTitle = post.Title + " - Vigor"
	}
	if meta.MetaDescription == "" {
		meta.MetaDescription = post.Excerpt
	}

	s.render(w, "blog_detail.html", blogDetailData{
		page: meta,
		Post: post,
		Body: renderMarkdown(post.Content),
	})
}

func (s *Site) handleFitnessIndex(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context(), true, listLimit)
	if err != nil {
		s.logger.Error("listing workouts", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "fitness_index.html", fitnessIndexData{
		page: page{
			Title:           "Fitness",
			MetaTitle:       "Workouts - Vigor",
			MetaDescription: "Workout routines for every level.",
			LoggedIn:        loggedIn(r),
		},
		Workouts: workouts,
	})
}

func (s *Site) handleFitnessDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	workout, err := s.store.GetWorkoutBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, loggedIn(r))
			return
		}
		s.logger.Error("loading workout", "slug", slug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "fitness_detail.html", fitnessDetailData{
		page: page{
			Title:           workout.Title,
			MetaTitle:       workout.Title + " - Vigor",
			MetaDescription: workout.Description,
			LoggedIn:        loggedIn(r),
		},
		Workout: workout,
		Body:    renderMarkdown(workout.Content),
	})
}

func (s *Site) handleDietIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.Error("listing categories", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	content, err := s.store.ListDietContent(ctx, true, listLimit)
	if err != nil {
		s.logger.Error("listing diet content", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	groups := make([]dietCategoryGroup, 0, len(categories))
	for _, cat := range categories {
		group := dietCategoryGroup{Category: cat}
		for _, item := range content {
			if item.CategoryID != nil && *item.CategoryID == cat.ID {
				group.Items = append(group.Items, item)
			}
		}
		groups = append(groups, group)
	}

	s.render(w, "diet_index.html", dietIndexData{
		page: page{
			Title:           "Diet & Nutrition",
			MetaTitle:       "Diet & Nutrition - Vigor",
			MetaDescription: "Nutrition guides organized by category.",
			LoggedIn:        loggedIn(r),
		},
		Groups: groups,
	})
}

func (s *Site) handleDietDetail(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.PathValue("category")
	slug := r.PathValue("slug")
	ctx := r.Context()

	category, err := s.store.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, loggedIn(r))
			return
		}
		s.logger.Error("loading category", "slug", categorySlug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	content, err := s.store.GetDietContentBySlug(ctx, categorySlug, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w, loggedIn(r))
			return
		}
		s.logger.Error("loading diet content", "slug", slug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	meta := page{
		Title:           content.Title,
		MetaTitle:       content.MetaTitle,
		MetaDescription: content.MetaDescription,
		LoggedIn:        loggedIn(r),
	}
	if meta.MetaTitle == "" {
		meta.MetaTitle = content.Title + " - Vigor"
	}

	s.render(w, "diet_detail.html", dietDetailData{
		page:     meta,
		Category: category,
		Content:  content,
		Body:     renderMarkdown(content.Content),
	})
}

func (s *Site) handleChatPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "chat.html", chatPageData{
		page: page{
			Title:           "AI Assistant",
			MetaTitle:       "AI Health Assistant - Vigor",
			MetaDescription: "Ask our assistant about health, diet and fitness.",
			LoggedIn:        loggedIn(r),
		},
	})
}
