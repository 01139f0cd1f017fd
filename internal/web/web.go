// ABOUTME: Public site package serving the marketing pages and the chat API
// ABOUTME: Wires the store, markdown renderer, rate limiter and chat client together

package web

import (
	"log/slog"
	"net/http"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/chat"
	"github.com/vigorlabs/vigor-site/internal/ratelimit"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// listLimit caps how many items an index page loads.
const listLimit = 100

// Site serves the public pages and the chat endpoint.
type Site struct {
	store   *store.SQLiteStore
	chat    *chat.Client
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// NewSite creates the public site handler group.
func NewSite(st *store.SQLiteStore, chatClient *chat.Client, limiter *ratelimit.Limiter) *Site {
	return &Site{
		store:   st,
		chat:    chatClient,
		limiter: limiter,
		logger:  slog.Default().With("component", "web"),
	}
}

// RegisterRoutes registers the public routes on the given mux. Page routes
// are decorated with an optional provisional identity so templates can show
// the back-office link to someone who plausibly has a session.
func (s *Site) RegisterRoutes(mux *http.ServeMux) {
	page := func(h http.HandlerFunc) http.Handler {
		return auth.OptionalIdentity(h)
	}

	mux.Handle("GET /{$}", page(s.handleHome))
	mux.Handle("GET /blog", page(s.handleBlogIndex))
	mux.Handle("GET /blog/{slug}", page(s.handleBlogDetail))
	mux.Handle("GET /fitness", page(s.handleFitnessIndex))
	mux.Handle("GET /fitness/{slug}", page(s.handleFitnessDetail))
	mux.Handle("GET /diet", page(s.handleDietIndex))
	mux.Handle("GET /diet/{category}/{slug}", page(s.handleDietDetail))
	mux.Handle("GET /chat", page(s.handleChatPage))

	mux.HandleFunc("POST /api/chat", s.handleChatAPI)
}
