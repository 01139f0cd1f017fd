// Package store provides SQLite persistence for vigor-site.
//
// It holds the back-office users plus all public content: blog posts,
// workouts, categories, diet articles, media records and chat logs. The
// schema is created automatically on open; public lookups filter by
// publish/active state while admin lookups see everything.
package store
