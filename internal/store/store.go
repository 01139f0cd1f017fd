// ABOUTME: Store types and errors for vigor-site persistence
// ABOUTME: Defines User, BlogPost, Workout, DietContent, Category, Media and ChatLog

package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateSlug is returned when a slug is already taken by another row
var ErrDuplicateSlug = errors.New("slug already exists")

// ErrEmailExists is returned when trying to create a user with an existing email
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateCategory is returned when a category name or slug already exists
var ErrDuplicateCategory = errors.New("category already exists")

// Role constants for admin users
const (
	RoleSuperAdmin     = "super_admin"
	RoleContentManager = "content_manager"
)

// User represents a back-office user
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string // "super_admin" or "content_manager"
	CreatedAt    time.Time
}

// BlogPost represents a blog article, stored as markdown
type BlogPost struct {
	ID              int64
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	Category        string
	Tags            []string
	MetaTitle       string
	MetaDescription string
	IsPublished     bool
	PublishedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Workout represents a fitness routine shown on the public site
type Workout struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Content     string
	Duration    int // minutes
	Difficulty  string
	WorkoutType string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category groups diet content
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
}

// DietContent represents a nutrition/diet article within a category
type DietContent struct {
	ID              int64
	CategoryID      *int64
	Title           string
	Slug            string
	Content         string
	MetaTitle       string
	MetaDescription string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Media represents an uploaded asset referenced by content
type Media struct {
	ID        int64
	Filename  string
	URL       string
	MimeType  string
	SizeBytes int64
	CreatedAt time.Time
}

// ChatLog records a single chat exchange for later review
type ChatLog struct {
	ID          int64
	SessionID   string
	UserMessage string
	AIResponse  string
	CreatedAt   time.Time
}
