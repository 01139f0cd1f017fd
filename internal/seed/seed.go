// ABOUTME: Idempotent database seeding for first-run setup
// ABOUTME: Ensures an admin user and loads starter content from a TOML file

package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vigorlabs/vigor-site/internal/auth"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// Seeder populates a store with starter data. Every operation is
// idempotent: running seed twice leaves the database unchanged.
type Seeder struct {
	store  *store.SQLiteStore
	logger *slog.Logger
}

// New creates a seeder for the given store.
func New(st *store.SQLiteStore) *Seeder {
	return &Seeder{
		store:  st,
		logger: slog.Default().With("component", "seed"),
	}
}

// File is the TOML seed file layout.
type File struct {
	Categories []CategorySeed `toml:"categories"`
	Diet       []DietSeed     `toml:"diet"`
	Blogs      []BlogSeed     `toml:"blogs"`
	Workouts   []WorkoutSeed  `toml:"workouts"`
}

type CategorySeed struct {
	Name        string `toml:"name"`
	Slug        string `toml:"slug"`
	Description string `toml:"description"`
}

type DietSeed struct {
	Category string `toml:"category"` // category slug
	Title    string `toml:"title"`
	Slug     string `toml:"slug"`
	Content  string `toml:"content"`
	Active   bool   `toml:"active"`
}

type BlogSeed struct {
	Title     string   `toml:"title"`
	Slug      string   `toml:"slug"`
	Content   string   `toml:"content"`
	Excerpt   string   `toml:"excerpt"`
	Category  string   `toml:"category"`
	Tags      []string `toml:"tags"`
	Published bool     `toml:"published"`
}

type WorkoutSeed struct {
	Title       string `toml:"title"`
	Slug        string `toml:"slug"`
	Description string `toml:"description"`
	Content     string `toml:"content"`
	Duration    int    `toml:"duration"`
	Difficulty  string `toml:"difficulty"`
	Type        string `toml:"type"`
	Active      bool   `toml:"active"`
}

// EnsureAdmin creates or updates the admin user with the given credentials.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password, name, role string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}
	if role == "" {
		role = store.RoleSuperAdmin
	}
	if name == "" {
		name = "Admin"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.store.UpsertUser(ctx, &store.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}); err != nil {
		return fmt.Errorf("upserting admin user: %w", err)
	}

	s.logger.Info("admin user ensured", "email", email, "role", role)
	return nil
}

// LoadFile reads a TOML seed file and inserts its content. Rows whose slug
// already exists are skipped, not overwritten.
func (s *Seeder) LoadFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	return s.Load(ctx, &file)
}

// Load inserts the seed content into the store.
func (s *Seeder) Load(ctx context.Context, file *File) error {
	for _, c := range file.Categories {
		err := s.store.CreateCategory(ctx, &store.Category{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		})
		if err != nil && !errors.Is(err, store.ErrDuplicateCategory) {
			return fmt.Errorf("seeding category %q: %w", c.Slug, err)
		}
	}

	for _, d := range file.Diet {
		var categoryID *int64
		if d.Category != "" {
			category, err := s.store.GetCategoryBySlug(ctx, d.Category)
			if err != nil {
				return fmt.Errorf("seeding diet %q: unknown category %q", d.Slug, d.Category)
			}
			categoryID = &category.ID
		}

		err := s.store.CreateDietContent(ctx, &store.DietContent{
			CategoryID: categoryID,
			Title:      d.Title,
			Slug:       d.Slug,
			Content:    d.Content,
			IsActive:   d.Active,
		})
		if err != nil && !errors.Is(err, store.ErrDuplicateSlug) {
			return fmt.Errorf("seeding diet %q: %w", d.Slug, err)
		}
	}

	for _, b := range file.Blogs {
		err := s.store.CreateBlogPost(ctx, &store.BlogPost{
			Title:       b.Title,
			Slug:        b.Slug,
			Content:     b.Content,
			Excerpt:     b.Excerpt,
			Category:    b.Category,
			Tags:        b.Tags,
			IsPublished: b.Published,
		})
		if err != nil && !errors.Is(err, store.ErrDuplicateSlug) {
			return fmt.Errorf("seeding blog %q: %w", b.Slug, err)
		}
	}

	for _, w := range file.Workouts {
		err := s.store.CreateWorkout(ctx, &store.Workout{
			Title:       w.Title,
			Slug:        w.Slug,
			Description: w.Description,
			Content:     w.Content,
			Duration:    w.Duration,
			Difficulty:  w.Difficulty,
			WorkoutType: w.Type,
			IsActive:    w.Active,
		})
		if err != nil && !errors.Is(err, store.ErrDuplicateSlug) {
			return fmt.Errorf("seeding workout %q: %w", w.Slug, err)
		}
	}

	s.logger.Info("seed content loaded",
		"categories", len(file.Categories),
		"diet", len(file.Diet),
		"blogs", len(file.Blogs),
		"workouts", len(file.Workouts))
	return nil
}
