// ABOUTME: Diet content and category store methods
// ABOUTME: Diet articles belong to an optional category and carry an active flag

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateCategory inserts a new category and returns it with the assigned ID.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *Category) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description) VALUES (?, ?, ?)`,
		c.Name, c.Slug, c.Description,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("inserting category: %w", err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting category id: %w", err)
	}

	s.logger.Info("created category", "id", c.ID, "name", c.Name)
	return nil
}

// GetCategoryBySlug retrieves a category by slug.
func (s *SQLiteStore) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	var description sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM categories WHERE slug = ?`, slug).
		Scan(&c.ID, &c.Name, &c.Slug, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying category: %w", err)
	}

	c.Description = description.String
	return &c, nil
}

// ListCategories returns all categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// CreateDietContent inserts a new diet article and returns it with the assigned ID.
func (s *SQLiteStore) CreateDietContent(ctx context.Context, d *DietContent) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `
		INSERT INTO diet_content (category_id, title, slug, content,
			meta_title, meta_description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		nullableInt64(d.CategoryID),
		d.Title,
		d.Slug,
		d.Content,
		d.MetaTitle,
		d.MetaDescription,
		d.IsActive,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("inserting diet content: %w", err)
	}

	d.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting diet content id: %w", err)
	}

	s.logger.Info("created diet content", "id", d.ID, "slug", d.Slug)
	return nil
}

// UpdateDietContent updates an existing diet article.
func (s *SQLiteStore) UpdateDietContent(ctx context.Context, d *DietContent) error {
	d.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE diet_content
		SET category_id = ?, title = ?, slug = ?, content = ?,
			meta_title = ?, meta_description = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		nullableInt64(d.CategoryID),
		d.Title,
		d.Slug,
		d.Content,
		d.MetaTitle,
		d.MetaDescription,
		d.IsActive,
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("updating diet content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteDietContent removes a diet article by ID.
func (s *SQLiteStore) DeleteDietContent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM diet_content WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting diet content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted diet content", "id", id)
	return nil
}

// GetDietContent retrieves a diet article by ID regardless of active state.
func (s *SQLiteStore) GetDietContent(ctx context.Context, id int64) (*DietContent, error) {
	query := dietSelect + ` WHERE id = ?`
	return scanDietContent(s.db.QueryRowContext(ctx, query, id))
}

// GetDietContentBySlug retrieves an active diet article within a category
// for the public site.
func (s *SQLiteStore) GetDietContentBySlug(ctx context.Context, categorySlug, slug string) (*DietContent, error) {
	query := `
		SELECT d.id, d.category_id, d.title, d.slug, d.content,
			d.meta_title, d.meta_description, d.is_active, d.created_at, d.updated_at
		FROM diet_content d
		JOIN categories c ON c.id = d.category_id
		WHERE c.slug = ? AND d.slug = ? AND d.is_active = 1
	`
	return scanDietContent(s.db.QueryRowContext(ctx, query, categorySlug, slug))
}

// DietSlugExists reports whether a slug is used by a diet article other than excludeID.
func (s *SQLiteStore) DietSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM diet_content WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking diet slug: %w", err)
	}
	return true, nil
}

// ListDietContent returns diet articles, newest first. When activeOnly is set
// only active articles are returned.
func (s *SQLiteStore) ListDietContent(ctx context.Context, activeOnly bool, limit int) ([]*DietContent, error) {
	query := dietSelect
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing diet content: %w", err)
	}
	defer rows.Close()

	var items []*DietContent
	for rows.Next() {
		d, err := scanDietContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}

	return items, rows.Err()
}

// CountDietContent returns the total number of diet articles.
func (s *SQLiteStore) CountDietContent(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diet_content`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting diet content: %w", err)
	}
	return count, nil
}

const dietSelect = `
	SELECT id, category_id, title, slug, content,
		meta_title, meta_description, is_active, created_at, updated_at
	FROM diet_content
`

func scanDietContent(row rowScanner) (*DietContent, error) {
	var d DietContent
	var categoryID sql.NullInt64
	var metaTitle, metaDesc sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID,
		&categoryID,
		&d.Title,
		&d.Slug,
		&d.Content,
		&metaTitle,
		&metaDesc,
		&d.IsActive,
		&createdAtStr,
		&updatedAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning diet content: %w", err)
	}

	if categoryID.Valid {
		d.CategoryID = &categoryID.Int64
	}
	d.MetaTitle = metaTitle.String
	d.MetaDescription = metaDesc.String

	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &d, nil
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
