// ABOUTME: Blog post store methods with slug-keyed lookup and publish filtering
// ABOUTME: Tags are stored as a JSON-encoded array in a TEXT column

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CreateBlogPost inserts a new blog post and returns it with the assigned ID.
// The publish timestamp is stamped when the post is created published.
func (s *SQLiteStore) CreateBlogPost(ctx context.Context, post *BlogPost) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.IsPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		INSERT INTO blogs (title, slug, content, excerpt, category, tags,
			meta_title, meta_description, is_published, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Category,
		string(tagsJSON),
		post.MetaTitle,
		post.MetaDescription,
		post.IsPublished,
		nullableTime(post.PublishedAt),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("inserting blog post: %w", err)
	}

	post.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting blog post id: %w", err)
	}

	s.logger.Info("created blog post", "id", post.ID, "slug", post.Slug)
	return nil
}

// UpdateBlogPost updates an existing post. PublishedAt is stamped the first
// time the post transitions to published and kept on later edits.
func (s *SQLiteStore) UpdateBlogPost(ctx context.Context, post *BlogPost) error {
	current, err := s.GetBlogPost(ctx, post.ID)
	if err != nil {
		return err
	}

	post.PublishedAt = current.PublishedAt
	if post.IsPublished && current.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	post.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE blogs
		SET title = ?, slug = ?, content = ?, excerpt = ?, category = ?, tags = ?,
			meta_title = ?, meta_description = ?, is_published = ?, published_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Category,
		string(tagsJSON),
		post.MetaTitle,
		post.MetaDescription,
		post.IsPublished,
		nullableTime(post.PublishedAt),
		post.UpdatedAt.Format(time.RFC3339),
		post.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("updating blog post: %w", err)
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

// DeleteBlogPost removes a post by ID.
func (s *SQLiteStore) DeleteBlogPost(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted blog post", "id", id)
	return nil
}

// GetBlogPost retrieves a post by ID regardless of publish state.
func (s *SQLiteStore) GetBlogPost(ctx context.Context, id int64) (*BlogPost, error) {
	query := blogSelect + ` WHERE id = ?`
	return scanBlogPost(s.db.QueryRowContext(ctx, query, id))
}

// GetBlogPostBySlug retrieves a published post by slug for the public site.
func (s *SQLiteStore) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	query := blogSelect + ` WHERE slug = ? AND is_published = 1`
	return scanBlogPost(s.db.QueryRowContext(ctx, query, slug))
}

// SlugExists reports whether a slug is used by a blog post other than excludeID.
// Pass excludeID = 0 for creation checks.
func (s *SQLiteStore) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM blogs WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking blog slug: %w", err)
	}
	return true, nil
}

// ListBlogPosts returns posts, newest first. When publishedOnly is set only
// published posts are returned, ordered by publish date.
func (s *SQLiteStore) ListBlogPosts(ctx context.Context, publishedOnly bool, limit int) ([]*BlogPost, error) {
	query := blogSelect
	if publishedOnly {
		query += ` WHERE is_published = 1 ORDER BY published_at DESC`
	} else {
		query += ` ORDER BY created_at DESC`
	}
	query += ` LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	defer rows.Close()

	var posts []*BlogPost
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// CountBlogPosts returns the total number of blog posts.
func (s *SQLiteStore) CountBlogPosts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting blog posts: %w", err)
	}
	return count, nil
}

const blogSelect = `
	SELECT id, title, slug, content, excerpt, category, tags,
		meta_title, meta_description, is_published, published_at, created_at, updated_at
	FROM blogs
`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlogPost(row rowScanner) (*BlogPost, error) {
	var post BlogPost
	var excerpt, category, tagsJSON, metaTitle, metaDesc sql.NullString
	var publishedAt sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&excerpt,
		&category,
		&tagsJSON,
		&metaTitle,
		&metaDesc,
		&post.IsPublished,
		&publishedAt,
		&createdAtStr,
		&updatedAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning blog post: %w", err)
	}

	post.Excerpt = excerpt.String
	post.Category = category.String
	post.MetaTitle = metaTitle.String
	post.MetaDescription = metaDesc.String

	if tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &post.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if publishedAt.Valid {
		t, err := time.Parse(time.RFC3339, publishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing published_at: %w", err)
		}
		post.PublishedAt = &t
	}

	if post.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if post.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &post, nil
}

// nullableTime formats t as RFC3339 or returns nil for a SQL NULL
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
