// ABOUTME: Media asset store methods for the admin media library
// ABOUTME: Stores metadata only; files live behind the URL column

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateMedia inserts a media record and returns it with the assigned ID.
func (s *SQLiteStore) CreateMedia(ctx context.Context, m *Media) error {
	m.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO media (filename, url, mime_type, size_bytes, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.Filename, m.URL, m.MimeType, m.SizeBytes, m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting media: %w", err)
	}

	m.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting media id: %w", err)
	}

	return nil
}

// ListMedia returns media records, newest first.
func (s *SQLiteStore) ListMedia(ctx context.Context, limit int) ([]*Media, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, url, mime_type, size_bytes, created_at
		 FROM media ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	defer rows.Close()

	var items []*Media
	for rows.Next() {
		var m Media
		var mimeType sql.NullString
		var createdAtStr string
		if err := rows.Scan(&m.ID, &m.Filename, &m.URL, &mimeType, &m.SizeBytes, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		m.MimeType = mimeType.String
		if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		items = append(items, &m)
	}

	return items, rows.Err()
}

// DeleteMedia removes a media record by ID.
func (s *SQLiteStore) DeleteMedia(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
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
