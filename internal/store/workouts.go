// ABOUTME: Workout store methods backing the fitness pages and admin CRUD
// ABOUTME: Public lookups only return active workouts

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateWorkout inserts a new workout and returns it with the assigned ID.
func (s *SQLiteStore) CreateWorkout(ctx context.Context, w *Workout) error {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	query := `
		INSERT INTO workouts (title, slug, description, content, duration,
			difficulty, workout_type, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		w.Title,
		w.Slug,
		w.Description,
		w.Content,
		w.Duration,
		w.Difficulty,
		w.WorkoutType,
		w.IsActive,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("inserting workout: %w", err)
	}

	w.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting workout id: %w", err)
	}

	s.logger.Info("created workout", "id", w.ID, "slug", w.Slug)
	return nil
}

// UpdateWorkout updates an existing workout.
func (s *SQLiteStore) UpdateWorkout(ctx context.Context, w *Workout) error {
	w.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE workouts
		SET title = ?, slug = ?, description = ?, content = ?, duration = ?,
			difficulty = ?, workout_type = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		w.Title,
		w.Slug,
		w.Description,
		w.Content,
		w.Duration,
		w.Difficulty,
		w.WorkoutType,
		w.IsActive,
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("updating workout: %w", err)
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

// DeleteWorkout removes a workout by ID.
func (s *SQLiteStore) DeleteWorkout(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted workout", "id", id)
	return nil
}

// GetWorkout retrieves a workout by ID regardless of active state.
func (s *SQLiteStore) GetWorkout(ctx context.Context, id int64) (*Workout, error) {
	query := workoutSelect + ` WHERE id = ?`
	return scanWorkout(s.db.QueryRowContext(ctx, query, id))
}

// GetWorkoutBySlug retrieves an active workout by slug for the public site.
func (s *SQLiteStore) GetWorkoutBySlug(ctx context.Context, slug string) (*Workout, error) {
	query := workoutSelect + ` WHERE slug = ? AND is_active = 1`
	return scanWorkout(s.db.QueryRowContext(ctx, query, slug))
}

// WorkoutSlugExists reports whether a slug is used by a workout other than excludeID.
func (s *SQLiteStore) WorkoutSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM workouts WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking workout slug: %w", err)
	}
	return true, nil
}

// ListWorkouts returns workouts, newest first. When activeOnly is set only
// active workouts are returned.
func (s *SQLiteStore) ListWorkouts(ctx context.Context, activeOnly bool, limit int) ([]*Workout, error) {
	query := workoutSelect
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

// CountWorkouts returns the total number of workouts.
func (s *SQLiteStore) CountWorkouts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting workouts: %w", err)
	}
	return count, nil
}

const workoutSelect = `
	SELECT id, title, slug, description, content, duration,
		difficulty, workout_type, is_active, created_at, updated_at
	FROM workouts
`

func scanWorkout(row rowScanner) (*Workout, error) {
	var w Workout
	var description sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Slug,
		&description,
		&w.Content,
		&w.Duration,
		&w.Difficulty,
		&w.WorkoutType,
		&w.IsActive,
		&createdAtStr,
		&updatedAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning workout: %w", err)
	}

	w.Description = description.String

	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &w, nil
}
