// ABOUTME: Tests for workout, category and diet content store methods
// ABOUTME: Covers active-state filtering and category-scoped slug lookup

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkout(slug string, active bool) *Workout {
	return &Workout{
		Title:       "Full Body Burner",
		Slug:        slug,
		Description: "A quick full body session",
		Content:     "## Warmup\n\n5 minutes of jumping jacks.",
		Duration:    30,
		Difficulty:  "beginner",
		WorkoutType: "strength",
		IsActive:    active,
	}
}

func TestStore_WorkoutCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	w := newTestWorkout("full-body-burner", true)
	require.NoError(t, store.CreateWorkout(ctx, w))
	assert.NotZero(t, w.ID)

	retrieved, err := store.GetWorkoutBySlug(ctx, "full-body-burner")
	require.NoError(t, err)
	assert.Equal(t, 30, retrieved.Duration)
	assert.Equal(t, "strength", retrieved.WorkoutType)

	retrieved.Difficulty = "intermediate"
	require.NoError(t, store.UpdateWorkout(ctx, retrieved))

	updated, err := store.GetWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "intermediate", updated.Difficulty)

	require.NoError(t, store.DeleteWorkout(ctx, w.ID))
	_, err = store.GetWorkout(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_WorkoutBySlug_ActiveOnly(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateWorkout(ctx, newTestWorkout("hidden", false)))

	_, err := store.GetWorkoutBySlug(ctx, "hidden")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.ListWorkouts(ctx, false, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	active, err := store.ListWorkouts(ctx, true, 10)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStore_WorkoutDuplicateSlug(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateWorkout(ctx, newTestWorkout("dup", true)))
	assert.ErrorIs(t, store.CreateWorkout(ctx, newTestWorkout("dup", true)), ErrDuplicateSlug)

	exists, err := store.WorkoutSlugExists(ctx, "dup", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_Categories(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c := &Category{Name: "Weight Loss", Slug: "weight-loss", Description: "Diet plans for losing weight"}
	require.NoError(t, store.CreateCategory(ctx, c))
	assert.NotZero(t, c.ID)

	assert.ErrorIs(t, store.CreateCategory(ctx, &Category{Name: "Weight Loss", Slug: "weight-loss-2"}), ErrDuplicateCategory)

	retrieved, err := store.GetCategoryBySlug(ctx, "weight-loss")
	require.NoError(t, err)
	assert.Equal(t, "Weight Loss", retrieved.Name)

	list, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_DietContent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c := &Category{Name: "Muscle Gain", Slug: "muscle-gain"}
	require.NoError(t, store.CreateCategory(ctx, c))

	d := &DietContent{
		CategoryID: &c.ID,
		Title:      "High Protein Plan",
		Slug:       "high-protein-plan",
		Content:    "Eat more protein.",
		IsActive:   true,
	}
	require.NoError(t, store.CreateDietContent(ctx, d))
	assert.NotZero(t, d.ID)

	// Lookup is scoped to the category slug
	retrieved, err := store.GetDietContentBySlug(ctx, "muscle-gain", "high-protein-plan")
	require.NoError(t, err)
	assert.Equal(t, d.ID, retrieved.ID)

	_, err = store.GetDietContentBySlug(ctx, "wrong-category", "high-protein-plan")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deactivated content disappears from public lookup
	retrieved.IsActive = false
	require.NoError(t, store.UpdateDietContent(ctx, retrieved))
	_, err = store.GetDietContentBySlug(ctx, "muscle-gain", "high-protein-plan")
	assert.ErrorIs(t, err, ErrNotFound)

	// But remains reachable by ID for the admin
	byID, err := store.GetDietContent(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, byID.IsActive)

	require.NoError(t, store.DeleteDietContent(ctx, d.ID))
	assert.ErrorIs(t, store.DeleteDietContent(ctx, d.ID), ErrNotFound)
}
