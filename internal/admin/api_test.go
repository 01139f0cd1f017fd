// ABOUTME: Tests for the content management API
// ABOUTME: Covers CRUD, slug handling, validation and role-gated deletes

package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vigorlabs/vigor-site/internal/store"
)

func TestBlogAPI_CreateGeneratesSlug(t *testing.T) {
	mux, st := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token,
		`{"title":"10 Tips for Better Sleep!","content":"Sleep matters."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var post store.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.Equal(t, "10-tips-for-better-sleep", post.Slug)

	stored, err := st.GetBlogPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Equal(t, "10 Tips for Better Sleep!", stored.Title)
}

func TestBlogAPI_DuplicateSlug(t *testing.T) {
	mux, _ := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token,
		`{"title":"Hydration Basics","content":"Drink water."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token,
		`{"title":"Hydration Basics","content":"Second attempt."}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "already exists")
}

func TestBlogAPI_ValidationAndUnknownID(t *testing.T) {
	mux, _ := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token, `{"title":"","content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, mux, http.MethodPut, "/api/admin/blogs/99999", token,
		`{"title":"Ghost","content":"Not there."}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, mux, http.MethodPut, "/api/admin/blogs/abc", token,
		`{"title":"Ghost","content":"Not there."}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlogAPI_UpdateKeepsDistinctSlugs(t *testing.T) {
	mux, _ := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token,
		`{"title":"First Post","content":"one"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, mux, http.MethodPost, "/api/admin/blogs", token,
		`{"title":"Second Post","content":"two"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var second store.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	// Renaming the second post onto the first post's slug is rejected
	w = doJSON(t, mux, http.MethodPut, "/api/admin/blogs/2", token,
		`{"title":"First Post","content":"two"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Updating it under its own slug is fine
	w = doJSON(t, mux, http.MethodPut, "/api/admin/blogs/2", token,
		`{"title":"Second Post","content":"two, revised"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBlogAPI_DeleteRequiresSuperAdmin(t *testing.T) {
	mux, _ := setupAdmin(t)
	managerToken := login(t, mux, testManagerEmail, testPassword)
	superToken := login(t, mux, testSuperEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", managerToken,
		`{"title":"Doomed Post","content":"bye"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var post store.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	// Content managers create but cannot delete
	w = doJSON(t, mux, http.MethodDelete, "/api/admin/blogs/1", managerToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, mux, http.MethodDelete, "/api/admin/blogs/1", superToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodDelete, "/api/admin/blogs/1", superToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_RequiresToken(t *testing.T) {
	mux, _ := setupAdmin(t)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/blogs", "",
		`{"title":"Anonymous","content":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/api/admin/media", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkoutAPI_RoundTrip(t *testing.T) {
	mux, _ := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/workouts", token,
		`{"title":"Core Crusher","description":"Abs.","content":"Planks.","duration":20,"difficulty":"beginner","workoutType":"core","isActive":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var workout store.Workout
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workout))
	require.Equal(t, "core-crusher", workout.Slug)

	w = doJSON(t, mux, http.MethodPut, "/api/admin/workouts/1", token,
		`{"title":"Core Crusher","description":"Abs and more.","content":"Planks.","duration":25,"difficulty":"beginner","workoutType":"core","isActive":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/api/admin/workouts", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Abs and more.")
}

func TestCategoryAndDietAPI(t *testing.T) {
	mux, _ := setupAdmin(t)
	token := login(t, mux, testManagerEmail, testPassword)

	w := doJSON(t, mux, http.MethodPost, "/api/admin/categories", token,
		`{"name":"Muscle Gain","description":"Eating to build."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var category store.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	require.Equal(t, "muscle-gain", category.Slug)

	// Duplicate category name rejected
	w = doJSON(t, mux, http.MethodPost, "/api/admin/categories", token,
		`{"name":"Muscle Gain"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, mux, http.MethodPost, "/api/admin/diet", token,
		`{"categoryId":1,"title":"Protein Timing","content":"Spread it out.","isActive":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/api/admin/diet", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "protein-timing")
}

func TestMediaAPI_ListAndDelete(t *testing.T) {
	mux, st := setupAdmin(t)
	superToken := login(t, mux, testSuperEmail, testPassword)

	require.NoError(t, st.CreateMedia(context.Background(), &store.Media{
		Filename: "hero.jpg", URL: "/uploads/hero.jpg", MimeType: "image/jpeg", SizeBytes: 12345,
	}))

	w := doJSON(t, mux, http.MethodGet, "/api/admin/media", superToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hero.jpg")

	w = doJSON(t, mux, http.MethodDelete, "/api/admin/media/1", superToken, "")
	require.Equal(t, http.StatusOK, w.Code)
}
