package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/pkg/models"
)

type stubStore struct {
	categories []models.Category
	movies     []models.Movie
	err        error

	gotCategory string
}

func (s *stubStore) Categories(context.Context) ([]models.Category, error) {
	return s.categories, s.err
}

func (s *stubStore) Movies(_ context.Context, category string) ([]models.Movie, error) {
	s.gotCategory = category
	return s.movies, s.err
}

func catalogRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, zerolog.Nop()).RegisterRoutes(r.Group("/"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListCategories(t *testing.T) {
	store := &stubStore{categories: []models.Category{
		{Title: "Animation", Filter: "animation"},
		{Title: "Short Films", Filter: "short"},
	}}
	w := get(catalogRouter(store), "/categories")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[
		{"title":"Animation","filter":"animation"},
		{"title":"Short Films","filter":"short"}
	]}`, w.Body.String())
}

func TestListCategoriesEmpty(t *testing.T) {
	w := get(catalogRouter(&stubStore{}), "/categories")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestListMovies(t *testing.T) {
	store := &stubStore{movies: []models.Movie{
		{ID: "m1", Title: "Big Buck Bunny", Categories: []string{"animation"}},
	}}
	w := get(catalogRouter(store), "/movies?category=%20animation%20")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "animation", store.gotCategory, "category filter should be trimmed")
	assert.Contains(t, w.Body.String(), `"Big Buck Bunny"`)
}

func TestListMoviesNoFilter(t *testing.T) {
	store := &stubStore{}
	w := get(catalogRouter(store), "/movies")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", store.gotCategory)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestCatalogStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("backend down")}
	for _, path := range []string{"/categories", "/movies"} {
		w := get(catalogRouter(store), path)
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
		assert.JSONEq(t, `{"message":"catalog unavailable"}`, w.Body.String(), path)
	}
}
