package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moviehub/pkg/models"
)

// Store is the slice of the document store the catalog reads from.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Movies(ctx context.Context, category string) ([]models.Movie, error)
}

type Handler struct {
	Store Store
	Log   zerolog.Logger
}

func NewHandler(store Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.listCategories)
	rg.GET("/movies", h.listMovies)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.Store.Categories(c.Request.Context())
	if err != nil {
		h.storeError(c, "list categories", err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

func (h *Handler) listMovies(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	movies, err := h.Store.Movies(c.Request.Context(), category)
	if err != nil {
		h.storeError(c, "list movies", err)
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	c.JSON(http.StatusOK, gin.H{"data": movies})
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	h.Log.Error().Err(err).Str("op", op).Msg("catalog read failed")
	c.JSON(http.StatusBadGateway, gin.H{"message": "catalog unavailable"})
}
