package watchlist

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"moviehub/internal/auth"
	"moviehub/internal/store"
	synchub "moviehub/internal/sync"
	"moviehub/pkg/models"
)

// Store is the slice of the document store the watchlist needs.
type Store interface {
	WatchlistEntries(ctx context.Context, uid string) ([]models.WatchlistEntry, error)
	MoviesByID(ctx context.Context, ids []string) ([]models.Movie, error)
	AddWatchlistEntry(ctx context.Context, uid string, entry models.WatchlistEntry) (string, error)
	UpdateBookmark(ctx context.Context, uid, entryID string, bookmark int) error
	DeleteWatchlistEntry(ctx context.Context, uid, entryID string) error
}

type Handler struct {
	Store Store
	Hub   *synchub.Hub
	Log   zerolog.Logger
}

func NewHandler(store Store, hub *synchub.Hub, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Hub: hub, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watchlist", h.list)
	rg.POST("/watchlist", h.add)
	rg.PATCH("/watchlist", h.update)
	rg.DELETE("/watchlist/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	entries, err := h.Store.WatchlistEntries(c.Request.Context(), claims.UID)
	if err != nil {
		h.storeError(c, "list watchlist", err)
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": []models.WatchlistItem{}})
		return
	}

	movies, err := h.Store.MoviesByID(c.Request.Context(), movieIDs(entries))
	if err != nil {
		h.storeError(c, "resolve watchlist movies", err)
		return
	}

	items, missing := joinMovies(entries, movies)
	for _, e := range missing {
		h.Log.Warn().
			Str("user_id", claims.UID).
			Str("entry_id", e.ID).
			Str("movie_id", e.MovieID).
			Msg("watchlist entry references a missing movie; dropped from response")
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// mutateReq is shared by add and update. On update, movie_id carries
// the id of the entry to change, not a catalog reference.
type mutateReq struct {
	Bookmark int    `json:"bookmark" binding:"required"`
	MovieID  string `json:"movie_id"`
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req mutateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": bindMessage(err)})
		return
	}
	movieID := strings.TrimSpace(req.MovieID)
	if movieID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "movie_id is required"})
		return
	}

	entryID, err := h.Store.AddWatchlistEntry(c.Request.Context(), claims.UID, models.WatchlistEntry{
		Bookmark: req.Bookmark,
		MovieID:  movieID,
	})
	if err != nil {
		h.storeError(c, "add watchlist entry", err)
		return
	}

	h.broadcast(synchub.WatchlistEvent{
		Type:     "watchlist.add",
		UserID:   claims.UID,
		EntryID:  entryID,
		MovieID:  movieID,
		Bookmark: req.Bookmark,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Watchlist item added"})
}

func (h *Handler) update(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req mutateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": bindMessage(err)})
		return
	}
	entryID := strings.TrimSpace(req.MovieID)
	if entryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "movie_id is required"})
		return
	}

	err := h.Store.UpdateBookmark(c.Request.Context(), claims.UID, entryID, req.Bookmark)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Watchlist item not found"})
			return
		}
		h.storeError(c, "update watchlist entry", err)
		return
	}

	h.broadcast(synchub.WatchlistEvent{
		Type:     "watchlist.update",
		UserID:   claims.UID,
		EntryID:  entryID,
		Bookmark: req.Bookmark,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Watchlist item updated"})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	entryID := strings.TrimSpace(c.Param("id"))
	if entryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id is required"})
		return
	}

	if err := h.Store.DeleteWatchlistEntry(c.Request.Context(), claims.UID, entryID); err != nil {
		h.storeError(c, "delete watchlist entry", err)
		return
	}

	h.broadcast(synchub.WatchlistEvent{
		Type:    "watchlist.delete",
		UserID:  claims.UID,
		EntryID: entryID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Watchlist item deleted"})
}

func (h *Handler) broadcast(ev synchub.WatchlistEvent) {
	if h.Hub == nil {
		return
	}
	ev.At = time.Now().UTC()
	go h.Hub.Broadcast(ev.UserID, ev)
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	h.Log.Error().Err(err).Str("op", op).Msg("watchlist store call failed")
	c.JSON(http.StatusBadGateway, gin.H{"message": "store unavailable"})
}

// bindMessage turns a binding failure into the field-specific message
// the API contract promises.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return strings.ToLower(verrs[0].Field()) + " is required"
	}
	return "invalid request body"
}
