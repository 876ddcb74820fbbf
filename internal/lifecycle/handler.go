package lifecycle

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviehub/pkg/models"
)

// secretHeader carries the shared secret the event sender was
// configured with.
const secretHeader = "X-Hook-Secret"

// Handler exposes the lifecycle hooks as webhook endpoints. The
// identity provider (or whatever forwards its events) POSTs the
// affected user here. Responses never reflect hook outcome: the
// events are fire-and-forget and must not be retried.
type Handler struct {
	Hooks  *Hooks
	Secret string
}

func NewHandler(hooks *Hooks, secret string) *Handler {
	return &Handler{Hooks: hooks, Secret: secret}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user-created", h.userCreated)
	rg.POST("/user-deleted", h.userDeleted)
}

func (h *Handler) userCreated(c *gin.Context) {
	user, ok := h.acceptEvent(c)
	if !ok {
		return
	}
	h.Hooks.OnUserCreated(c.Request.Context(), user)
	c.Status(http.StatusNoContent)
}

func (h *Handler) userDeleted(c *gin.Context) {
	user, ok := h.acceptEvent(c)
	if !ok {
		return
	}
	h.Hooks.OnUserDeleted(c.Request.Context(), user)
	c.Status(http.StatusNoContent)
}

func (h *Handler) acceptEvent(c *gin.Context) (models.AuthUser, bool) {
	// an unset secret disables the endpoints outright
	given := c.GetHeader(secretHeader)
	if h.Secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.Secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return models.AuthUser{}, false
	}

	var user models.AuthUser
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return models.AuthUser{}, false
	}
	user.UID = strings.TrimSpace(user.UID)
	if user.UID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "uid is required"})
		return models.AuthUser{}, false
	}
	return user, true
}
