package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	Identity Identity
	Log      zerolog.Logger
}

func NewHandler(identity Identity, log zerolog.Logger) *Handler {
	return &Handler{Identity: identity, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
}

// the login form carries the email in a field named username
type loginReq struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	email := strings.TrimSpace(req.Username)
	if email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password required"})
		return
	}

	details, err := h.Identity.SignInWithPassword(c.Request.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect user name or password"})
			return
		}
		h.Log.Error().Err(err).Msg("identity sign-in failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "identity provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": details})
}
