package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const ctxClaimsKey = "auth_claims"

// sessionCookie is the fallback credential location for clients that
// cannot set an Authorization header.
const sessionCookie = "__session"

// Middleware guards a route group. The credential comes from an
// `Authorization: Bearer <token>` header or a `__session` cookie; with
// neither present it rejects immediately without calling the verifier.
func Middleware(v Verifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Msg("no bearer token in Authorization header and no __session cookie")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims, err := v.Verify(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(ctxClaimsKey, claims)
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}
