// README: Firebase ID-token middleware; optional unless the server requires sign-in.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nusavarta/internal/infra"
)

const callerUIDKey = "callerUID"

// Auth verifies "Authorization: Bearer <token>" and stores the caller's UID.
// A request without the header passes through unless required is set; a
// header that is present but invalid is always rejected.
func Auth(verifier infra.TokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
				return
			}
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		c.Next()
	}
}

// CallerUID returns the verified UID, or "" for anonymous requests.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}
