package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/chat-auth-service/internal/reqctx"
	"github.com/ErlanBelekov/chat-auth-service/internal/token"
)

const errUnauthorized = "Unauthorized"

// tokenValidator is the slice of token.Service the guard needs.
type tokenValidator interface {
	Validate(raw string) (*token.Claims, error)
}

// Auth validates a Bearer token and sets "userID" and "userEmail" in the
// gin context. The scheme word is matched case-insensitively. Missing
// header, malformed header, and invalid or expired tokens all collapse to
// the same 401 so token-validation internals never leak to the caller.
func Auth(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// bearerToken splits an Authorization header of the form "Bearer <token>".
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
