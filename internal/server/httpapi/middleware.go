package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"letterpal/internal/common"
	"letterpal/internal/server/auth"
)

const userIDKey = "userID"

// authRequired extracts and verifies the bearer token, storing the user ID in
// the request context. Missing or invalid tokens abort with 401.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token := strings.TrimPrefix(header, common.BearerPrefix)
		if token == "" || token == header {
			abortUnauthorized(c)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authentication credentials"})
}

// currentUserID returns the user ID placed by authRequired.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// requestLogger logs one line per request through the shared Logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
