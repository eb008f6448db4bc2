package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/auth"
)

const (
	// ContextUserID is the Gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// ContextUserEmail is the Gin context key holding the authenticated email.
	ContextUserEmail = "userEmail"
)

// Auth verifies the Bearer session credential and stores the subject in the
// request context. Requests without a valid credential are rejected.
func Auth(sessions *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := sessions.Parse(parts[1])
		if err != nil {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
