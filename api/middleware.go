package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zvrva/railbooking/internal/domain"
	"github.com/zvrva/railbooking/internal/service/auth"
)

const currentUserKey = "currentUser"

// RequestID tags every request with an X-Request-ID, generating one when
// the client did not send it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// Auth validates the bearer token and puts the resolved user into the
// context for handlers downstream.
func Auth(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, err := service.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AdminKey gates admin endpoints on the X-Admin-API-Key header.
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-API-Key") != apiKey {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin API key"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user placed into the context by Auth.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
