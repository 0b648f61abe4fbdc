package middleware

import (
	"net/http"

	"creatorhub/database"
	"creatorhub/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireCapability reloads the user and checks the capability against
// the database rather than trusting token claims, so a revoked
// capability takes effect on the next request.
func RequireCapability(cap users.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if !user.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action requires the " + string(cap) + " capability",
			})
			return
		}

		c.Next()
	}
}
