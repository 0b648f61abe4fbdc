package creatorsapi

import (
	"net/http"
	"time"

	"creatorhub/database"
	"creatorhub/internal/domain/posts"
	"creatorhub/internal/domain/stats"
	"creatorhub/internal/domain/subscriptions"
	"creatorhub/internal/domain/tiers"
	"creatorhub/internal/domain/users"
	"creatorhub/internal/infra/cache"
	"creatorhub/internal/logging"

	"github.com/gin-gonic/gin"
)

// GET /creators/:handle -> public profile
func GetCreatorByHandle(c *gin.Context) {
	handle := c.Param("handle")

	var user users.User
	err := database.DB.
		Where("handle = ? AND is_creator = ?", handle, true).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"handle":       user.Handle,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
	})
}

// GET /creators/:handle/tiers -> public tier listing, ascending rank.
// Served from the Redis cache when warm; tier mutations invalidate it.
func ListCreatorTiers(c *gin.Context) {
	creatorID, ok := resolveCreator(c)
	if !ok {
		return
	}

	if cached, ok := cache.Tiers.Get(c.Request.Context(), creatorID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	list, err := tiers.ListTiers(database.DB, creatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}

	cache.Tiers.Set(c.Request.Context(), creatorID, list)
	c.JSON(http.StatusOK, list)
}

// GET /creators/:handle/posts -> public posts only
func ListCreatorPublicPosts(c *gin.Context) {
	creatorID, ok := resolveCreator(c)
	if !ok {
		return
	}

	var list []posts.Post
	err := publicPostsQuery(database.DB, creatorID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// resolveCreator maps the :handle path segment to the creator's id.
func resolveCreator(c *gin.Context) (string, bool) {
	handle := c.Param("handle")

	var user users.User
	err := database.DB.
		Select("id").
		Where("handle = ? AND is_creator = ?", handle, true).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return "", false
	}
	return user.ID, true
}

// GET /dashboard/stats
//
// Runs the expiry sweep first so the numbers do not count overdue
// subscriptions, then derives both metrics on demand.
func GetMyStats(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if _, err := subscriptions.ExpireDue(database.DB, time.Now()); err != nil {
		logging.Warnf("expire sweep failed: %v", err)
	}

	revenue, err := stats.MonthlyRevenue(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
		return
	}
	count, err := stats.ActiveSubscriberCount(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly_revenue":         revenue,
		"active_subscriber_count": count,
	})
}

// GET /dashboard/subscribers?status=active
func ListMySubscribers(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var statusFilter *subscriptions.Status
	if raw := c.Query("status"); raw != "" {
		switch subscriptions.Status(raw) {
		case subscriptions.StatusActive, subscriptions.StatusCanceled,
			subscriptions.StatusExpired, subscriptions.StatusUpgraded:
			status := subscriptions.Status(raw)
			statusFilter = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
	}

	list, err := subscriptions.ListForCreator(database.DB, userID, statusFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscribers"})
		return
	}
	c.JSON(http.StatusOK, list)
}
