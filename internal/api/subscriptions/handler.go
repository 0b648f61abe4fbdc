package subscriptionsapi

import (
	"errors"
	"net/http"
	"time"

	"creatorhub/database"
	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/subscriptions"
	"creatorhub/internal/domain/tiers"
	"creatorhub/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// POST /subscriptions
//
// Subscribing is the simulated payment event: there is no checkout
// round-trip, the ledger entry itself activates access.
func Subscribe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		CreatorID string `json:"creator_id" binding:"required"`
		TierID    string `json:"tier_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := uuid.Parse(input.CreatorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid creator ID"})
		return
	}
	if _, err := uuid.Parse(input.TierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	sub, err := subscriptions.Subscribe(database.DB, userID, input.CreatorID, input.TierID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		case errors.Is(err, domainerrors.ErrTierCreatorMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tier does not belong to this creator"})
		case errors.Is(err, domainerrors.ErrDuplicateActiveSubscription):
			c.JSON(http.StatusConflict, gin.H{
				"error": "You already have an active subscription to this creator. Upgrade it instead.",
			})
		default:
			logging.WithUser(userID).Errorf("subscribe failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// POST /subscriptions/:id/upgrade
func Upgrade(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subscriptionID := c.Param("id")
	if _, err := uuid.Parse(subscriptionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var input struct {
		TierID string `json:"tier_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := uuid.Parse(input.TierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	if !ownsSubscription(c, subscriptionID, userID) {
		return
	}

	sub, err := subscriptions.Upgrade(database.DB, subscriptionID, input.TierID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription or tier not found"})
		case errors.Is(err, domainerrors.ErrNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Only an active subscription can be upgraded"})
		case errors.Is(err, domainerrors.ErrTierCreatorMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "New tier belongs to a different creator"})
		default:
			logging.WithUser(userID).Errorf("upgrade failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, sub)
}

// DELETE /subscriptions/:id
func Cancel(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subscriptionID := c.Param("id")
	if _, err := uuid.Parse(subscriptionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	if !ownsSubscription(c, subscriptionID, userID) {
		return
	}

	if err := subscriptions.Cancel(database.DB, subscriptionID, time.Now()); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		case errors.Is(err, domainerrors.ErrNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is not active"})
		default:
			logging.WithUser(userID).Errorf("cancel failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
}

// GET /subscriptions -> the caller's subscription history, all statuses
func ListMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	// Dashboard-load sweep: flip anything overdue before listing.
	if _, err := subscriptions.ExpireDue(database.DB, time.Now()); err != nil {
		logging.Warnf("expire sweep failed: %v", err)
	}

	list, err := subscriptions.ListForMember(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	c.JSON(http.StatusOK, withTierInfo(list))
}

// withTierInfo resolves each subscription's tier for dashboard display.
// A deleted tier leaves the entry without one.
func withTierInfo(list []subscriptions.Subscription) []gin.H {
	tierIDs := make([]string, 0, len(list))
	for _, sub := range list {
		tierIDs = append(tierIDs, sub.TierID)
	}

	byID := map[string]tiers.Tier{}
	if len(tierIDs) > 0 {
		var tierRows []tiers.Tier
		if err := database.DB.Where("id IN ?", tierIDs).Find(&tierRows).Error; err != nil {
			logging.Warnf("tier lookup for subscription list failed: %v", err)
		}
		for _, tier := range tierRows {
			byID[tier.ID] = tier
		}
	}

	out := make([]gin.H, 0, len(list))
	for _, sub := range list {
		entry := gin.H{"subscription": sub}
		if tier, ok := byID[sub.TierID]; ok {
			entry["tier"] = gin.H{
				"id":            tier.ID,
				"name":          tier.Name,
				"monthly_price": tier.MonthlyPrice,
				"rank":          tier.Rank,
			}
		}
		out = append(out, entry)
	}
	return out
}

// POST /subscriptions/expire-due
func ExpireDue(c *gin.Context) {
	count, err := subscriptions.ExpireDue(database.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expire subscriptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}

func ownsSubscription(c *gin.Context, subscriptionID, userID string) bool {
	var sub subscriptions.Subscription
	if err := database.DB.First(&sub, "id = ?", subscriptionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return false
	}
	if sub.MemberID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the holder of this subscription"})
		return false
	}
	return true
}
