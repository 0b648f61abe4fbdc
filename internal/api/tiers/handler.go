package tiersapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"creatorhub/database"
	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/tiers"
	"creatorhub/internal/infra/cache"

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

// GET /tiers -> the calling creator's tiers, ascending rank
func ListMyTiers(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	list, err := tiers.ListTiers(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tiers"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /tiers
func CreateTier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var spec tiers.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier, err := tiers.CreateTier(database.DB, userID, spec)
	if err != nil {
		if domainerrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tier"})
		return
	}

	cache.Tiers.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, tier)
}

// PUT /tiers/:id
func UpdateTier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tierID := c.Param("id")
	if _, err := uuid.Parse(tierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	var tier tiers.Tier
	if err := database.DB.First(&tier, "id = ?", tierID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		return
	}
	if tier.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning creator can edit a tier"})
		return
	}

	var spec tiers.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if spec.Name == "" || spec.MonthlyPrice <= 0 || spec.Rank <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, monthly_price and rank are required and must be positive"})
		return
	}

	benefits := spec.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	raw, _ := json.Marshal(benefits)

	err := database.DB.Model(&tiers.Tier{}).
		Where("id = ?", tierID).
		Updates(map[string]interface{}{
			"name":          spec.Name,
			"monthly_price": spec.MonthlyPrice,
			"rank":          spec.Rank,
			"description":   spec.Description,
			"benefits":      raw,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tier"})
		return
	}

	cache.Tiers.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "Tier updated"})
}

// DELETE /tiers/:id
//
// Deleting a tier does not touch subscriptions that reference it; they
// keep running and resolve to rank 0 from then on.
func DeleteTier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tierID := c.Param("id")
	if _, err := uuid.Parse(tierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	var tier tiers.Tier
	if err := database.DB.First(&tier, "id = ?", tierID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
		return
	}
	if tier.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning creator can delete a tier"})
		return
	}

	if err := database.DB.Delete(&tiers.Tier{}, "id = ?", tierID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tier"})
		return
	}

	cache.Tiers.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"message": "Tier deleted"})
}

// GetTierRank is exposed for callers that only need the ordering proxy.
// GET /tiers/:id/rank
func GetTierRank(c *gin.Context) {
	tierID := c.Param("id")
	if _, err := uuid.Parse(tierID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tier ID"})
		return
	}

	rank, err := tiers.GetTierRank(database.DB, tierID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tier rank"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank})
}
