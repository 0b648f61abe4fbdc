package stats

import (
	"creatorhub/internal/domain/subscriptions"

	"gorm.io/gorm"
)

// MonthlyRevenue sums the live tier price over a creator's active
// subscriptions. The join is the single source of truth: subscriptions
// carry no price snapshot, and a subscription whose tier was deleted
// contributes nothing.
func MonthlyRevenue(db *gorm.DB, creatorID string) (int64, error) {
	var total int64
	err := db.Model(&subscriptions.Subscription{}).
		Select("COALESCE(SUM(tiers.monthly_price), 0)").
		Joins("JOIN tiers ON tiers.id = subscriptions.tier_id").
		Where("subscriptions.creator_id = ? AND subscriptions.status = ?", creatorID, subscriptions.StatusActive).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ActiveSubscriberCount counts a creator's active subscriptions.
func ActiveSubscriberCount(db *gorm.DB, creatorID string) (int64, error) {
	var count int64
	err := db.Model(&subscriptions.Subscription{}).
		Where("creator_id = ? AND status = ?", creatorID, subscriptions.StatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
