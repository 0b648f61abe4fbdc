package access

import (
	"errors"
	"time"

	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/posts"
	"creatorhub/internal/domain/subscriptions"
	"creatorhub/internal/domain/tiers"
	"creatorhub/internal/logging"

	"gorm.io/gorm"
)

// CheckPostAccess loads the post and decides whether the viewer may see
// it. viewerID empty means anonymous.
func CheckPostAccess(db *gorm.DB, viewerID, postID string) (Verdict, error) {
	var post posts.Post
	if err := db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Verdict{}, domainerrors.ErrNotFound
		}
		return Verdict{}, err
	}
	return CheckAccess(db, viewerID, post)
}

// CheckAccess decides access to an already-loaded post.
func CheckAccess(db *gorm.DB, viewerID string, post posts.Post) (Verdict, error) {
	res := Resource{
		CreatorID:   post.CreatorID,
		Visibility:  post.Visibility,
		MinTierRank: post.MinTierRank,
	}

	// Public, owner and anonymous verdicts need no subscription data.
	if res.Visibility == posts.VisibilityPublic || viewerID == "" || viewerID == res.CreatorID {
		return Decide(viewerID, res, nil), nil
	}

	ranked, err := activeRankedSubscriptions(db, viewerID, post.CreatorID)
	if err != nil {
		return Verdict{}, err
	}
	return Decide(viewerID, res, ranked), nil
}

// CheckFileAccess delegates to the owning post's access rule. On allow
// it appends an audit record; the audit write is best-effort and never
// changes the verdict.
func CheckFileAccess(db *gorm.DB, viewerID, fileID string) (Verdict, *posts.FileAsset, error) {
	var file posts.FileAsset
	if err := db.First(&file, "id = ?", fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Verdict{}, nil, domainerrors.ErrNotFound
		}
		return Verdict{}, nil, err
	}

	verdict, err := CheckPostAccess(db, viewerID, file.PostID)
	if err != nil {
		return Verdict{}, nil, err
	}

	if verdict.Allowed {
		logFileAccess(db, viewerID, file.ID, file.PostID)
	}
	return verdict, &file, nil
}

func logFileAccess(db *gorm.DB, viewerID, fileID, postID string) {
	record := posts.FileAccessLog{
		FileID:     fileID,
		PostID:     postID,
		AccessedAt: time.Now(),
	}
	if viewerID != "" {
		record.ViewerID = &viewerID
	}
	if err := db.Create(&record).Error; err != nil {
		logging.Warnf("file access log write failed for file %s: %v", fileID, err)
	}
}

// activeRankedSubscriptions loads the viewer's active subscriptions to
// the creator and resolves each tier rank. Missing tiers resolve to
// rank 0 rather than failing the check.
func activeRankedSubscriptions(db *gorm.DB, viewerID, creatorID string) ([]RankedSubscription, error) {
	var subs []subscriptions.Subscription
	err := db.Where("member_id = ? AND creator_id = ? AND status = ?",
		viewerID, creatorID, subscriptions.StatusActive).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	tierIDs := make([]string, 0, len(subs))
	for _, sub := range subs {
		tierIDs = append(tierIDs, sub.TierID)
	}

	var tierRows []tiers.Tier
	if err := db.Where("id IN ?", tierIDs).Find(&tierRows).Error; err != nil {
		return nil, err
	}
	rankByTier := make(map[string]int, len(tierRows))
	for _, tier := range tierRows {
		rankByTier[tier.ID] = tier.Rank
	}

	ranked := make([]RankedSubscription, 0, len(subs))
	for _, sub := range subs {
		ranked = append(ranked, RankedSubscription{
			SubscriptionID: sub.ID,
			TierRank:       rankByTier[sub.TierID], // dangling tier -> 0
		})
	}
	return ranked, nil
}
