package creatorsapi

import (
	"creatorhub/internal/domain/posts"

	"gorm.io/gorm"
)

func publicPostsQuery(db *gorm.DB, creatorID string) *gorm.DB {
	return db.Model(&posts.Post{}).
		Where("creator_id = ? AND visibility = ?", creatorID, posts.VisibilityPublic)
}
