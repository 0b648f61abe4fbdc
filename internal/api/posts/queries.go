package postsapi

import (
	"creatorhub/internal/domain/posts"

	"gorm.io/gorm"
)

func creatorPostsQuery(db *gorm.DB, creatorID string) *gorm.DB {
	return db.Model(&posts.Post{}).
		Where("creator_id = ?", creatorID)
}
