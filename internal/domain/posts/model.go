package posts

import (
	"time"

	domainerrors "creatorhub/internal/domain/errors"
)

// Visibility is a closed enumeration. ParseVisibility rejects anything
// else, so the engine never sees an unknown value.
type Visibility string

const (
	VisibilityPublic         Visibility = "public"
	VisibilityTierRestricted Visibility = "tier-restricted"
)

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityTierRestricted:
		return Visibility(s), nil
	default:
		return "", domainerrors.Invalid("visibility", "must be public or tier-restricted")
	}
}

type Post struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatorID string `gorm:"type:uuid;not null;index" json:"creator_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Body        string `gorm:"type:text" json:"body"`

	Visibility  Visibility `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	MinTierRank int        `gorm:"not null;default:0" json:"min_tier_rank"` // 0 = any active subscriber

	Files []FileAsset `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE;" json:"files,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
