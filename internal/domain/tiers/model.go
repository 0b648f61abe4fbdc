package tiers

import (
	"encoding/json"
	"time"
)

// Tier is one membership level a creator sells. Rank is the access
// ordering proxy: a higher rank unlocks everything a lower rank does.
type Tier struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatorID string `gorm:"type:uuid;not null;index" json:"creator_id"`

	Name         string `gorm:"not null" json:"name"`
	MonthlyPrice int    `gorm:"not null" json:"monthly_price"` // smallest currency unit
	Rank         int    `gorm:"not null" json:"rank"`
	Description  string `gorm:"type:text" json:"description"`

	Benefits json.RawMessage `gorm:"type:jsonb;not null;default:'[]'" json:"benefits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tier) TableName() string {
	return "tiers"
}
