package tiers

import (
	"encoding/json"
	"errors"
	"strings"

	domainerrors "creatorhub/internal/domain/errors"

	"gorm.io/gorm"
)

// Spec is the caller-provided shape for creating or updating a tier.
type Spec struct {
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthly_price"`
	Rank         int      `json:"rank"`
	Description  string   `json:"description"`
	Benefits     []string `json:"benefits"`
}

func (s Spec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return domainerrors.Invalid("name", "must not be empty")
	}
	if s.MonthlyPrice <= 0 {
		return domainerrors.Invalid("monthly_price", "must be positive")
	}
	if s.Rank <= 0 {
		return domainerrors.Invalid("rank", "must be positive")
	}
	return nil
}

// ListTiers returns a creator's tiers ordered by ascending rank,
// creation order breaking ties.
func ListTiers(db *gorm.DB, creatorID string) ([]Tier, error) {
	var out []Tier
	err := db.Where("creator_id = ?", creatorID).
		Order("rank ASC").
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTier persists a new tier after validating the spec.
func CreateTier(db *gorm.DB, creatorID string, spec Spec) (*Tier, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	benefits := spec.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	raw, err := json.Marshal(benefits)
	if err != nil {
		return nil, err
	}

	tier := Tier{
		CreatorID:    creatorID,
		Name:         strings.TrimSpace(spec.Name),
		MonthlyPrice: spec.MonthlyPrice,
		Rank:         spec.Rank,
		Description:  spec.Description,
		Benefits:     raw,
	}
	if err := db.Create(&tier).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// GetTierRank resolves a tier id to its rank.
func GetTierRank(db *gorm.DB, tierID string) (int, error) {
	var tier Tier
	if err := db.Select("rank").First(&tier, "id = ?", tierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domainerrors.ErrNotFound
		}
		return 0, err
	}
	return tier.Rank, nil
}
