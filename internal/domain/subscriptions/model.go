package subscriptions

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
	StatusUpgraded Status = "upgraded"
)

// Subscription relates one member to one creator via one tier. Rows are
// never deleted; a status transition is the deletion substitute. The
// partial unique index keeps at most one active row per (member,
// creator) pair even under concurrent writers.
type Subscription struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MemberID  string `gorm:"type:uuid;not null;index:idx_subscriptions_one_active,unique,where:status = 'active'" json:"member_id"`
	CreatorID string `gorm:"type:uuid;not null;index;index:idx_subscriptions_one_active,unique,where:status = 'active'" json:"creator_id"`
	TierID    string `gorm:"type:uuid;not null" json:"tier_id"`

	Status Status `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	RenewalDate time.Time  `gorm:"not null;index" json:"renewal_date"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`

	// UpgradedFrom is historical lineage only, never ownership.
	UpgradedFrom *string `gorm:"type:uuid" json:"upgraded_from,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
