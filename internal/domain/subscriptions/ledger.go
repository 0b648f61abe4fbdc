package subscriptions

import (
	"errors"
	"time"

	domainerrors "creatorhub/internal/domain/errors"
	"creatorhub/internal/domain/tiers"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// isDuplicateActive reports whether err is the partial unique index
// rejecting a second active row for the same (member, creator) pair.
// The FOR UPDATE check cannot lock rows that do not exist yet, so two
// concurrent subscribes can both pass it; the index decides the race
// and the loser gets the same typed error as the locked path.
func isDuplicateActive(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == "idx_subscriptions_one_active"
}

// Subscribe opens an active subscription for (memberID, creatorID) on
// the given tier. The duplicate-active check runs inside a transaction
// under a row lock, and the partial unique index backs it against
// writers the lock cannot see.
func Subscribe(db *gorm.DB, memberID, creatorID, tierID string, now time.Time) (*Subscription, error) {
	var sub Subscription

	err := db.Transaction(func(tx *gorm.DB) error {
		var tier tiers.Tier
		if err := tx.First(&tier, "id = ?", tierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if tier.CreatorID != creatorID {
			return domainerrors.ErrTierCreatorMismatch
		}

		var existing []Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("member_id = ? AND creator_id = ? AND status = ?", memberID, creatorID, StatusActive).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return domainerrors.ErrDuplicateActiveSubscription
		}

		sub = Subscription{
			MemberID:    memberID,
			CreatorID:   creatorID,
			TierID:      tierID,
			Status:      StatusActive,
			StartDate:   now,
			RenewalDate: NextRenewalDate(now),
		}
		if err := tx.Create(&sub).Error; err != nil {
			if isDuplicateActive(err) {
				return domainerrors.ErrDuplicateActiveSubscription
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upgrade atomically marks the old subscription upgraded and opens a
// new active one on the new tier. The monthly clock restarts from the
// upgrade moment; there is no proration.
func Upgrade(db *gorm.DB, subscriptionID, newTierID string, now time.Time) (*Subscription, error) {
	var next Subscription

	err := db.Transaction(func(tx *gorm.DB) error {
		var old Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&old, "id = ?", subscriptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if old.Status != StatusActive {
			return domainerrors.ErrNotActive
		}

		var tier tiers.Tier
		if err := tx.First(&tier, "id = ?", newTierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if tier.CreatorID != old.CreatorID {
			return domainerrors.ErrTierCreatorMismatch
		}

		if err := tx.Model(&Subscription{}).
			Where("id = ?", old.ID).
			Update("status", StatusUpgraded).Error; err != nil {
			return err
		}

		oldID := old.ID
		next = Subscription{
			MemberID:     old.MemberID,
			CreatorID:    old.CreatorID,
			TierID:       newTierID,
			Status:       StatusActive,
			StartDate:    now,
			RenewalDate:  NextRenewalDate(now),
			UpgradedFrom: &oldID,
		}
		if err := tx.Create(&next).Error; err != nil {
			if isDuplicateActive(err) {
				return domainerrors.ErrDuplicateActiveSubscription
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// Cancel sets a subscription canceled and records when. Canceling an
// already-canceled subscription is a no-op success; expired and
// upgraded are terminal states of other transitions and fail.
func Cancel(db *gorm.DB, subscriptionID string, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sub Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, "id = ?", subscriptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}

		switch sub.Status {
		case StatusCanceled:
			return nil
		case StatusActive:
			return tx.Model(&Subscription{}).
				Where("id = ?", sub.ID).
				Updates(map[string]interface{}{
					"status":      StatusCanceled,
					"canceled_at": now,
				}).Error
		default:
			return domainerrors.ErrNotActive
		}
	})
}

const expireAttempts = 3

// ExpireDue flips active subscriptions whose renewal date has passed to
// expired and returns how many it transitioned. A single UPDATE keeps
// it idempotent and safe under concurrent callers; being idempotent it
// is also the one write retried on transient failures.
func ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	var lastErr error
	for attempt := 1; attempt <= expireAttempts; attempt++ {
		result := db.Model(&Subscription{}).
			Where("status = ? AND renewal_date < ?", StatusActive, now).
			Update("status", StatusExpired)
		if result.Error == nil {
			return result.RowsAffected, nil
		}
		lastErr = result.Error
		if attempt < expireAttempts {
			time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
		}
	}
	return 0, lastErr
}

// ListForMember returns every subscription a member holds, newest first.
func ListForMember(db *gorm.DB, memberID string) ([]Subscription, error) {
	var out []Subscription
	err := db.Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListForCreator returns a creator's subscriptions, optionally filtered
// by status.
func ListForCreator(db *gorm.DB, creatorID string, status *Status) ([]Subscription, error) {
	query := db.Where("creator_id = ?", creatorID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var out []Subscription
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
