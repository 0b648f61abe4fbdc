package access

import (
	"testing"

	"creatorhub/internal/domain/posts"

	"github.com/stretchr/testify/assert"
)

const (
	creatorID = "0b6f3a52-7c1d-4f7e-9a93-2f6f9f0a1c11"
	viewerID  = "9e2a1d40-55aa-4d0b-8d7e-0c3b6a2f4e22"
)

func restricted(minRank int) Resource {
	return Resource{
		CreatorID:   creatorID,
		Visibility:  posts.VisibilityTierRestricted,
		MinTierRank: minRank,
	}
}

func TestDecidePublicAllowsEveryone(t *testing.T) {
	res := Resource{CreatorID: creatorID, Visibility: posts.VisibilityPublic}

	for _, viewer := range []string{"", viewerID, creatorID} {
		verdict := Decide(viewer, res, nil)
		assert.True(t, verdict.Allowed)
		assert.Equal(t, ReasonPublic, verdict.Reason)
	}
}

func TestDecideOwnerAlwaysAllowed(t *testing.T) {
	// The owner needs no subscription, however high the bar.
	verdict := Decide(creatorID, restricted(99), nil)

	assert.True(t, verdict.Allowed)
	assert.Equal(t, ReasonOwner, verdict.Reason)
}

func TestDecideAnonymousDeniedOnRestricted(t *testing.T) {
	verdict := Decide("", restricted(1), nil)

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonUnauthenticated, verdict.Reason)
}

func TestDecideNoSubscription(t *testing.T) {
	verdict := Decide(viewerID, restricted(1), nil)

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonNoActiveSubscription, verdict.Reason)
}

func TestDecideTierRankComparison(t *testing.T) {
	tests := []struct {
		name    string
		minRank int
		ranks   []int
		allowed bool
		reason  Reason
	}{
		{"equal rank passes", 2, []int{2}, true, ReasonSufficientTier},
		{"higher rank passes", 1, []int{3}, true, ReasonSufficientTier},
		{"lower rank fails", 3, []int{2}, false, ReasonInsufficientTier},
		{"any of several subscriptions can satisfy", 3, []int{1, 3}, true, ReasonSufficientTier},
		{"rank zero bar admits any active subscriber", 0, []int{1}, true, ReasonSufficientTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := make([]RankedSubscription, 0, len(tt.ranks))
			for i, rank := range tt.ranks {
				active = append(active, RankedSubscription{
					SubscriptionID: string(rune('a' + i)),
					TierRank:       rank,
				})
			}

			verdict := Decide(viewerID, restricted(tt.minRank), active)
			assert.Equal(t, tt.allowed, verdict.Allowed)
			assert.Equal(t, tt.reason, verdict.Reason)
		})
	}
}

func TestDecideDanglingTierCountsAsRankZero(t *testing.T) {
	// A subscription whose tier was deleted resolves to rank 0 upstream.
	// It still satisfies a zero bar but nothing above it.
	dangling := []RankedSubscription{{SubscriptionID: "s1", TierRank: 0}}

	verdict := Decide(viewerID, restricted(1), dangling)
	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonInsufficientTier, verdict.Reason)

	verdict = Decide(viewerID, restricted(0), dangling)
	assert.True(t, verdict.Allowed)
	assert.Equal(t, ReasonSufficientTier, verdict.Reason)
}
