package access

import "creatorhub/internal/domain/posts"

// Resource is what a viewer is trying to see, reduced to the fields the
// decision needs.
type Resource struct {
	CreatorID   string
	Visibility  posts.Visibility
	MinTierRank int
}

// RankedSubscription is an active subscription with its tier rank
// already resolved. A dangling tier reference resolves to rank 0
// upstream, so a deleted tier denies unless MinTierRank is 0.
type RankedSubscription struct {
	SubscriptionID string
	TierRank       int
}

// Decide runs the access decision procedure. viewerID being empty means
// anonymous. Stored active status is trusted as-is: a subscription past
// its renewal date still grants until a sweep expires it (lazy expiry).
func Decide(viewerID string, res Resource, active []RankedSubscription) Verdict {
	if res.Visibility == posts.VisibilityPublic {
		return allow(ReasonPublic)
	}

	if viewerID != "" && viewerID == res.CreatorID {
		return allow(ReasonOwner)
	}

	if viewerID == "" {
		return deny(ReasonUnauthenticated)
	}

	if len(active) == 0 {
		return deny(ReasonNoActiveSubscription)
	}

	for _, sub := range active {
		if sub.TierRank >= res.MinTierRank {
			return allow(ReasonSufficientTier)
		}
	}
	return deny(ReasonInsufficientTier)
}
