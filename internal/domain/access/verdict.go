package access

// Reason is the closed set of verdict explanations.
type Reason string

const (
	ReasonPublic               Reason = "public"
	ReasonOwner                Reason = "owner"
	ReasonUnauthenticated      Reason = "unauthenticated"
	ReasonNoActiveSubscription Reason = "no_active_subscription"
	ReasonSufficientTier       Reason = "sufficient_tier"
	ReasonInsufficientTier     Reason = "insufficient_tier"
)

// Verdict is the result of an access check.
type Verdict struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

func allow(reason Reason) Verdict {
	return Verdict{Allowed: true, Reason: reason}
}

func deny(reason Reason) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}
