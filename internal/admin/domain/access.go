package domain

import "slices"

// IsAuthorized reports whether current may use something restricted to
// allowed. An absent role is never authorized. A nil allowed set means any
// authenticated role; a non-nil empty set admits nobody.
func IsAuthorized(allowed []Role, current Role) bool {
	if current == "" {
		return false
	}
	if allowed == nil {
		return true
	}
	return slices.Contains(allowed, current)
}

// Decision is the outcome of guarding a view.
type Decision int

const (
	// DecisionPending: restoration is still running, decide nothing yet.
	DecisionPending Decision = iota
	DecisionLogin
	DecisionUnauthorized
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLogin:
		return "login"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionAllow:
		return "allow"
	default:
		return "pending"
	}
}

// Decide maps the session state and current role onto a guard decision.
func Decide(state SessionState, current Role, allowed []Role) Decision {
	switch state {
	case SessionUnknown:
		return DecisionPending
	case SessionAnonymous:
		return DecisionLogin
	}
	if !IsAuthorized(allowed, current) {
		return DecisionUnauthorized
	}
	return DecisionAllow
}
