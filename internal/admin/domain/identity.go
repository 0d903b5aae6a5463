package domain

// Identity is the authenticated user behind a session.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`

	// AssignedHotelID scopes a manager to one hotel. Empty for other roles.
	AssignedHotelID string `json:"assignedHotelId,omitempty"`
}

// HotelScope reports the single hotel this identity is confined to, if any.
// Only managers with an assigned hotel are scoped.
func (i Identity) HotelScope() (string, bool) {
	if i.Role == RoleManager && i.AssignedHotelID != "" {
		return i.AssignedHotelID, true
	}
	return "", false
}

// CanActOnHotel reports whether the identity may touch records of hotelID.
func (i Identity) CanActOnHotel(hotelID string) bool {
	scope, ok := i.HotelScope()
	return !ok || scope == hotelID
}

// Session pairs an identity with its opaque access token.
type Session struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

// SessionState is what a guard knows about the current session.
type SessionState int

const (
	// SessionUnknown means startup restoration has not finished yet.
	SessionUnknown SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
