package domain

import "time"

// Session binds an opaque token to a principal for a fixed window. Expiry
// is absolute from issuance; there is no sliding refresh. A session leaves
// the Active state either by expiry or by explicit revocation, and neither
// transition is reversible.
type Session struct {
	Token     string    `json:"-"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
