package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Guard answers "is the admin authenticated" by decoding the stored access
// token's expiry claim. The token is parsed without verifying its signature:
// this is a UX check that keeps the tool from offering admin operations that
// would immediately 401, not a security boundary. The server rejecting
// expired or forged bearer tokens is the real authorization boundary.
type Guard struct {
	store *Store
	now   func() time.Time
}

func NewGuard(store *Store) Guard {
	return Guard{store: store, now: time.Now}
}

// IsAuthenticated returns false when no access token is stored, when the
// token cannot be decoded, or when its expiry claim is in the past. It is
// re-evaluated on every call rather than cached; decoding failures are never
// surfaced to the caller.
func (g Guard) IsAuthenticated() bool {
	raw := g.store.Token()
	if raw == "" {
		return false
	}

	expiry, ok := decodeExpiry(raw)
	if !ok {
		return false
	}
	return expiry.After(g.now())
}

// ExpiresAt returns the decoded expiry of the stored token, when one can be
// decoded. Used by the status command to show how long the session has left.
func (g Guard) ExpiresAt() (time.Time, bool) {
	raw := g.store.Token()
	if raw == "" {
		return time.Time{}, false
	}
	return decodeExpiry(raw)
}

func decodeExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
