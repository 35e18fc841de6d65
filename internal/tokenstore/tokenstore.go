package tokenstore

import (
	"context"
	"time"
)

// Store is the revocation list for issued auth tokens. Logout and the
// forced deauthentication on an unauthorized-role login both land here; the
// JWT middleware consults it on every authenticated request.
type Store interface {
	// Revoke marks a token ID as dead for the remaining token lifetime.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
