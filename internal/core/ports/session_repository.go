package ports

import (
	"context"
	"time"
)

// SessionRepository is the storage boundary for per-browser-session fields
// (tokens, the serialized auth profile, the transient OAuth2 signup token).
// Implementations return real errors; the "ignore and default" policy the
// gateway applies on top of them lives in the session manager, not here.
type SessionRepository interface {
	// Get returns the stored value, or domain.ErrSessionFieldNotFound when
	// the field was never written or has expired.
	Get(ctx context.Context, sessionID, field string) (string, error)

	// Set writes a field. A zero ttl means the repository's default
	// session lifetime.
	Set(ctx context.Context, sessionID, field, value string, ttl time.Duration) error

	// Delete removes the given fields. Deleting absent fields is not an error.
	Delete(ctx context.Context, sessionID string, fields ...string) error
}
