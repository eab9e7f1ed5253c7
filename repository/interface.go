package repository

import (
	"context"
	"time"

	"storefront-dashboard/models"
)

// SessionRepository persists the authenticated identity across restarts.
// Load returns (nil, nil) when no session is stored or the stored data is
// unreadable; a corrupt snapshot must never surface as an error.
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

// CartRepository persists per-user cart snapshots. Get returns an empty
// sequence for first-time users; Put replaces the whole stored snapshot.
type CartRepository interface {
	Get(ctx context.Context, userID string) ([]models.CartLine, error)
	Put(ctx context.Context, userID string, lines []models.CartLine) error
	Delete(ctx context.Context, userID string) error
}

// IdempotencyStore records checkout idempotency keys so a resubmitted
// checkout maps back to the order it already created.
type IdempotencyStore interface {
	GetIdempotency(ctx context.Context, key string) (string, error)
	SetIdempotency(ctx context.Context, key, orderID string, ttl time.Duration) error
}

// GuestCartKey is the sentinel cart owner used before a user id is known.
const GuestCartKey = "guest"

// CartKey resolves the storage key for a user, falling back to the guest
// sentinel so an anonymous cart never collides with a real account's.
func CartKey(userID string) string {
	if userID == "" {
		return GuestCartKey
	}
	return userID
}
