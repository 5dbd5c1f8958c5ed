package purchase

import "context"

// Repository persists purchases. Upsert is keyed by the provider payment
// reference so retried provider webhooks stay idempotent.
type Repository interface {
	// UpsertByPaymentRef inserts the purchase, or updates the existing row
	// with the same payment reference. The returned purchase carries the
	// persisted id in either case; created reports whether this call
	// recorded the reference for the first time.
	UpsertByPaymentRef(ctx context.Context, p *Purchase) (persisted *Purchase, created bool, err error)

	// ListBySession returns the session's purchases, newest first, capped at limit.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*Purchase, error)
}
