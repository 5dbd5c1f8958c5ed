package notification

import (
	"context"
	"time"
)

// Repository persists push registrations, one row per secret.
type Repository interface {
	// Upsert creates or replaces the registration for the secret, resetting
	// notified_at so a re-opt-in becomes consumable again.
	Upsert(ctx context.Context, reg *PushRegistration) error

	// DeleteBySecret removes the registration; used on opt-out.
	DeleteBySecret(ctx context.Context, secretID string) error

	// GetConsumable returns the registration for the secret if it has an
	// unconsumed token, or nil when the author never opted in or was already
	// notified.
	GetConsumable(ctx context.Context, secretID string) (*PushRegistration, error)

	// MarkConsumed clears the token and stamps notified_at. Called only
	// after a delivery succeeded through push or the webhook relay.
	MarkConsumed(ctx context.Context, id uint, at time.Time) error
}
