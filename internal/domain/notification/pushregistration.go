// Package notification models the per-secret push registration: one opaque
// subscription payload, consumed by exactly one notification ever.
package notification

import (
	"fmt"
	"time"
)

// PushRegistration holds one push subscription for one secret. The token is
// cleared and notified_at set the first time a reply notification is
// delivered; an unconsumed row means the author is still waiting.
type PushRegistration struct {
	id         uint
	secretID   string
	pushToken  *string
	notifiedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPushRegistration creates a registration for a secret with an opaque
// push token (a serialized web-push subscription or a bare relay token).
func NewPushRegistration(secretID, pushToken string) (*PushRegistration, error) {
	if secretID == "" {
		return nil, fmt.Errorf("secret ID is required")
	}
	if pushToken == "" {
		return nil, fmt.Errorf("push token is required")
	}

	now := time.Now()
	token := pushToken
	return &PushRegistration{
		secretID:  secretID,
		pushToken: &token,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPushRegistration rebuilds a registration from persistence.
func ReconstructPushRegistration(id uint, secretID string, pushToken *string, notifiedAt *time.Time, createdAt, updatedAt time.Time) (*PushRegistration, error) {
	if id == 0 {
		return nil, fmt.Errorf("registration ID cannot be zero")
	}
	return &PushRegistration{
		id:         id,
		secretID:   secretID,
		pushToken:  pushToken,
		notifiedAt: notifiedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (p *PushRegistration) ID() uint               { return p.id }
func (p *PushRegistration) SecretID() string       { return p.secretID }
func (p *PushRegistration) PushToken() *string     { return p.pushToken }
func (p *PushRegistration) NotifiedAt() *time.Time { return p.notifiedAt }
func (p *PushRegistration) CreatedAt() time.Time   { return p.createdAt }
func (p *PushRegistration) UpdatedAt() time.Time   { return p.updatedAt }

// IsConsumable reports whether this registration can still fire: it has a
// token and has never been notified.
func (p *PushRegistration) IsConsumable() bool {
	return p.notifiedAt == nil && p.pushToken != nil && *p.pushToken != ""
}
