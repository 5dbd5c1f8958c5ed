package entitlement

import (
	"context"
	"time"
)

// GiftVoucher is the one entitlement that crosses sessions: the giver's
// purchase mints a redemption token another session can claim.
type GiftVoucher struct {
	GiverSessionID string
	Token          string
	PurchaseID     string
	MaxChars       int
	SealsQuota     int
	ExpiresAt      *time.Time
}

// Repository persists per-session grants. Expiry is always a read-time
// predicate: a row with a past expires_at is treated as absent, no cleanup
// job required.
type Repository interface {
	// HighestLongLetterLimit returns the largest max_chars among the
	// session's unexpired long-letter grants, or 0 when none exist.
	HighestLongLetterLimit(ctx context.Context, sessionID string) (int, error)

	// HasActive reports whether the session holds any unexpired grant of the
	// given feature type.
	HasActive(ctx context.Context, sessionID string, feature FeatureType) (bool, error)

	GrantLongLetter(ctx context.Context, sessionID string, maxChars int, purchaseID string, expiresAt *time.Time) error
	UnlockPaper(ctx context.Context, sessionID, paperID, purchaseID string) error
	GrantInk(ctx context.Context, sessionID, inkEffect, purchaseID string) error
	GrantSeal(ctx context.Context, sessionID, sealType string, remainingUses int, purchaseID string, expiresAt *time.Time) error
	CreateGiftVoucher(ctx context.Context, voucher GiftVoucher) error
	GrantSanctuary(ctx context.Context, sessionID, tier, purchaseID string, expiresAt *time.Time) error
}

// Gate resolves effective limits for the secret store at write time.
type Gate interface {
	// ResolveLongLetterLimit returns the effective content limit for the
	// session: the default, or the highest unexpired long-letter grant.
	ResolveLongLetterLimit(ctx context.Context, sessionID string) (int, error)

	// HasActiveEntitlement generalizes the check for seals, ink, papers and
	// sanctuary persistence.
	HasActiveEntitlement(ctx context.Context, sessionID string, feature FeatureType) (bool, error)
}
