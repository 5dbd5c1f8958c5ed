package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/infrastructure/persistence/models"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

// notExpired matches rows whose grant is still live. NULL expiry means the
// grant never expires.
const notExpired = "(expires_at IS NULL OR expires_at > NOW())"

// EntitlementRepositoryImpl implements the entitlement.Repository interface
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// HighestLongLetterLimit returns the largest max_chars among the session's
// unexpired long-letter grants, or 0 when none exist.
func (r *EntitlementRepositoryImpl) HighestLongLetterLimit(ctx context.Context, sessionID string) (int, error) {
	var limit *int
	if err := r.db.WithContext(ctx).
		Model(&models.LongLetterEntitlementModel{}).
		Select("MAX(max_chars)").
		Where("session_id = ? AND "+notExpired, sessionID).
		Scan(&limit).Error; err != nil {
		r.logger.Errorw("failed to resolve long letter limit", "session_id", sessionID, "error", err)
		return 0, fmt.Errorf("failed to resolve long letter limit: %w", err)
	}
	if limit == nil {
		return 0, nil
	}
	return *limit, nil
}

// HasActive reports whether the session holds any unexpired grant of the
// given feature type.
func (r *EntitlementRepositoryImpl) HasActive(ctx context.Context, sessionID string, feature entitlement.FeatureType) (bool, error) {
	var count int64
	var err error

	switch feature {
	case entitlement.FeatureLongLetter:
		err = r.db.WithContext(ctx).
			Model(&models.LongLetterEntitlementModel{}).
			Where("session_id = ? AND "+notExpired, sessionID).
			Count(&count).Error
	case entitlement.FeatureSeal:
		err = r.db.WithContext(ctx).
			Model(&models.SealEntitlementModel{}).
			Where("session_id = ? AND remaining_uses > 0 AND "+notExpired, sessionID).
			Count(&count).Error
	case entitlement.FeatureInk:
		err = r.db.WithContext(ctx).
			Model(&models.InkEntitlementModel{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error
	case entitlement.FeaturePaper:
		err = r.db.WithContext(ctx).
			Model(&models.UnlockedPaperModel{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error
	case entitlement.FeatureSanctuary:
		err = r.db.WithContext(ctx).
			Model(&models.SanctuaryAccessModel{}).
			Where("session_id = ? AND "+notExpired, sessionID).
			Count(&count).Error
	default:
		return false, fmt.Errorf("feature type %q has no per-session grant", feature)
	}

	if err != nil {
		r.logger.Errorw("failed to check entitlement", "session_id", sessionID, "feature", feature, "error", err)
		return false, fmt.Errorf("failed to check entitlement: %w", err)
	}
	return count > 0, nil
}

// GrantLongLetter records a content-length grant for the session. One grant
// per purchase: a replay of the same purchase id is a no-op.
func (r *EntitlementRepositoryImpl) GrantLongLetter(ctx context.Context, sessionID string, maxChars int, purchaseID string, expiresAt *time.Time) error {
	model := &models.LongLetterEntitlementModel{
		SessionID:  sessionID,
		MaxChars:   maxChars,
		PurchaseID: purchaseID,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to grant long letter", "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to grant long letter: %w", err)
	}

	r.logger.Infow("long letter granted", "session_id", sessionID, "max_chars", maxChars)
	return nil
}

// UnlockPaper records a paper style unlock. Re-purchasing the same paper is
// idempotent rather than an error.
func (r *EntitlementRepositoryImpl) UnlockPaper(ctx context.Context, sessionID, paperID, purchaseID string) error {
	model := &models.UnlockedPaperModel{
		SessionID:  sessionID,
		PaperID:    paperID,
		PurchaseID: purchaseID,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to unlock paper", "session_id", sessionID, "paper_id", paperID, "error", err)
		return fmt.Errorf("failed to unlock paper: %w", err)
	}

	r.logger.Infow("paper unlocked", "session_id", sessionID, "paper_id", paperID)
	return nil
}

// GrantInk records an ink effect unlock, idempotent per (session, effect).
func (r *EntitlementRepositoryImpl) GrantInk(ctx context.Context, sessionID, inkEffect, purchaseID string) error {
	model := &models.InkEntitlementModel{
		SessionID:  sessionID,
		InkEffect:  inkEffect,
		PurchaseID: purchaseID,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to grant ink", "session_id", sessionID, "ink_effect", inkEffect, "error", err)
		return fmt.Errorf("failed to grant ink: %w", err)
	}

	r.logger.Infow("ink granted", "session_id", sessionID, "ink_effect", inkEffect)
	return nil
}

// GrantSeal records a consumable seal grant. The unique purchase_id keeps a
// replayed settlement from minting a second use.
func (r *EntitlementRepositoryImpl) GrantSeal(ctx context.Context, sessionID, sealType string, remainingUses int, purchaseID string, expiresAt *time.Time) error {
	model := &models.SealEntitlementModel{
		SessionID:     sessionID,
		SealType:      sealType,
		RemainingUses: remainingUses,
		PurchaseID:    purchaseID,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to grant seal", "session_id", sessionID, "seal_type", sealType, "error", err)
		return fmt.Errorf("failed to grant seal: %w", err)
	}

	r.logger.Infow("seal granted", "session_id", sessionID, "seal_type", sealType, "uses", remainingUses)
	return nil
}

// CreateGiftVoucher mints the redemption token for a gift purchase.
func (r *EntitlementRepositoryImpl) CreateGiftVoucher(ctx context.Context, voucher entitlement.GiftVoucher) error {
	model := &models.GiftVoucherModel{
		GiverSessionID: voucher.GiverSessionID,
		GiftToken:      voucher.Token,
		PurchaseID:     voucher.PurchaseID,
		MaxChars:       voucher.MaxChars,
		SealsQuota:     voucher.SealsQuota,
		ExpiresAt:      voucher.ExpiresAt,
		CreatedAt:      time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// Duplicate purchase_id means the voucher for this payment already
		// exists; the original token stands.
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to create gift voucher", "giver", voucher.GiverSessionID, "error", err)
		return fmt.Errorf("failed to create gift voucher: %w", err)
	}

	r.logger.Infow("gift voucher created", "giver", voucher.GiverSessionID)
	return nil
}

// GrantSanctuary records sanctuary access for the session, one row per
// settled purchase.
func (r *EntitlementRepositoryImpl) GrantSanctuary(ctx context.Context, sessionID, tier, purchaseID string, expiresAt *time.Time) error {
	model := &models.SanctuaryAccessModel{
		SessionID:  sessionID,
		Tier:       tier,
		PurchaseID: purchaseID,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return nil
		}
		r.logger.Errorw("failed to grant sanctuary", "session_id", sessionID, "tier", tier, "error", err)
		return fmt.Errorf("failed to grant sanctuary: %w", err)
	}

	r.logger.Infow("sanctuary granted", "session_id", sessionID, "tier", tier)
	return nil
}
