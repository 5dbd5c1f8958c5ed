package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voidlabs/void/internal/domain/purchase"
	"github.com/voidlabs/void/internal/infrastructure/persistence/models"
	"github.com/voidlabs/void/internal/shared/logger"
)

// PurchaseRepositoryImpl implements the purchase.Repository interface
type PurchaseRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB, logger logger.Interface) purchase.Repository {
	return &PurchaseRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// UpsertByPaymentRef inserts the purchase or refreshes the row already
// recorded for the same provider payment reference, so webhook redelivery
// settles into a no-op instead of a duplicate grant.
func (r *PurchaseRepositoryImpl) UpsertByPaymentRef(ctx context.Context, p *purchase.Purchase) (*purchase.Purchase, bool, error) {
	now := time.Now()
	model := &models.PurchaseModel{
		ID:          p.ID(),
		SessionID:   p.SessionID(),
		FeatureType: p.FeatureType(),
		OfferID:     p.OfferID(),
		Amount:      p.Amount(),
		Currency:    p.Currency(),
		Provider:    string(p.Provider()),
		PaymentRef:  p.PaymentRef(),
		Status:      p.Status(),
		Metadata:    models.JSONB(p.Metadata()),
		ExpiresAt:   p.ExpiresAt(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "payment_ref"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "metadata", "expires_at", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert purchase", "payment_ref", p.PaymentRef(), "error", err)
		return nil, false, fmt.Errorf("failed to upsert purchase: %w", err)
	}

	// Re-read by payment_ref: on conflict the persisted id is the original
	// row's, not the candidate's. The id comparison doubles as the created
	// signal, since the conflict clause never touches id.
	var persisted models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("payment_ref = ?", p.PaymentRef()).
		First(&persisted).Error; err != nil {
		r.logger.Errorw("failed to reload purchase", "payment_ref", p.PaymentRef(), "error", err)
		return nil, false, fmt.Errorf("failed to reload purchase: %w", err)
	}
	created := persisted.ID == model.ID

	r.logger.Infow("purchase recorded",
		"id", persisted.ID,
		"payment_ref", persisted.PaymentRef,
		"feature_type", persisted.FeatureType,
		"created", created)

	result, err := purchaseFromModel(&persisted)
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// ListBySession returns the session's purchases, newest first, capped at limit.
func (r *PurchaseRepositoryImpl) ListBySession(ctx context.Context, sessionID string, limit int) ([]*purchase.Purchase, error) {
	if limit <= 0 {
		limit = 50
	}

	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&purchaseModels).Error; err != nil {
		r.logger.Errorw("failed to list purchases", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	purchases := make([]*purchase.Purchase, 0, len(purchaseModels))
	for i := range purchaseModels {
		p, err := purchaseFromModel(&purchaseModels[i])
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func purchaseFromModel(m *models.PurchaseModel) (*purchase.Purchase, error) {
	p, err := purchase.ReconstructPurchase(
		m.ID,
		m.SessionID,
		m.FeatureType,
		m.OfferID,
		m.Amount,
		m.Currency,
		purchase.Provider(m.Provider),
		m.PaymentRef,
		m.Status,
		map[string]string(m.Metadata),
		m.ExpiresAt,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase: %w", err)
	}
	return p, nil
}
