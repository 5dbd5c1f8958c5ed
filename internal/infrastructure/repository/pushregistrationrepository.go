package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/infrastructure/persistence/models"
	"github.com/voidlabs/void/internal/shared/logger"
)

// PushRegistrationRepositoryImpl implements the notification.Repository interface
type PushRegistrationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewPushRegistrationRepository creates a new push registration repository instance
func NewPushRegistrationRepository(db *gorm.DB, logger logger.Interface) notification.Repository {
	return &PushRegistrationRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or replaces the registration for the secret. notified_at is
// reset so a re-opt-in becomes consumable again.
func (r *PushRegistrationRepositoryImpl) Upsert(ctx context.Context, reg *notification.PushRegistration) error {
	now := time.Now()
	model := &models.PushRegistrationModel{
		SecretID:   reg.SecretID(),
		PushToken:  reg.PushToken(),
		NotifiedAt: nil,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "secret_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"push_token", "notified_at", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert push registration", "secret_id", reg.SecretID(), "error", err)
		return fmt.Errorf("failed to upsert push registration: %w", err)
	}

	r.logger.Infow("push registration saved", "secret_id", reg.SecretID())
	return nil
}

// DeleteBySecret removes the registration; missing rows are not an error
// since opt-out of a never-registered secret is a no-op.
func (r *PushRegistrationRepositoryImpl) DeleteBySecret(ctx context.Context, secretID string) error {
	if err := r.db.WithContext(ctx).
		Where("secret_id = ?", secretID).
		Delete(&models.PushRegistrationModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete push registration", "secret_id", secretID, "error", err)
		return fmt.Errorf("failed to delete push registration: %w", err)
	}
	return nil
}

// GetConsumable returns the registration for the secret if it still has an
// unconsumed token, or nil when there is nothing to fire.
func (r *PushRegistrationRepositoryImpl) GetConsumable(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
	var model models.PushRegistrationModel
	err := r.db.WithContext(ctx).
		Where("secret_id = ? AND notified_at IS NULL AND push_token IS NOT NULL", secretID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get push registration", "secret_id", secretID, "error", err)
		return nil, fmt.Errorf("failed to get push registration: %w", err)
	}

	reg, err := notification.ReconstructPushRegistration(
		model.ID, model.SecretID, model.PushToken, model.NotifiedAt, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct push registration: %w", err)
	}
	return reg, nil
}

// MarkConsumed clears the token and stamps notified_at so the registration
// can never fire a second time.
func (r *PushRegistrationRepositoryImpl) MarkConsumed(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.PushRegistrationModel{}).
		Where("id = ? AND notified_at IS NULL", id).
		Updates(map[string]interface{}{
			"push_token":  nil,
			"notified_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark push registration consumed", "id", id, "error", result.Error)
		return fmt.Errorf("failed to mark push registration consumed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Debugw("push registration already consumed", "id", id)
	}
	return nil
}
