package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/infrastructure/persistence/models"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

// SecretRepositoryImpl implements the secret.Repository interface
type SecretRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSecretRepository creates a new secret repository instance
func NewSecretRepository(db *gorm.DB, logger logger.Interface) secret.Repository {
	return &SecretRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Create persists a new secret
func (r *SecretRepositoryImpl) Create(ctx context.Context, s *secret.Secret) error {
	model := secretToModel(s)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("secret already exists")
		}
		r.logger.Errorw("failed to create secret", "id", s.ID(), "error", err)
		return fmt.Errorf("failed to create secret: %w", err)
	}

	r.logger.Infow("secret created", "id", model.ID, "sealed", model.IsSealed)
	return nil
}

// GetByID fetches a secret by its UUID
func (r *SecretRepositoryImpl) GetByID(ctx context.Context, id string) (*secret.Secret, error) {
	var model models.SecretModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Secret not found.")
		}
		r.logger.Errorw("failed to get secret", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get secret: %w", err)
	}

	return secretFromModel(&model)
}

// HasRecentDuplicate reports whether any secret with exactly this content was
// created at or after the given instant.
func (r *SecretRepositoryImpl) HasRecentDuplicate(ctx context.Context, content string, since time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SecretModel{}).
		Where("content = ? AND created_at >= ?", content, since).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check duplicate content", "error", err)
		return false, fmt.Errorf("failed to check duplicate content: %w", err)
	}
	return count > 0, nil
}

// pullClaimSQL claims one eligible row in a single statement. The candidate
// is picked at a random offset over the eligible count rather than by
// sorting the whole pool; SKIP LOCKED keeps concurrent pullers from claiming
// or blocking on the same row.
const pullClaimSQL = `
	UPDATE secrets
	SET is_delivered = TRUE,
	    receiver_session_id = ?,
	    delivered_at = NOW()
	WHERE id = (
		SELECT id FROM secrets
		WHERE is_delivered = FALSE
		  AND is_reply = FALSE
		  AND (author_session_id IS NULL OR author_session_id <> ?)
		  AND (deliver_after IS NULL OR deliver_after <= NOW())
		OFFSET floor(random() * GREATEST((
			SELECT COUNT(*) FROM secrets
			WHERE is_delivered = FALSE
			  AND is_reply = FALSE
			  AND (author_session_id IS NULL OR author_session_id <> ?)
			  AND (deliver_after IS NULL OR deliver_after <= NOW())
		), 1))
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING *`

// PullNext atomically claims one eligible secret for the receiver. When the
// random offset lands past rows claimed by concurrent pullers the first
// attempt can come back empty on a non-empty pool, so a miss is retried once
// at offset zero before reporting the pool empty.
func (r *SecretRepositoryImpl) PullNext(ctx context.Context, receiverSessionID string) (*secret.Secret, error) {
	model, err := r.claimNext(ctx, receiverSessionID, pullClaimSQL,
		receiverSessionID, receiverSessionID, receiverSessionID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		model, err = r.claimNext(ctx, receiverSessionID, pullFirstSQL,
			receiverSessionID, receiverSessionID)
		if err != nil {
			return nil, err
		}
	}
	if model == nil {
		return nil, nil
	}

	r.logger.Infow("secret pulled", "id", model.ID, "receiver", receiverSessionID)
	return secretFromModel(model)
}

// pullFirstSQL is the retry form: same claim without the random offset.
const pullFirstSQL = `
	UPDATE secrets
	SET is_delivered = TRUE,
	    receiver_session_id = ?,
	    delivered_at = NOW()
	WHERE id = (
		SELECT id FROM secrets
		WHERE is_delivered = FALSE
		  AND is_reply = FALSE
		  AND (author_session_id IS NULL OR author_session_id <> ?)
		  AND (deliver_after IS NULL OR deliver_after <= NOW())
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING *`

func (r *SecretRepositoryImpl) claimNext(ctx context.Context, receiverSessionID, query string, args ...interface{}) (*models.SecretModel, error) {
	var model models.SecretModel
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&model).Error; err != nil {
		r.logger.Errorw("failed to pull secret", "receiver", receiverSessionID, "error", err)
		return nil, fmt.Errorf("failed to pull secret: %w", err)
	}

	// gorm's Scan leaves the struct zeroed when the UPDATE matched no row.
	if model.ID == "" {
		return nil, nil
	}
	return &model, nil
}

// Release clears the delivery fields if and only if the secret is currently
// held by holderSessionID. A false return means the caller does not hold it.
func (r *SecretRepositoryImpl) Release(ctx context.Context, secretID, holderSessionID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SecretModel{}).
		Where("id = ? AND is_delivered = TRUE AND receiver_session_id = ?", secretID, holderSessionID).
		Updates(map[string]interface{}{
			"is_delivered":        false,
			"receiver_session_id": nil,
			"delivered_at":        nil,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to release secret", "id", secretID, "error", result.Error)
		return false, fmt.Errorf("failed to release secret: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.logger.Infow("secret released", "id", secretID)
	return true, nil
}

func secretToModel(s *secret.Secret) *models.SecretModel {
	return &models.SecretModel{
		ID:                s.ID(),
		Content:           s.Content(),
		AuthorSessionID:   s.AuthorSessionID(),
		IsReply:           s.IsReply(),
		ParentSecretID:    s.ParentSecretID(),
		IsDelivered:       s.IsDelivered(),
		DeliveredAt:       s.DeliveredAt(),
		ReceiverSessionID: s.ReceiverSessionID(),
		ReplyCount:        s.ReplyCount(),
		DeliverAfter:      s.DeliverAfter(),
		IsSealed:          s.IsSealed(),
		SealType:          s.SealType(),
		PaperID:           s.PaperID(),
		InkEffect:         s.InkEffect(),
		CreatedAt:         s.CreatedAt(),
	}
}

func secretFromModel(m *models.SecretModel) (*secret.Secret, error) {
	s, err := secret.ReconstructSecret(
		m.ID,
		m.Content,
		m.AuthorSessionID,
		m.IsReply,
		m.ParentSecretID,
		m.IsDelivered,
		m.DeliveredAt,
		m.ReceiverSessionID,
		m.ReplyCount,
		m.DeliverAfter,
		m.IsSealed,
		m.SealType,
		m.PaperID,
		m.InkEffect,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct secret: %w", err)
	}
	return s, nil
}
