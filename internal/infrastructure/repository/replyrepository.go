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

// ReplyRepositoryImpl implements the secret.ReplyRepository interface
type ReplyRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewReplyRepository creates a new reply repository instance
func NewReplyRepository(db *gorm.DB, logger logger.Interface) secret.ReplyRepository {
	return &ReplyRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// CreateWithQuota inserts the reply and consumes one unit of the parent's
// reply quota in a single transaction. The conditional UPDATE is the quota
// gate: when two replies race, exactly one increments past the check and the
// loser sees zero rows. The partial unique index on (secret_id,
// author_session_id) WHERE deleted_at IS NULL independently blocks a second
// live reply from the same author.
func (r *ReplyRepositoryImpl) CreateWithQuota(ctx context.Context, reply *secret.Reply, maxReplies int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SecretModel{}).
			Where("id = ? AND is_reply = FALSE AND reply_count < ?", reply.SecretID(), maxReplies).
			Update("reply_count", gorm.Expr("reply_count + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to consume reply quota: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.SecretModel{}).
				Where("id = ? AND is_reply = FALSE", reply.SecretID()).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check secret existence: %w", err)
			}
			if count == 0 {
				return errors.NewNotFoundError("Secret not found.")
			}
			return errors.NewConflictError("This secret has already been answered.")
		}

		model := &models.ReplyModel{
			ID:              reply.ID(),
			SecretID:        reply.SecretID(),
			Content:         reply.Content(),
			AuthorSessionID: reply.AuthorSessionID(),
			DeletedAt:       reply.DeletedAt(),
			CreatedAt:       reply.CreatedAt(),
		}
		if err := tx.Create(model).Error; err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("You have already replied to this secret.")
			}
			return fmt.Errorf("failed to create reply: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.GetAppError(err) == nil {
			r.logger.Errorw("failed to create reply", "secret_id", reply.SecretID(), "error", err)
		}
		return err
	}

	r.logger.Infow("reply created", "id", reply.ID(), "secret_id", reply.SecretID())
	return nil
}

// GetByID fetches a reply by its UUID, including withdrawn ones.
func (r *ReplyRepositoryImpl) GetByID(ctx context.Context, id string) (*secret.Reply, error) {
	var model models.ReplyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Reply not found.")
		}
		r.logger.Errorw("failed to get reply", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	return replyFromModel(&model)
}

// SoftDelete sets deleted_at. The parent's reply count is not decremented.
func (r *ReplyRepositoryImpl) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.ReplyModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", deletedAt)
	if result.Error != nil {
		r.logger.Errorw("failed to withdraw reply", "id", id, "error", result.Error)
		return fmt.Errorf("failed to withdraw reply: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("Reply already deleted.")
	}

	r.logger.Infow("reply withdrawn", "id", id)
	return nil
}

// ListBySecret returns live replies ordered by creation time ascending.
func (r *ReplyRepositoryImpl) ListBySecret(ctx context.Context, secretID string) ([]*secret.Reply, error) {
	var replyModels []models.ReplyModel
	if err := r.db.WithContext(ctx).
		Where("secret_id = ? AND deleted_at IS NULL", secretID).
		Order("created_at ASC").
		Find(&replyModels).Error; err != nil {
		r.logger.Errorw("failed to list replies", "secret_id", secretID, "error", err)
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	replies := make([]*secret.Reply, 0, len(replyModels))
	for i := range replyModels {
		reply, err := replyFromModel(&replyModels[i])
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

func replyFromModel(m *models.ReplyModel) (*secret.Reply, error) {
	reply, err := secret.ReconstructReply(m.ID, m.SecretID, m.Content, m.AuthorSessionID, m.DeletedAt, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct reply: %w", err)
	}
	return reply, nil
}
