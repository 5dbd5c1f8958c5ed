package usecases

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/sanitize"
)

type CreateSecretCommand struct {
	SessionID string
	Content   string
	DeliverAt *time.Time
	IsSealed  bool
	SealType  *string
	PaperID   *string
	InkEffect *string
}

type CreateSecretUseCase struct {
	secretRepo secret.Repository
	gate       entitlement.Gate
	cfg        *config.SecretConfig
	logger     logger.Interface
}

func NewCreateSecretUseCase(
	secretRepo secret.Repository,
	gate entitlement.Gate,
	cfg *config.SecretConfig,
	logger logger.Interface,
) *CreateSecretUseCase {
	return &CreateSecretUseCase{
		secretRepo: secretRepo,
		gate:       gate,
		cfg:        cfg,
		logger:     logger,
	}
}

func (uc *CreateSecretUseCase) Execute(ctx context.Context, cmd CreateSecretCommand) (*dto.SecretResponse, error) {
	content := sanitize.Clean(cmd.Content)

	maxChars, err := uc.gate.ResolveLongLetterLimit(ctx, cmd.SessionID)
	if err != nil {
		uc.logger.Errorw("failed to resolve content limit", "session_id", cmd.SessionID, "error", err)
		return nil, fmt.Errorf("failed to resolve content limit: %w", err)
	}

	length := utf8.RuneCountInString(content)
	if length < 1 || length > maxChars {
		return nil, errors.NewValidationError(
			fmt.Sprintf("content must contain between 1 and %d characters.", maxChars))
	}

	if sanitize.ContainsBlockedWords(content, uc.cfg.BlockedWords) {
		return nil, errors.NewValidationError("content contains blocked terms.")
	}

	window := time.Duration(uc.cfg.DuplicateWindowMinutes) * time.Minute
	duplicate, err := uc.secretRepo.HasRecentDuplicate(ctx, content, time.Now().Add(-window))
	if err != nil {
		uc.logger.Errorw("failed to check duplicate content", "error", err)
		return nil, fmt.Errorf("failed to check duplicate content: %w", err)
	}
	if duplicate {
		return nil, errors.NewConflictError(
			fmt.Sprintf("Duplicate secret detected in the last %d minutes.", uc.cfg.DuplicateWindowMinutes))
	}

	if cmd.DeliverAt != nil && !cmd.DeliverAt.After(time.Now()) {
		return nil, errors.NewValidationError("deliverAt must be in the future.")
	}

	s, err := secret.NewSecret(cmd.SessionID, content, secret.CreateOptions{
		DeliverAfter: cmd.DeliverAt,
		IsSealed:     cmd.IsSealed,
		SealType:     cmd.SealType,
		PaperID:      cmd.PaperID,
		InkEffect:    cmd.InkEffect,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.secretRepo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Infow("secret submitted", "id", s.ID(), "chars", length)

	return &dto.SecretResponse{
		ID:              s.ID(),
		Content:         s.Content(),
		CreatedAt:       s.CreatedAt(),
		IsReply:         s.IsReply(),
		ParentSecretID:  s.ParentSecretID(),
		IsSealed:        s.IsSealed(),
		SealType:        s.SealType(),
		PaperID:         s.PaperID(),
		InkEffect:       s.InkEffect(),
		AuthorSessionID: s.AuthorSessionID(),
	}, nil
}
