package usecases

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/goroutine"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/sanitize"
)

// notifyTimeout bounds the detached notification attempt after the request
// that spawned it has already returned.
const notifyTimeout = 30 * time.Second

// FirstReplyNotifier fires the author's one-shot reply notification. Failure
// is its own concern; callers never wait on it.
type FirstReplyNotifier interface {
	Notify(ctx context.Context, secretID string)
}

type ReplyToSecretCommand struct {
	SessionID string
	SecretID  string
	Content   string
}

type ReplyToSecretUseCase struct {
	secretRepo secret.Repository
	replyRepo  secret.ReplyRepository
	notifier   FirstReplyNotifier
	cfg        *config.SecretConfig
	logger     logger.Interface
}

func NewReplyToSecretUseCase(
	secretRepo secret.Repository,
	replyRepo secret.ReplyRepository,
	notifier FirstReplyNotifier,
	cfg *config.SecretConfig,
	logger logger.Interface,
) *ReplyToSecretUseCase {
	return &ReplyToSecretUseCase{
		secretRepo: secretRepo,
		replyRepo:  replyRepo,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}
}

func (uc *ReplyToSecretUseCase) Execute(ctx context.Context, cmd ReplyToSecretCommand) (*dto.ReplyResponse, error) {
	content := sanitize.Clean(cmd.Content)

	length := utf8.RuneCountInString(content)
	if length < 1 || length > uc.cfg.MaxReplyChars {
		return nil, errors.NewValidationError(
			fmt.Sprintf("content must contain between 1 and %d characters.", uc.cfg.MaxReplyChars))
	}

	if sanitize.ContainsBlockedWords(content, uc.cfg.BlockedWords) {
		return nil, errors.NewValidationError("content contains blocked terms.")
	}

	parent, err := uc.secretRepo.GetByID(ctx, cmd.SecretID)
	if err != nil {
		return nil, err
	}
	if err := parent.CanReceiveReplyFrom(cmd.SessionID); err != nil {
		return nil, err
	}

	reply, err := secret.NewReply(cmd.SecretID, cmd.SessionID, content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.replyRepo.CreateWithQuota(ctx, reply, 1); err != nil {
		return nil, err
	}

	// Detached from the request: the reply succeeded whether or not the
	// author can be reached.
	goroutine.SafeGo(uc.logger, "notify-first-reply", func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		uc.notifier.Notify(notifyCtx, cmd.SecretID)
	})

	return &dto.ReplyResponse{
		ID:             reply.ID(),
		Content:        reply.Content(),
		CreatedAt:      reply.CreatedAt(),
		IsReply:        true,
		ParentSecretID: reply.SecretID(),
	}, nil
}
