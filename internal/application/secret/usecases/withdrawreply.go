package usecases

import (
	"context"
	"time"

	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/logger"
)

type WithdrawReplyCommand struct {
	SessionID string
	ReplyID   string
}

type WithdrawReplyUseCase struct {
	replyRepo secret.ReplyRepository
	cfg       *config.SecretConfig
	logger    logger.Interface
}

func NewWithdrawReplyUseCase(
	replyRepo secret.ReplyRepository,
	cfg *config.SecretConfig,
	logger logger.Interface,
) *WithdrawReplyUseCase {
	return &WithdrawReplyUseCase{
		replyRepo: replyRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

func (uc *WithdrawReplyUseCase) Execute(ctx context.Context, cmd WithdrawReplyCommand) error {
	reply, err := uc.replyRepo.GetByID(ctx, cmd.ReplyID)
	if err != nil {
		return err
	}

	now := time.Now()
	grace := time.Duration(uc.cfg.ReplyGraceSeconds) * time.Second
	if err := reply.CheckWithdrawableBy(cmd.SessionID, now, grace); err != nil {
		return err
	}

	if err := uc.replyRepo.SoftDelete(ctx, cmd.ReplyID, now); err != nil {
		return err
	}

	uc.logger.Infow("reply withdrawn", "id", cmd.ReplyID)
	return nil
}
