package usecases

import (
	"context"
	"net/url"
	"time"

	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/infrastructure/push"
	"github.com/voidlabs/void/internal/shared/accesstoken"
	"github.com/voidlabs/void/internal/shared/logger"
)

// NotifyFirstReplyUseCase fires the author's one-shot reply notification.
// The registration is consumed only after a channel accepted the delivery,
// so an undeliverable author keeps their chance at the next reply event.
type NotifyFirstReplyUseCase struct {
	registrationRepo notification.Repository
	sender           push.Sender
	tokens           *accesstoken.Service
	logger           logger.Interface
}

func NewNotifyFirstReplyUseCase(
	registrationRepo notification.Repository,
	sender push.Sender,
	tokens *accesstoken.Service,
	logger logger.Interface,
) *NotifyFirstReplyUseCase {
	return &NotifyFirstReplyUseCase{
		registrationRepo: registrationRepo,
		sender:           sender,
		tokens:           tokens,
		logger:           logger,
	}
}

// Notify is best-effort end to end: every failure path logs and returns.
func (uc *NotifyFirstReplyUseCase) Notify(ctx context.Context, secretID string) {
	reg, err := uc.registrationRepo.GetConsumable(ctx, secretID)
	if err != nil {
		uc.logger.Errorw("failed to load push registration", "secret_id", secretID, "error", err)
		return
	}
	if reg == nil || !reg.IsConsumable() {
		return
	}

	token, err := uc.tokens.Generate(secretID)
	if err != nil {
		uc.logger.Errorw("failed to mint access token", "secret_id", secretID, "error", err)
		return
	}

	payload := push.Payload{
		Title: "VOID",
		Body:  "Le vide a bouge.",
		URL:   "/echo/" + secretID + "?t=" + url.QueryEscape(token),
	}

	if !uc.sender.Send(ctx, *reg.PushToken(), payload) {
		uc.logger.Warnw("reply notification undelivered", "secret_id", secretID)
		return
	}

	if err := uc.registrationRepo.MarkConsumed(ctx, reg.ID(), time.Now()); err != nil {
		uc.logger.Errorw("failed to consume push registration", "secret_id", secretID, "error", err)
		return
	}

	uc.logger.Infow("reply notification delivered", "secret_id", secretID)
}
