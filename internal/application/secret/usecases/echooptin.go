package usecases

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type EchoOptInCommand struct {
	SessionID string
	SecretID  string
	Enabled   bool

	// PushSubscription is a serialized web-push subscription; PushToken is a
	// bare relay token. On opt-in exactly one must be present, subscription
	// preferred.
	PushSubscription json.RawMessage
	PushToken        string
}

type EchoOptInResult struct {
	Enabled bool
}

type EchoOptInUseCase struct {
	secretRepo       secret.Repository
	registrationRepo notification.Repository
	logger           logger.Interface
}

func NewEchoOptInUseCase(
	secretRepo secret.Repository,
	registrationRepo notification.Repository,
	logger logger.Interface,
) *EchoOptInUseCase {
	return &EchoOptInUseCase{
		secretRepo:       secretRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

func (uc *EchoOptInUseCase) Execute(ctx context.Context, cmd EchoOptInCommand) (*EchoOptInResult, error) {
	s, err := uc.secretRepo.GetByID(ctx, cmd.SecretID)
	if err != nil {
		return nil, err
	}
	if !s.IsAuthoredBy(cmd.SessionID) {
		return nil, errors.NewForbiddenError("Access denied.")
	}

	if !cmd.Enabled {
		if err := uc.registrationRepo.DeleteBySecret(ctx, cmd.SecretID); err != nil {
			return nil, err
		}
		uc.logger.Infow("notification opt-out", "secret_id", cmd.SecretID)
		return &EchoOptInResult{Enabled: false}, nil
	}

	token := resolvePushToken(cmd.PushSubscription, cmd.PushToken)
	if token == "" {
		return nil, errors.NewValidationError("pushSubscription or pushToken is required.")
	}

	reg, err := notification.NewPushRegistration(cmd.SecretID, token)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.registrationRepo.Upsert(ctx, reg); err != nil {
		return nil, err
	}

	uc.logger.Infow("notification opt-in", "secret_id", cmd.SecretID)
	return &EchoOptInResult{Enabled: true}, nil
}

func resolvePushToken(subscription json.RawMessage, token string) string {
	trimmed := strings.TrimSpace(string(subscription))
	if trimmed != "" && trimmed != "null" {
		return trimmed
	}
	return strings.TrimSpace(token)
}
