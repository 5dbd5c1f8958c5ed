package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/voidlabs/void/internal/domain/purchase"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type HandleCardWebhookCommand struct {
	Payload         []byte
	SignatureHeader string
}

// HandleCardWebhookUseCase settles purchases from the card provider's signed
// event stream. Only payment_intent.succeeded settles; every other event
// type is acknowledged and dropped.
type HandleCardWebhookUseCase struct {
	cardGateway paymentgw.CardGateway
	settle      *SettlePurchaseUseCase
	logger      logger.Interface
}

func NewHandleCardWebhookUseCase(
	cardGateway paymentgw.CardGateway,
	settle *SettlePurchaseUseCase,
	logger logger.Interface,
) *HandleCardWebhookUseCase {
	return &HandleCardWebhookUseCase{
		cardGateway: cardGateway,
		settle:      settle,
		logger:      logger,
	}
}

func (uc *HandleCardWebhookUseCase) Execute(ctx context.Context, cmd HandleCardWebhookCommand) error {
	if cmd.SignatureHeader == "" {
		return errors.NewBadRequestError("Missing webhook signature.")
	}
	if err := uc.cardGateway.VerifyWebhookSignature(cmd.Payload, cmd.SignatureHeader); err != nil {
		uc.logger.Warnw("webhook signature rejected", "error", err)
		return errors.NewBadRequestError("Invalid webhook signature.")
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object paymentgw.PaymentIntent `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(cmd.Payload, &event); err != nil {
		return errors.NewBadRequestError("Invalid webhook payload.")
	}

	if event.Type != "payment_intent.succeeded" {
		uc.logger.Debugw("webhook event ignored", "type", event.Type)
		return nil
	}

	intent := event.Data.Object
	sessionID := intent.Metadata["session_id"]
	if sessionID == "" {
		return errors.NewBadRequestError("Missing session metadata.")
	}
	if intent.Metadata["offer_id"] == "" {
		return errors.NewBadRequestError("Missing offer metadata.")
	}

	amount := intent.AmountReceived
	if amount == 0 {
		amount = intent.Amount
	}
	currency := intent.Currency
	if currency == "" {
		currency = "eur"
	}

	if _, err := uc.settle.Execute(ctx, SettlePurchaseCommand{
		SessionID:  sessionID,
		OfferID:    intent.Metadata["offer_id"],
		Provider:   purchase.ProviderCard,
		PaymentRef: intent.ID,
		Amount:     float64(amount) / 100,
		Currency:   currency,
		Status:     intent.Status,
		Metadata:   intent.Metadata,
	}); err != nil {
		return fmt.Errorf("failed to settle webhook purchase: %w", err)
	}
	return nil
}
