package usecases

import (
	"context"

	"github.com/voidlabs/void/internal/application/payment/dto"
	"github.com/voidlabs/void/internal/domain/purchase"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/shared/logger"
)

type ConfirmPaymentCommand struct {
	SessionID       string
	PaymentIntentID string
}

// ConfirmPaymentUseCase is the client-driven settlement path: the client
// reports the intent id after checkout and the provider is asked for the
// authoritative status. The webhook path settles the same way, so whichever
// lands first wins and the other upserts into a no-op.
type ConfirmPaymentUseCase struct {
	cardGateway paymentgw.CardGateway
	settle      *SettlePurchaseUseCase
	logger      logger.Interface
}

func NewConfirmPaymentUseCase(
	cardGateway paymentgw.CardGateway,
	settle *SettlePurchaseUseCase,
	logger logger.Interface,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		cardGateway: cardGateway,
		settle:      settle,
		logger:      logger,
	}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, cmd ConfirmPaymentCommand) (*dto.ConfirmPaymentResponse, error) {
	intent, err := uc.cardGateway.RetrievePaymentIntent(ctx, cmd.PaymentIntentID)
	if err != nil {
		uc.logger.Errorw("failed to retrieve payment intent", "intent_id", cmd.PaymentIntentID, "error", err)
		return nil, err
	}

	if intent.Status != "succeeded" {
		return &dto.ConfirmPaymentResponse{
			OK:      false,
			Status:  intent.Status,
			Message: "Le rituel n'est pas termine.",
		}, nil
	}

	sessionID := intent.Metadata["session_id"]
	if sessionID == "" {
		sessionID = cmd.SessionID
	}

	amount := intent.AmountReceived
	if amount == 0 {
		amount = intent.Amount
	}
	currency := intent.Currency
	if currency == "" {
		currency = "eur"
	}

	settled, err := uc.settle.Execute(ctx, SettlePurchaseCommand{
		SessionID:  sessionID,
		OfferID:    intent.Metadata["offer_id"],
		Provider:   purchase.ProviderCard,
		PaymentRef: intent.ID,
		Amount:     float64(amount) / 100,
		Currency:   currency,
		Status:     intent.Status,
		Metadata:   intent.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConfirmPaymentResponse{
		OK:       true,
		Message:  "C'est fait.",
		Purchase: settled,
	}, nil
}
