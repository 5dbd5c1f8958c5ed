package usecases

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/voidlabs/void/internal/domain/purchase"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type HandleMobileMoneyCallbackCommand struct {
	TransactionID string
}

// HandleMobileMoneyCallbackResult distinguishes a settled callback from one
// for a transaction that never completed; the provider expects 200 either way.
type HandleMobileMoneyCallbackResult struct {
	Ignored bool
}

// HandleMobileMoneyCallbackUseCase settles purchases on the mobile money
// provider's notify call. The callback body is untrusted; the transaction is
// re-checked against the provider before anything is granted.
type HandleMobileMoneyCallbackUseCase struct {
	mobileMoney paymentgw.MobileMoneyGateway
	settle      *SettlePurchaseUseCase
	logger      logger.Interface
}

func NewHandleMobileMoneyCallbackUseCase(
	mobileMoney paymentgw.MobileMoneyGateway,
	settle *SettlePurchaseUseCase,
	logger logger.Interface,
) *HandleMobileMoneyCallbackUseCase {
	return &HandleMobileMoneyCallbackUseCase{
		mobileMoney: mobileMoney,
		settle:      settle,
		logger:      logger,
	}
}

func (uc *HandleMobileMoneyCallbackUseCase) Execute(ctx context.Context, cmd HandleMobileMoneyCallbackCommand) (*HandleMobileMoneyCallbackResult, error) {
	if strings.TrimSpace(cmd.TransactionID) == "" {
		return nil, errors.NewBadRequestError("missing transaction id")
	}

	check, err := uc.mobileMoney.CheckPayment(ctx, cmd.TransactionID)
	if err != nil {
		uc.logger.Errorw("failed to check mobile money transaction", "transaction_id", cmd.TransactionID, "error", err)
		return nil, err
	}

	if !strings.EqualFold(check.Status, "ACCEPTED") {
		uc.logger.Infow("mobile money callback ignored", "transaction_id", cmd.TransactionID, "status", check.Status)
		return &HandleMobileMoneyCallbackResult{Ignored: true}, nil
	}

	metadata := map[string]string{}
	if check.Metadata != "" {
		if err := json.Unmarshal([]byte(check.Metadata), &metadata); err != nil {
			metadata = map[string]string{}
		}
	}

	sessionID := metadata["session_id"]
	offerID := metadata["offer_id"]
	if sessionID == "" || offerID == "" {
		return nil, errors.NewBadRequestError("missing metadata")
	}

	paymentRef := check.TransactionID
	if paymentRef == "" {
		paymentRef = cmd.TransactionID
	}
	currency := check.Currency
	if currency == "" {
		currency = "XOF"
	}

	if _, err := uc.settle.Execute(ctx, SettlePurchaseCommand{
		SessionID:  sessionID,
		OfferID:    offerID,
		Provider:   purchase.ProviderMobileMoney,
		PaymentRef: paymentRef,
		Amount:     float64(check.Amount) / 100,
		Currency:   currency,
		Status:     "succeeded",
		Metadata:   metadata,
	}); err != nil {
		return nil, err
	}

	return &HandleMobileMoneyCallbackResult{}, nil
}
