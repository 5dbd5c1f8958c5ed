package usecases

import (
	"context"

	"github.com/voidlabs/void/internal/application/payment/dto"
	"github.com/voidlabs/void/internal/domain/purchase"
	"github.com/voidlabs/void/internal/shared/logger"
)

// historyLimit caps the purchase listing.
const historyLimit = 100

type PaymentHistoryQuery struct {
	SessionID string
}

type PaymentHistoryUseCase struct {
	purchaseRepo purchase.Repository
	logger       logger.Interface
}

func NewPaymentHistoryUseCase(purchaseRepo purchase.Repository, logger logger.Interface) *PaymentHistoryUseCase {
	return &PaymentHistoryUseCase{
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

func (uc *PaymentHistoryUseCase) Execute(ctx context.Context, query PaymentHistoryQuery) (*dto.PaymentHistoryResponse, error) {
	purchases, err := uc.purchaseRepo.ListBySession(ctx, query.SessionID, historyLimit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PurchaseDTO, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, dto.PurchaseDTO{
			ID:          p.ID(),
			FeatureType: p.FeatureType(),
			OfferID:     p.OfferID(),
			Amount:      p.Amount(),
			Currency:    p.Currency(),
			CreatedAt:   p.CreatedAt(),
			ExpiresAt:   p.ExpiresAt(),
		})
	}

	return &dto.PaymentHistoryResponse{Items: items}, nil
}
