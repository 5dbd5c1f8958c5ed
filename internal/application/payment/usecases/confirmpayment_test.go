package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/shared/logger"
)

func newConfirmFixture(gateway *mockCardGateway, entitlements *mockEntitlementRepository) *ConfirmPaymentUseCase {
	settle := NewSettlePurchaseUseCase(&mockPurchaseRepository{}, entitlements, logger.NewLogger())
	return NewConfirmPaymentUseCase(gateway, settle, logger.NewLogger())
}

func TestConfirmPayment_PendingIntentIsNotAnError(t *testing.T) {
	gateway := &mockCardGateway{
		RetrievePaymentIntentFunc: func(ctx context.Context, id string) (*paymentgw.PaymentIntent, error) {
			return &paymentgw.PaymentIntent{ID: id, Status: "requires_payment_method"}, nil
		},
	}
	entitlements := &mockEntitlementRepository{}
	uc := newConfirmFixture(gateway, entitlements)

	result, err := uc.Execute(context.Background(), ConfirmPaymentCommand{
		SessionID:       "session-1",
		PaymentIntentID: "pi_123",
	})

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "requires_payment_method", result.Status)
	assert.Equal(t, "Le rituel n'est pas termine.", result.Message)
	assert.Empty(t, entitlements.grants)
}

func TestConfirmPayment_SucceededSettles(t *testing.T) {
	gateway := &mockCardGateway{
		RetrievePaymentIntentFunc: func(ctx context.Context, id string) (*paymentgw.PaymentIntent, error) {
			return &paymentgw.PaymentIntent{
				ID:             id,
				Status:         "succeeded",
				Amount:         49,
				AmountReceived: 49,
				Currency:       "eur",
				Metadata: map[string]string{
					"session_id": "metadata-session",
					"offer_id":   "paper_parchment",
				},
			}, nil
		},
	}
	entitlements := &mockEntitlementRepository{}
	uc := newConfirmFixture(gateway, entitlements)

	result, err := uc.Execute(context.Background(), ConfirmPaymentCommand{
		SessionID:       "request-session",
		PaymentIntentID: "pi_123",
	})

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "C'est fait.", result.Message)
	require.NotNil(t, result.Purchase)
	assert.Equal(t, "paper_parchment", result.Purchase.OfferID)

	// The intent's metadata session wins over the caller's.
	require.Len(t, entitlements.grants, 1)
	assert.Equal(t, "metadata-session", entitlements.grants[0].sessionID)
}

func TestConfirmPayment_FallsBackToRequestSession(t *testing.T) {
	gateway := &mockCardGateway{
		RetrievePaymentIntentFunc: func(ctx context.Context, id string) (*paymentgw.PaymentIntent, error) {
			return &paymentgw.PaymentIntent{
				ID:       id,
				Status:   "succeeded",
				Amount:   49,
				Metadata: map[string]string{"offer_id": "paper_parchment"},
			}, nil
		},
	}
	entitlements := &mockEntitlementRepository{}
	uc := newConfirmFixture(gateway, entitlements)

	result, err := uc.Execute(context.Background(), ConfirmPaymentCommand{
		SessionID:       "request-session",
		PaymentIntentID: "pi_123",
	})

	require.NoError(t, err)
	assert.True(t, result.OK)
	require.Len(t, entitlements.grants, 1)
	assert.Equal(t, "request-session", entitlements.grants[0].sessionID)
}
