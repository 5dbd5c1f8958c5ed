package usecases

import (
	"context"
	"time"

	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/domain/purchase"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
)

type mockPurchaseRepository struct {
	UpsertByPaymentRefFunc func(ctx context.Context, p *purchase.Purchase) (*purchase.Purchase, bool, error)
	ListBySessionFunc      func(ctx context.Context, sessionID string, limit int) ([]*purchase.Purchase, error)
}

func (m *mockPurchaseRepository) UpsertByPaymentRef(ctx context.Context, p *purchase.Purchase) (*purchase.Purchase, bool, error) {
	if m.UpsertByPaymentRefFunc != nil {
		return m.UpsertByPaymentRefFunc(ctx, p)
	}
	return p, true, nil
}

func (m *mockPurchaseRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*purchase.Purchase, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID, limit)
	}
	return nil, nil
}

type grantCall struct {
	kind       string
	sessionID  string
	detail     string
	purchaseID string
	expiresAt  *time.Time
}

type mockEntitlementRepository struct {
	grants  []grantCall
	voucher *entitlement.GiftVoucher
	err     error
}

func (m *mockEntitlementRepository) HighestLongLetterLimit(ctx context.Context, sessionID string) (int, error) {
	return 0, nil
}

func (m *mockEntitlementRepository) HasActive(ctx context.Context, sessionID string, feature entitlement.FeatureType) (bool, error) {
	return false, nil
}

func (m *mockEntitlementRepository) GrantLongLetter(ctx context.Context, sessionID string, maxChars int, purchaseID string, expiresAt *time.Time) error {
	m.grants = append(m.grants, grantCall{kind: "long_letter", sessionID: sessionID, purchaseID: purchaseID, expiresAt: expiresAt})
	return m.err
}

func (m *mockEntitlementRepository) UnlockPaper(ctx context.Context, sessionID, paperID, purchaseID string) error {
	m.grants = append(m.grants, grantCall{kind: "paper", sessionID: sessionID, detail: paperID, purchaseID: purchaseID})
	return m.err
}

func (m *mockEntitlementRepository) GrantInk(ctx context.Context, sessionID, inkEffect, purchaseID string) error {
	m.grants = append(m.grants, grantCall{kind: "ink", sessionID: sessionID, detail: inkEffect, purchaseID: purchaseID})
	return m.err
}

func (m *mockEntitlementRepository) GrantSeal(ctx context.Context, sessionID, sealType string, remainingUses int, purchaseID string, expiresAt *time.Time) error {
	m.grants = append(m.grants, grantCall{kind: "seal", sessionID: sessionID, detail: sealType, purchaseID: purchaseID, expiresAt: expiresAt})
	return m.err
}

func (m *mockEntitlementRepository) CreateGiftVoucher(ctx context.Context, voucher entitlement.GiftVoucher) error {
	m.voucher = &voucher
	m.grants = append(m.grants, grantCall{kind: "gift", sessionID: voucher.GiverSessionID, purchaseID: voucher.PurchaseID, expiresAt: voucher.ExpiresAt})
	return m.err
}

func (m *mockEntitlementRepository) GrantSanctuary(ctx context.Context, sessionID, tier, purchaseID string, expiresAt *time.Time) error {
	m.grants = append(m.grants, grantCall{kind: "sanctuary", sessionID: sessionID, detail: tier, purchaseID: purchaseID, expiresAt: expiresAt})
	return m.err
}

type mockCardGateway struct {
	CreatePaymentIntentFunc   func(ctx context.Context, params paymentgw.CreateIntentParams) (*paymentgw.PaymentIntent, error)
	RetrievePaymentIntentFunc func(ctx context.Context, id string) (*paymentgw.PaymentIntent, error)
	CreateCheckoutSessionFunc func(ctx context.Context, params paymentgw.CheckoutParams) (*paymentgw.CheckoutSession, error)
	VerifySignatureFunc       func(payload []byte, signatureHeader string) error
}

func (m *mockCardGateway) CreatePaymentIntent(ctx context.Context, params paymentgw.CreateIntentParams) (*paymentgw.PaymentIntent, error) {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}
	return &paymentgw.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

func (m *mockCardGateway) RetrievePaymentIntent(ctx context.Context, id string) (*paymentgw.PaymentIntent, error) {
	if m.RetrievePaymentIntentFunc != nil {
		return m.RetrievePaymentIntentFunc(ctx, id)
	}
	return &paymentgw.PaymentIntent{ID: id, Status: "succeeded"}, nil
}

func (m *mockCardGateway) CreateCheckoutSession(ctx context.Context, params paymentgw.CheckoutParams) (*paymentgw.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &paymentgw.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (m *mockCardGateway) VerifyWebhookSignature(payload []byte, signatureHeader string) error {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(payload, signatureHeader)
	}
	return nil
}

type mockMobileMoneyGateway struct {
	InitPaymentFunc  func(ctx context.Context, params paymentgw.MobileMoneyInitParams) (*paymentgw.MobileMoneyInitResult, error)
	CheckPaymentFunc func(ctx context.Context, transactionID string) (*paymentgw.MobileMoneyCheckResult, error)
}

func (m *mockMobileMoneyGateway) InitPayment(ctx context.Context, params paymentgw.MobileMoneyInitParams) (*paymentgw.MobileMoneyInitResult, error) {
	if m.InitPaymentFunc != nil {
		return m.InitPaymentFunc(ctx, params)
	}
	return &paymentgw.MobileMoneyInitResult{TransactionID: "void-test", PaymentURL: "https://pay.example/void-test"}, nil
}

func (m *mockMobileMoneyGateway) CheckPayment(ctx context.Context, transactionID string) (*paymentgw.MobileMoneyCheckResult, error) {
	if m.CheckPaymentFunc != nil {
		return m.CheckPaymentFunc(ctx, transactionID)
	}
	return &paymentgw.MobileMoneyCheckResult{Status: "ACCEPTED", TransactionID: transactionID}, nil
}
