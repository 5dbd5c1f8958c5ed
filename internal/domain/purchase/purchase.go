// Package purchase models settled payments and the offering catalog.
package purchase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Provider identifies the payment provider a purchase settled through.
type Provider string

const (
	ProviderCard        Provider = "card"
	ProviderMobileMoney Provider = "mobile_money"
)

// Purchase records one settled payment, keyed by the provider's payment
// reference so redelivered webhooks upsert instead of double-granting.
type Purchase struct {
	id          string
	sessionID   string
	featureType string
	offerID     string
	amount      float64
	currency    string
	provider    Provider
	paymentRef  string
	status      string
	metadata    map[string]string
	expiresAt   *time.Time
	createdAt   time.Time
}

// NewPurchase creates a purchase record for a confirmed payment.
func NewPurchase(sessionID, featureType, offerID string, amount float64, currency string, provider Provider, paymentRef, status string, metadata map[string]string, expiresAt *time.Time) (*Purchase, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	if offerID == "" {
		return nil, fmt.Errorf("offer ID is required")
	}
	if paymentRef == "" {
		return nil, fmt.Errorf("payment reference is required")
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}

	return &Purchase{
		id:          uuid.NewString(),
		sessionID:   sessionID,
		featureType: featureType,
		offerID:     offerID,
		amount:      amount,
		currency:    currency,
		provider:    provider,
		paymentRef:  paymentRef,
		status:      status,
		metadata:    metadata,
		expiresAt:   expiresAt,
		createdAt:   time.Now(),
	}, nil
}

// ReconstructPurchase rebuilds a purchase from persistence.
func ReconstructPurchase(id, sessionID, featureType, offerID string, amount float64, currency string, provider Provider, paymentRef, status string, metadata map[string]string, expiresAt *time.Time, createdAt time.Time) (*Purchase, error) {
	if id == "" {
		return nil, fmt.Errorf("purchase ID cannot be empty")
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &Purchase{
		id:          id,
		sessionID:   sessionID,
		featureType: featureType,
		offerID:     offerID,
		amount:      amount,
		currency:    currency,
		provider:    provider,
		paymentRef:  paymentRef,
		status:      status,
		metadata:    metadata,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
	}, nil
}

func (p *Purchase) ID() string                 { return p.id }
func (p *Purchase) SessionID() string          { return p.sessionID }
func (p *Purchase) FeatureType() string        { return p.featureType }
func (p *Purchase) OfferID() string            { return p.offerID }
func (p *Purchase) Amount() float64            { return p.amount }
func (p *Purchase) Currency() string           { return p.currency }
func (p *Purchase) Provider() Provider         { return p.provider }
func (p *Purchase) PaymentRef() string         { return p.paymentRef }
func (p *Purchase) Status() string             { return p.status }
func (p *Purchase) Metadata() map[string]string { return p.metadata }
func (p *Purchase) ExpiresAt() *time.Time      { return p.expiresAt }
func (p *Purchase) CreatedAt() time.Time       { return p.createdAt }
