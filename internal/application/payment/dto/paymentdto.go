// Package dto holds the payment API response shapes.
package dto

import "time"

// OfferingDTO mirrors the catalog entry shown to the client.
type OfferingDTO struct {
	ID           string `json:"id"`
	FeatureType  string `json:"featureType"`
	Label        string `json:"label"`
	AmountCents  int64  `json:"amountCents"`
	DurationDays int    `json:"durationDays,omitempty"`
}

// RitualCopy is the client-facing confirmation text.
type RitualCopy struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// CreatePaymentIntentResponse is the started payment. Card payments carry
// the intent and checkout fields; mobile money carries the transaction id
// and hosted payment page.
type CreatePaymentIntentResponse struct {
	PaymentIntentID string      `json:"paymentIntentId,omitempty"`
	ClientSecret    string      `json:"clientSecret,omitempty"`
	CheckoutURL     string      `json:"checkoutUrl,omitempty"`
	TransactionID   string      `json:"transactionId,omitempty"`
	PaymentURL      string      `json:"paymentUrl,omitempty"`
	Offer           OfferingDTO `json:"offer"`
	Copy            RitualCopy  `json:"copy"`
}

// PurchaseDTO is one settled purchase.
type PurchaseDTO struct {
	ID          string     `json:"id"`
	FeatureType string     `json:"feature_type"`
	OfferID     string     `json:"offer_id"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// ConfirmPaymentResponse reports a confirmation attempt. A pending provider
// status comes back with OK false and the provider's status string.
type ConfirmPaymentResponse struct {
	OK       bool         `json:"ok"`
	Status   string       `json:"status,omitempty"`
	Message  string       `json:"message"`
	Purchase *PurchaseDTO `json:"purchase,omitempty"`
}

// PaymentHistoryResponse is the session's purchase history.
type PaymentHistoryResponse struct {
	Items []PurchaseDTO `json:"items"`
}
