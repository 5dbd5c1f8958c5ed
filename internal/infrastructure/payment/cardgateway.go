// Package payment holds the provider clients: the hosted card gateway and
// the mobile money checkout API.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/logger"
)

// webhookTolerance bounds how stale a signed webhook timestamp may be.
const webhookTolerance = 5 * time.Minute

// PaymentIntent is the provider's intent object, reduced to the fields the
// settlement path reads.
type PaymentIntent struct {
	ID             string            `json:"id"`
	ClientSecret   string            `json:"client_secret"`
	Status         string            `json:"status"`
	Amount         int64             `json:"amount"`
	AmountReceived int64             `json:"amount_received"`
	Currency       string            `json:"currency"`
	Metadata       map[string]string `json:"metadata"`
}

// CheckoutSession is the provider's hosted checkout page.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateIntentParams carries the inputs for a new payment intent.
type CreateIntentParams struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// CheckoutParams carries the inputs for a hosted checkout session tied to an
// already-created intent's metadata.
type CheckoutParams struct {
	AmountCents int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CardGateway is the card provider surface the payment usecases depend on.
type CardGateway interface {
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)

	// VerifyWebhookSignature checks the signed-payload header
	// ("t=<unix>,v1=<hex>") against the raw body.
	VerifyWebhookSignature(payload []byte, signatureHeader string) error
}

// CardGatewayClient talks to the provider's form-encoded REST API.
type CardGatewayClient struct {
	cfg    *config.CardGatewayConfig
	client *http.Client
	logger logger.Interface
	now    func() time.Time
}

// NewCardGatewayClient creates a client from the card gateway configuration.
func NewCardGatewayClient(cfg *config.CardGatewayConfig, logger logger.Interface) *CardGatewayClient {
	return &CardGatewayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
		now:    time.Now,
	}
}

func (c *CardGatewayClient) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountCents, 10))
	form.Set("currency", params.Currency)
	form.Set("description", params.Description)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &intent); err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	c.logger.Infow("payment intent created", "intent_id", intent.ID, "amount", params.AmountCents)
	return &intent, nil
}

func (c *CardGatewayClient) RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, &intent); err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	return &intent, nil
}

func (c *CardGatewayClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("payment_intent_data[metadata][%s]", k), v)
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.logger.Infow("checkout session created", "session_id", session.ID)
	return &session, nil
}

// VerifyWebhookSignature validates "t=<unix>,v1=<hex>" where v1 is
// HMAC-SHA256(webhookSecret, "<t>.<payload>"). Any valid v1 entry passes;
// timestamps outside the tolerance fail even with a valid signature.
func (c *CardGatewayClient) VerifyWebhookSignature(payload []byte, signatureHeader string) error {
	var timestamp string
	var signatures []string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return fmt.Errorf("malformed webhook signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}
	age := c.now().Sub(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(c.cfg.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("webhook signature mismatch")
}

func (c *CardGatewayClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("card gateway error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("card gateway error (%d)", resp.StatusCode)
	}

	return json.Unmarshal(raw, out)
}

var _ CardGateway = (*CardGatewayClient)(nil)
