package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/logger"
)

// mobileMoneyMinAmount is the provider's floor per transaction.
const mobileMoneyMinAmount = 100

// MobileMoneyInitParams carries the inputs to start a mobile money checkout.
type MobileMoneyInitParams struct {
	AmountCents    int64
	Description    string
	Metadata       map[string]string
	Origin         string
	NotifyPath     string
	ReturnPath     string
	MobileOperator string
}

// MobileMoneyInitResult is the started checkout: our transaction reference
// and the provider's hosted payment page.
type MobileMoneyInitResult struct {
	TransactionID string
	PaymentURL    string
}

// MobileMoneyCheckResult is the provider's view of a transaction, fetched
// server-side on callback; the callback body itself is never trusted.
type MobileMoneyCheckResult struct {
	Status        string
	Amount        int64
	Currency      string
	Metadata      string
	TransactionID string
}

// MobileMoneyGateway is the mobile money surface the payment usecases depend on.
type MobileMoneyGateway interface {
	InitPayment(ctx context.Context, params MobileMoneyInitParams) (*MobileMoneyInitResult, error)
	CheckPayment(ctx context.Context, transactionID string) (*MobileMoneyCheckResult, error)
}

// MobileMoneyClient talks to the checkout provider's JSON API.
type MobileMoneyClient struct {
	cfg    *config.MobileMoneyConfig
	client *http.Client
	logger logger.Interface
}

// NewMobileMoneyClient creates a client from the mobile money configuration.
func NewMobileMoneyClient(cfg *config.MobileMoneyConfig, logger logger.Interface) *MobileMoneyClient {
	return &MobileMoneyClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// InitPayment starts a hosted checkout. The transaction id is minted here so
// the later callback can be correlated without trusting provider state.
func (c *MobileMoneyClient) InitPayment(ctx context.Context, params MobileMoneyInitParams) (*MobileMoneyInitResult, error) {
	transactionID := "void-" + uuid.NewString()

	amount := params.AmountCents
	if amount < mobileMoneyMinAmount {
		amount = mobileMoneyMinAmount
	}

	metadata := make(map[string]string, len(params.Metadata)+1)
	for k, v := range params.Metadata {
		metadata[k] = v
	}
	metadata["mobile_operator"] = params.MobileOperator
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	reqBody := map[string]interface{}{
		"apikey":         c.cfg.APIKey,
		"site_id":        c.cfg.SiteID,
		"transaction_id": transactionID,
		"amount":         amount,
		"currency":       c.cfg.Currency,
		"description":    params.Description,
		"notify_url":     params.Origin + params.NotifyPath,
		"return_url":     fmt.Sprintf("%s%s?ritual=done&provider=mobile_money&tx=%s", params.Origin, params.ReturnPath, transactionID),
		"channels":       "MOBILE_MONEY",
		"metadata":       string(metadataJSON),
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    struct {
			PaymentURL string `json:"payment_url"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/v2/payment", reqBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to init mobile money payment: %w", err)
	}
	if payload.Data.PaymentURL == "" {
		if payload.Message != "" {
			return nil, fmt.Errorf("mobile money init failed: %s", payload.Message)
		}
		return nil, fmt.Errorf("mobile money init failed")
	}

	c.logger.Infow("mobile money payment initialized", "transaction_id", transactionID)
	return &MobileMoneyInitResult{
		TransactionID: transactionID,
		PaymentURL:    payload.Data.PaymentURL,
	}, nil
}

// CheckPayment fetches the authoritative transaction state from the provider.
func (c *MobileMoneyClient) CheckPayment(ctx context.Context, transactionID string) (*MobileMoneyCheckResult, error) {
	reqBody := map[string]interface{}{
		"apikey":         c.cfg.APIKey,
		"site_id":        c.cfg.SiteID,
		"transaction_id": transactionID,
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Data    *struct {
			Status        string `json:"status"`
			Amount        int64  `json:"amount"`
			Currency      string `json:"currency"`
			Metadata      string `json:"metadata"`
			TransactionID string `json:"transaction_id"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/v2/payment/check", reqBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to check mobile money payment: %w", err)
	}
	if payload.Data == nil {
		if payload.Message != "" {
			return nil, fmt.Errorf("mobile money check failed: %s", payload.Message)
		}
		return nil, fmt.Errorf("mobile money check failed")
	}

	return &MobileMoneyCheckResult{
		Status:        payload.Data.Status,
		Amount:        payload.Data.Amount,
		Currency:      payload.Data.Currency,
		Metadata:      payload.Data.Metadata,
		TransactionID: payload.Data.TransactionID,
	}, nil
}

func (c *MobileMoneyClient) post(ctx context.Context, path string, body map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return nil
}

var _ MobileMoneyGateway = (*MobileMoneyClient)(nil)
