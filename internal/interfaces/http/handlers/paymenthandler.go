package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/application/payment/dto"
	"github.com/voidlabs/void/internal/application/payment/usecases"
	"github.com/voidlabs/void/internal/domain/purchase"
	"github.com/voidlabs/void/internal/interfaces/http/middleware"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/utils"
)

// cardSignatureHeader carries the provider's signed-payload header.
const cardSignatureHeader = "Stripe-Signature"

type (
	intentCreator interface {
		Execute(ctx context.Context, cmd usecases.CreatePaymentIntentCommand) (*dto.CreatePaymentIntentResponse, error)
	}
	paymentConfirmer interface {
		Execute(ctx context.Context, cmd usecases.ConfirmPaymentCommand) (*dto.ConfirmPaymentResponse, error)
	}
	cardWebhookHandler interface {
		Execute(ctx context.Context, cmd usecases.HandleCardWebhookCommand) error
	}
	mobileMoneyCallbackHandler interface {
		Execute(ctx context.Context, cmd usecases.HandleMobileMoneyCallbackCommand) (*usecases.HandleMobileMoneyCallbackResult, error)
	}
	historyLister interface {
		Execute(ctx context.Context, query usecases.PaymentHistoryQuery) (*dto.PaymentHistoryResponse, error)
	}
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	createIntentUC intentCreator
	confirmUC      paymentConfirmer
	webhookUC      cardWebhookHandler
	callbackUC     mobileMoneyCallbackHandler
	historyUC      historyLister
	logger         logger.Interface
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	createIntentUC intentCreator,
	confirmUC paymentConfirmer,
	webhookUC cardWebhookHandler,
	callbackUC mobileMoneyCallbackHandler,
	historyUC historyLister,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createIntentUC: createIntentUC,
		confirmUC:      confirmUC,
		webhookUC:      webhookUC,
		callbackUC:     callbackUC,
		historyUC:      historyUC,
		logger:         logger,
	}
}

type createIntentRequest struct {
	OfferID        *string `json:"offerId"`
	Provider       string  `json:"provider"`
	MobileOperator string  `json:"mobileOperator"`
}

// CreateIntent handles POST /payments/create-payment-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.OfferID == nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "offerId is required.")
		return
	}

	provider := purchase.ProviderCard
	if req.Provider == string(purchase.ProviderMobileMoney) {
		provider = purchase.ProviderMobileMoney
	}

	result, err := h.createIntentUC.Execute(c.Request.Context(), usecases.CreatePaymentIntentCommand{
		SessionID:      middleware.SessionID(c),
		OfferID:        *req.OfferID,
		Provider:       provider,
		MobileOperator: req.MobileOperator,
		Origin:         requestOrigin(c),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, result)
}

type confirmRequest struct {
	PaymentIntentID *string `json:"paymentIntentId"`
}

// Confirm handles POST /payments/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.PaymentIntentID == nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "paymentIntentId is required.")
		return
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmPaymentCommand{
		SessionID:       middleware.SessionID(c),
		PaymentIntentID: *req.PaymentIntentID,
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	if !result.OK {
		utils.JSON(c, http.StatusConflict, result)
		return
	}

	utils.JSON(c, http.StatusOK, result)
}

// Webhook handles POST /payments/webhook. The provider expects plain text
// acknowledgements, not the JSON error shape.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable payload")
		return
	}

	execErr := h.webhookUC.Execute(c.Request.Context(), usecases.HandleCardWebhookCommand{
		Payload:         payload,
		SignatureHeader: c.GetHeader(cardSignatureHeader),
	})
	if execErr != nil {
		if appErr := errors.GetAppError(execErr); appErr != nil {
			c.String(appErr.Code, appErr.Message)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to persist purchase")
		return
	}

	c.String(http.StatusOK, "ok")
}

// MobileMoneyCallback handles POST /payments/sinetpay/callback. The provider
// posts either JSON or a form body; both carry the transaction id.
func (h *PaymentHandler) MobileMoneyCallback(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable payload")
		return
	}

	transactionID := extractTransactionID(raw)
	if transactionID == "" {
		c.String(http.StatusBadRequest, "missing transaction id")
		return
	}

	result, execErr := h.callbackUC.Execute(c.Request.Context(), usecases.HandleMobileMoneyCallbackCommand{
		TransactionID: transactionID,
	})
	if execErr != nil {
		if appErr := errors.GetAppError(execErr); appErr != nil {
			c.String(appErr.Code, appErr.Message)
			return
		}
		c.String(http.StatusInternalServerError, "callback error")
		return
	}

	if result.Ignored {
		c.String(http.StatusOK, "ignored")
		return
	}
	c.String(http.StatusOK, "ok")
}

// History handles GET /payments/history
func (h *PaymentHandler) History(c *gin.Context) {
	result, err := h.historyUC.Execute(c.Request.Context(), usecases.PaymentHistoryQuery{
		SessionID: middleware.SessionID(c),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, result)
}

// extractTransactionID reads the transaction id from a JSON body, falling
// back to form encoding.
func extractTransactionID(raw []byte) string {
	var body struct {
		CpmTransID    string `json:"cpm_trans_id"`
		TransactionID string `json:"transaction_id"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.CpmTransID != "" {
			return strings.TrimSpace(body.CpmTransID)
		}
		if body.TransactionID != "" {
			return strings.TrimSpace(body.TransactionID)
		}
	}

	if strings.Contains(string(raw), "=") {
		if values, err := url.ParseQuery(string(raw)); err == nil {
			if id := values.Get("cpm_trans_id"); id != "" {
				return strings.TrimSpace(id)
			}
			return strings.TrimSpace(values.Get("transaction_id"))
		}
	}
	return ""
}

// requestOrigin reconstructs the external origin for provider redirect URLs.
func requestOrigin(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
			scheme = forwarded
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + c.Request.Host
}
