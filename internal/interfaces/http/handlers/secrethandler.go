package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/application/secret/usecases"
	"github.com/voidlabs/void/internal/interfaces/http/middleware"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/utils"
)

// Usecase surfaces consumed by the secret handler, narrowed for testability.
type (
	secretCreator interface {
		Execute(ctx context.Context, cmd usecases.CreateSecretCommand) (*dto.SecretResponse, error)
	}
	secretPuller interface {
		Execute(ctx context.Context, query usecases.PullSecretQuery) (*usecases.PullSecretResult, error)
	}
	secretReleaser interface {
		Execute(ctx context.Context, cmd usecases.ReleaseSecretCommand) error
	}
	replyLister interface {
		Execute(ctx context.Context, query usecases.ListRepliesQuery) (*dto.ReplyListResponse, error)
	}
	echoOptIn interface {
		Execute(ctx context.Context, cmd usecases.EchoOptInCommand) (*usecases.EchoOptInResult, error)
	}
)

// SecretHandler handles HTTP requests for the secret exchange
type SecretHandler struct {
	createUC  secretCreator
	pullUC    secretPuller
	releaseUC secretReleaser
	listUC    replyLister
	optInUC   echoOptIn
	logger    logger.Interface
}

// NewSecretHandler creates a new secret handler
func NewSecretHandler(
	createUC secretCreator,
	pullUC secretPuller,
	releaseUC secretReleaser,
	listUC replyLister,
	optInUC echoOptIn,
	logger logger.Interface,
) *SecretHandler {
	return &SecretHandler{
		createUC:  createUC,
		pullUC:    pullUC,
		releaseUC: releaseUC,
		listUC:    listUC,
		optInUC:   optInUC,
		logger:    logger,
	}
}

type createSecretRequest struct {
	Content   *string `json:"content"`
	DeliverAt *string `json:"deliverAt"`
	IsSealed  bool    `json:"isSealed"`
	SealType  *string `json:"sealType"`
	PaperID   *string `json:"paperId"`
	InkEffect *string `json:"inkEffect"`
}

// Create handles POST /secrets
func (h *SecretHandler) Create(c *gin.Context) {
	var req createSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.Content == nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "content must be a string.")
		return
	}

	var deliverAt *time.Time
	if req.DeliverAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DeliverAt)
		if err != nil {
			utils.ErrorJSON(c, http.StatusBadRequest, "deliverAt is invalid.")
			return
		}
		deliverAt = &parsed
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSecretCommand{
		SessionID: middleware.SessionID(c),
		Content:   *req.Content,
		DeliverAt: deliverAt,
		IsSealed:  req.IsSealed,
		SealType:  req.SealType,
		PaperID:   req.PaperID,
		InkEffect: req.InkEffect,
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusCreated, result)
}

// Pull handles GET /secrets/random
func (h *SecretHandler) Pull(c *gin.Context) {
	result, err := h.pullUC.Execute(c.Request.Context(), usecases.PullSecretQuery{
		SessionID: middleware.SessionID(c),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	if result.Empty {
		utils.JSON(c, http.StatusOK, gin.H{
			"empty":   true,
			"message": "Le vide est silencieux.",
		})
		return
	}

	utils.JSON(c, http.StatusOK, result.Secret)
}

// Release handles POST /secrets/:id/release
func (h *SecretHandler) Release(c *gin.Context) {
	err := h.releaseUC.Execute(c.Request.Context(), usecases.ReleaseSecretCommand{
		SessionID: middleware.SessionID(c),
		SecretID:  c.Param("id"),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, gin.H{"ok": true})
}

// ListReplies handles GET /secrets/:id/replies
func (h *SecretHandler) ListReplies(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListRepliesQuery{
		SessionID:   middleware.SessionID(c),
		SecretID:    c.Param("id"),
		AccessToken: c.Query("t"),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, result)
}

type echoOptInRequest struct {
	Enabled          *bool           `json:"enabled"`
	PushToken        string          `json:"pushToken"`
	PushSubscription json.RawMessage `json:"pushSubscription"`
}

// EchoOptIn handles POST /secrets/:id/echo-opt-in
func (h *SecretHandler) EchoOptIn(c *gin.Context) {
	var req echoOptInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.Enabled == nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "enabled must be a boolean.")
		return
	}

	result, err := h.optInUC.Execute(c.Request.Context(), usecases.EchoOptInCommand{
		SessionID:        middleware.SessionID(c),
		SecretID:         c.Param("id"),
		Enabled:          *req.Enabled,
		PushSubscription: req.PushSubscription,
		PushToken:        req.PushToken,
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, gin.H{"ok": true, "enabled": result.Enabled})
}
