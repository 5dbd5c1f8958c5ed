package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/application/secret/usecases"
	"github.com/voidlabs/void/internal/interfaces/http/middleware"
	"github.com/voidlabs/void/internal/shared/logger"
	"github.com/voidlabs/void/internal/shared/utils"
)

type (
	replyCreator interface {
		Execute(ctx context.Context, cmd usecases.ReplyToSecretCommand) (*dto.ReplyResponse, error)
	}
	replyWithdrawer interface {
		Execute(ctx context.Context, cmd usecases.WithdrawReplyCommand) error
	}
)

// ReplyHandler handles HTTP requests for replies
type ReplyHandler struct {
	replyUC    replyCreator
	withdrawUC replyWithdrawer
	logger     logger.Interface
}

// NewReplyHandler creates a new reply handler
func NewReplyHandler(replyUC replyCreator, withdrawUC replyWithdrawer, logger logger.Interface) *ReplyHandler {
	return &ReplyHandler{
		replyUC:    replyUC,
		withdrawUC: withdrawUC,
		logger:     logger,
	}
}

type replyRequest struct {
	Content *string `json:"content"`
}

// Create handles POST /secrets/:id/reply
func (h *ReplyHandler) Create(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.Content == nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "content must be a string.")
		return
	}

	result, err := h.replyUC.Execute(c.Request.Context(), usecases.ReplyToSecretCommand{
		SessionID: middleware.SessionID(c),
		SecretID:  c.Param("id"),
		Content:   *req.Content,
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusCreated, result)
}

// Withdraw handles DELETE /replies/:id
func (h *ReplyHandler) Withdraw(c *gin.Context) {
	err := h.withdrawUC.Execute(c.Request.Context(), usecases.WithdrawReplyCommand{
		SessionID: middleware.SessionID(c),
		ReplyID:   c.Param("id"),
	})
	if err != nil {
		utils.ErrorJSONFromError(c, err)
		return
	}

	utils.JSON(c, http.StatusOK, gin.H{"ok": true})
}
