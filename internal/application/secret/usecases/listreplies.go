package usecases

import (
	"context"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/accesstoken"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type ListRepliesQuery struct {
	SessionID   string
	SecretID    string
	AccessToken string
}

type ListRepliesUseCase struct {
	secretRepo secret.Repository
	replyRepo  secret.ReplyRepository
	tokens     *accesstoken.Service
	logger     logger.Interface
}

func NewListRepliesUseCase(
	secretRepo secret.Repository,
	replyRepo secret.ReplyRepository,
	tokens *accesstoken.Service,
	logger logger.Interface,
) *ListRepliesUseCase {
	return &ListRepliesUseCase{
		secretRepo: secretRepo,
		replyRepo:  replyRepo,
		tokens:     tokens,
		logger:     logger,
	}
}

// Execute lists live replies for a secret. Access is the author's session or
// a signed access token minted for the notification link.
func (uc *ListRepliesUseCase) Execute(ctx context.Context, query ListRepliesQuery) (*dto.ReplyListResponse, error) {
	s, err := uc.secretRepo.GetByID(ctx, query.SecretID)
	if err != nil {
		return nil, err
	}

	if !s.IsAuthoredBy(query.SessionID) {
		if query.AccessToken == "" || !uc.tokens.Verify(query.AccessToken, query.SecretID) {
			return nil, errors.NewForbiddenError("Access denied.")
		}
	}

	replies, err := uc.replyRepo.ListBySecret(ctx, query.SecretID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReplyListItem, 0, len(replies))
	for _, r := range replies {
		items = append(items, dto.ReplyListItem{
			ID:        r.ID(),
			Content:   r.Content(),
			CreatedAt: r.CreatedAt(),
		})
	}

	return &dto.ReplyListResponse{
		SecretID: query.SecretID,
		Replies:  items,
	}, nil
}
