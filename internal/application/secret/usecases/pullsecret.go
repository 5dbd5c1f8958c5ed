package usecases

import (
	"context"
	"fmt"

	"github.com/voidlabs/void/internal/application/secret/dto"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/logger"
)

type PullSecretQuery struct {
	SessionID string
}

// PullSecretResult reports one pull. Empty means the pool had nothing
// eligible for this session; that is a normal outcome, not an error.
type PullSecretResult struct {
	Empty  bool
	Secret *dto.SecretResponse
}

type PullSecretUseCase struct {
	secretRepo secret.Repository
	logger     logger.Interface
}

func NewPullSecretUseCase(secretRepo secret.Repository, logger logger.Interface) *PullSecretUseCase {
	return &PullSecretUseCase{
		secretRepo: secretRepo,
		logger:     logger,
	}
}

func (uc *PullSecretUseCase) Execute(ctx context.Context, query PullSecretQuery) (*PullSecretResult, error) {
	s, err := uc.secretRepo.PullNext(ctx, query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to pull secret: %w", err)
	}
	if s == nil {
		return &PullSecretResult{Empty: true}, nil
	}

	// The author's identity stays behind: the receiver only ever sees the
	// content and its cosmetics.
	return &PullSecretResult{
		Secret: &dto.SecretResponse{
			ID:             s.ID(),
			Content:        s.Content(),
			CreatedAt:      s.CreatedAt(),
			IsReply:        s.IsReply(),
			ParentSecretID: s.ParentSecretID(),
			IsSealed:       s.IsSealed(),
			SealType:       s.SealType(),
			PaperID:        s.PaperID(),
			InkEffect:      s.InkEffect(),
		},
	}, nil
}
