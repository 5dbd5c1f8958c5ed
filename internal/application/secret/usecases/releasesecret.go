package usecases

import (
	"context"

	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

type ReleaseSecretCommand struct {
	SessionID string
	SecretID  string
}

type ReleaseSecretUseCase struct {
	secretRepo secret.Repository
	logger     logger.Interface
}

func NewReleaseSecretUseCase(secretRepo secret.Repository, logger logger.Interface) *ReleaseSecretUseCase {
	return &ReleaseSecretUseCase{
		secretRepo: secretRepo,
		logger:     logger,
	}
}

// Execute puts a held secret back in the pool. The conditional update is the
// whole ownership check: a non-holder and a missing secret are the same
// observable outcome.
func (uc *ReleaseSecretUseCase) Execute(ctx context.Context, cmd ReleaseSecretCommand) error {
	released, err := uc.secretRepo.Release(ctx, cmd.SecretID, cmd.SessionID)
	if err != nil {
		return err
	}
	if !released {
		return errors.NewNotFoundError("Secret not found or session mismatch.")
	}

	uc.logger.Infow("secret returned to pool", "id", cmd.SecretID)
	return nil
}
