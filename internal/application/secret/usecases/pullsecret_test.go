package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

func TestPullSecretUseCase_EmptyPool(t *testing.T) {
	repo := &mockSecretRepository{
		PullNextFunc: func(ctx context.Context, receiverSessionID string) (*secret.Secret, error) {
			return nil, nil
		},
	}
	uc := NewPullSecretUseCase(repo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), PullSecretQuery{SessionID: "session-1"})

	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Nil(t, result.Secret)
}

func TestPullSecretUseCase_HidesAuthor(t *testing.T) {
	repo := &mockSecretRepository{
		PullNextFunc: func(ctx context.Context, receiverSessionID string) (*secret.Secret, error) {
			return parentSecret(t, "secret-1", "author-1"), nil
		},
	}
	uc := NewPullSecretUseCase(repo, logger.NewLogger())

	result, err := uc.Execute(context.Background(), PullSecretQuery{SessionID: "receiver-1"})

	require.NoError(t, err)
	assert.False(t, result.Empty)
	require.NotNil(t, result.Secret)
	assert.Equal(t, "secret-1", result.Secret.ID)
	assert.Nil(t, result.Secret.AuthorSessionID)
}

func TestReleaseSecretUseCase_NotHolder(t *testing.T) {
	repo := &mockSecretRepository{
		ReleaseFunc: func(ctx context.Context, id, holderSessionID string) (bool, error) {
			return false, nil
		},
	}
	uc := NewReleaseSecretUseCase(repo, logger.NewLogger())

	err := uc.Execute(context.Background(), ReleaseSecretCommand{
		SessionID: "stranger",
		SecretID:  "secret-1",
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestReleaseSecretUseCase_Success(t *testing.T) {
	var gotID, gotHolder string
	repo := &mockSecretRepository{
		ReleaseFunc: func(ctx context.Context, id, holderSessionID string) (bool, error) {
			gotID, gotHolder = id, holderSessionID
			return true, nil
		},
	}
	uc := NewReleaseSecretUseCase(repo, logger.NewLogger())

	err := uc.Execute(context.Background(), ReleaseSecretCommand{
		SessionID: "receiver-1",
		SecretID:  "secret-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "secret-1", gotID)
	assert.Equal(t, "receiver-1", gotHolder)
}
