package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

func parentSecret(t *testing.T, id, author string) *secret.Secret {
	t.Helper()
	s, err := secret.ReconstructSecret(id, "a confession", strPtr(author),
		false, nil, true, timePtr(time.Now()), strPtr("receiver-1"),
		0, nil, false, nil, nil, nil, time.Now())
	require.NoError(t, err)
	return s
}

func TestReplyToSecretUseCase_Success(t *testing.T) {
	secretRepo := &mockSecretRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*secret.Secret, error) {
			return parentSecret(t, id, "author-1"), nil
		},
	}
	var gotMax int
	replyRepo := &mockReplyRepository{
		CreateWithQuotaFunc: func(ctx context.Context, r *secret.Reply, maxReplies int) error {
			gotMax = maxReplies
			return nil
		},
	}
	notifier := newMockNotifier()
	uc := NewReplyToSecretUseCase(secretRepo, replyRepo, notifier, secretTestConfig(), logger.NewLogger())

	result, err := uc.Execute(context.Background(), ReplyToSecretCommand{
		SessionID: "receiver-1",
		SecretID:  "secret-1",
		Content:   "you are not alone",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, gotMax)
	assert.True(t, result.IsReply)
	assert.Equal(t, "secret-1", result.ParentSecretID)

	select {
	case id := <-notifier.notified:
		assert.Equal(t, "secret-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never invoked")
	}
}

func TestReplyToSecretUseCase_SelfReplyForbidden(t *testing.T) {
	secretRepo := &mockSecretRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*secret.Secret, error) {
			return parentSecret(t, id, "author-1"), nil
		},
	}
	uc := NewReplyToSecretUseCase(secretRepo, &mockReplyRepository{}, newMockNotifier(), secretTestConfig(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ReplyToSecretCommand{
		SessionID: "author-1",
		SecretID:  "secret-1",
		Content:   "talking to myself",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestReplyToSecretUseCase_ReplyToReplyHidden(t *testing.T) {
	secretRepo := &mockSecretRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*secret.Secret, error) {
			s, err := secret.ReconstructSecret(id, "an echo", strPtr("author-1"),
				true, strPtr("parent-1"), false, nil, nil,
				0, nil, false, nil, nil, nil, time.Now())
			require.NoError(t, err)
			return s, nil
		},
	}
	uc := NewReplyToSecretUseCase(secretRepo, &mockReplyRepository{}, newMockNotifier(), secretTestConfig(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ReplyToSecretCommand{
		SessionID: "receiver-1",
		SecretID:  "reply-1",
		Content:   "echoing an echo",
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestReplyToSecretUseCase_QuotaConflictPropagates(t *testing.T) {
	secretRepo := &mockSecretRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*secret.Secret, error) {
			return parentSecret(t, id, "author-1"), nil
		},
	}
	replyRepo := &mockReplyRepository{
		CreateWithQuotaFunc: func(ctx context.Context, r *secret.Reply, maxReplies int) error {
			return errors.NewConflictError("This secret has already been answered.")
		},
	}
	notifier := newMockNotifier()
	uc := NewReplyToSecretUseCase(secretRepo, replyRepo, notifier, secretTestConfig(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ReplyToSecretCommand{
		SessionID: "receiver-2",
		SecretID:  "secret-1",
		Content:   "too late",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	select {
	case <-notifier.notified:
		t.Fatal("notifier must not fire when the reply was rejected")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReplyToSecretUseCase_EmptyContentRejected(t *testing.T) {
	uc := NewReplyToSecretUseCase(&mockSecretRepository{}, &mockReplyRepository{}, newMockNotifier(), secretTestConfig(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ReplyToSecretCommand{
		SessionID: "receiver-1",
		SecretID:  "secret-1",
		Content:   "<p></p>",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
