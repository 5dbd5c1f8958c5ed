package usecases

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/domain/secret"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

func newEchoOptInFixture(t *testing.T, registrationRepo *mockRegistrationRepository) *EchoOptInUseCase {
	t.Helper()
	secretRepo := &mockSecretRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*secret.Secret, error) {
			return parentSecret(t, id, "author-1"), nil
		},
	}
	return NewEchoOptInUseCase(secretRepo, registrationRepo, logger.NewLogger())
}

func TestEchoOptInUseCase_SubscriptionPreferred(t *testing.T) {
	var gotToken string
	registrationRepo := &mockRegistrationRepository{
		UpsertFunc: func(ctx context.Context, reg *notification.PushRegistration) error {
			gotToken = *reg.PushToken()
			return nil
		},
	}
	uc := newEchoOptInFixture(t, registrationRepo)

	subscription := `{"endpoint":"https://push.example/abc","keys":{"p256dh":"k1","auth":"k2"}}`
	result, err := uc.Execute(context.Background(), EchoOptInCommand{
		SessionID:        "author-1",
		SecretID:         "secret-1",
		Enabled:          true,
		PushSubscription: json.RawMessage(subscription),
		PushToken:        "fallback-token",
	})

	require.NoError(t, err)
	assert.True(t, result.Enabled)
	assert.Equal(t, subscription, gotToken)
}

func TestEchoOptInUseCase_BareTokenFallback(t *testing.T) {
	var gotToken string
	registrationRepo := &mockRegistrationRepository{
		UpsertFunc: func(ctx context.Context, reg *notification.PushRegistration) error {
			gotToken = *reg.PushToken()
			return nil
		},
	}
	uc := newEchoOptInFixture(t, registrationRepo)

	result, err := uc.Execute(context.Background(), EchoOptInCommand{
		SessionID:        "author-1",
		SecretID:         "secret-1",
		Enabled:          true,
		PushSubscription: json.RawMessage("null"),
		PushToken:        "relay-token",
	})

	require.NoError(t, err)
	assert.True(t, result.Enabled)
	assert.Equal(t, "relay-token", gotToken)
}

func TestEchoOptInUseCase_MissingTokenRejected(t *testing.T) {
	uc := newEchoOptInFixture(t, &mockRegistrationRepository{})

	_, err := uc.Execute(context.Background(), EchoOptInCommand{
		SessionID: "author-1",
		SecretID:  "secret-1",
		Enabled:   true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestEchoOptInUseCase_OptOutDeletes(t *testing.T) {
	deleted := false
	registrationRepo := &mockRegistrationRepository{
		DeleteBySecretFunc: func(ctx context.Context, secretID string) error {
			deleted = true
			return nil
		},
	}
	uc := newEchoOptInFixture(t, registrationRepo)

	result, err := uc.Execute(context.Background(), EchoOptInCommand{
		SessionID: "author-1",
		SecretID:  "secret-1",
		Enabled:   false,
	})

	require.NoError(t, err)
	assert.False(t, result.Enabled)
	assert.True(t, deleted)
}

func TestEchoOptInUseCase_NonAuthorDenied(t *testing.T) {
	uc := newEchoOptInFixture(t, &mockRegistrationRepository{})

	_, err := uc.Execute(context.Background(), EchoOptInCommand{
		SessionID: "stranger",
		SecretID:  "secret-1",
		Enabled:   true,
		PushToken: "relay-token",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}
