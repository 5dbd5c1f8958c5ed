package usecases

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/infrastructure/push"
	"github.com/voidlabs/void/internal/shared/accesstoken"
	"github.com/voidlabs/void/internal/shared/logger"
)

type mockRegistrationRepository struct {
	UpsertFunc         func(ctx context.Context, reg *notification.PushRegistration) error
	DeleteBySecretFunc func(ctx context.Context, secretID string) error
	GetConsumableFunc  func(ctx context.Context, secretID string) (*notification.PushRegistration, error)
	MarkConsumedFunc   func(ctx context.Context, id uint, at time.Time) error
}

func (m *mockRegistrationRepository) Upsert(ctx context.Context, reg *notification.PushRegistration) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, reg)
	}
	return nil
}

func (m *mockRegistrationRepository) DeleteBySecret(ctx context.Context, secretID string) error {
	if m.DeleteBySecretFunc != nil {
		return m.DeleteBySecretFunc(ctx, secretID)
	}
	return nil
}

func (m *mockRegistrationRepository) GetConsumable(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
	if m.GetConsumableFunc != nil {
		return m.GetConsumableFunc(ctx, secretID)
	}
	return nil, nil
}

func (m *mockRegistrationRepository) MarkConsumed(ctx context.Context, id uint, at time.Time) error {
	if m.MarkConsumedFunc != nil {
		return m.MarkConsumedFunc(ctx, id, at)
	}
	return nil
}

type mockSender struct {
	result  bool
	token   string
	payload push.Payload
	calls   int
}

func (m *mockSender) Send(ctx context.Context, pushToken string, payload push.Payload) bool {
	m.calls++
	m.token = pushToken
	m.payload = payload
	return m.result
}

func consumableRegistration(t *testing.T, secretID string) *notification.PushRegistration {
	t.Helper()
	token := "relay-token"
	reg, err := notification.ReconstructPushRegistration(7, secretID, &token, nil, time.Now(), time.Now())
	require.NoError(t, err)
	return reg
}

func TestNotifyFirstReply_ConsumesAfterDelivery(t *testing.T) {
	consumed := uint(0)
	repo := &mockRegistrationRepository{
		GetConsumableFunc: func(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
			return consumableRegistration(t, secretID), nil
		},
		MarkConsumedFunc: func(ctx context.Context, id uint, at time.Time) error {
			consumed = id
			return nil
		},
	}
	sender := &mockSender{result: true}
	tokens := accesstoken.NewService("test-secret", time.Hour)
	uc := NewNotifyFirstReplyUseCase(repo, sender, tokens, logger.NewLogger())

	uc.Notify(context.Background(), "secret-1")

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "relay-token", sender.token)
	assert.Equal(t, "VOID", sender.payload.Title)
	assert.Contains(t, sender.payload.URL, "/echo/secret-1?t=")
	assert.Equal(t, uint(7), consumed)
}

func TestNotifyFirstReply_KeepsRegistrationOnFailure(t *testing.T) {
	markCalled := false
	repo := &mockRegistrationRepository{
		GetConsumableFunc: func(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
			return consumableRegistration(t, secretID), nil
		},
		MarkConsumedFunc: func(ctx context.Context, id uint, at time.Time) error {
			markCalled = true
			return nil
		},
	}
	sender := &mockSender{result: false}
	tokens := accesstoken.NewService("test-secret", time.Hour)
	uc := NewNotifyFirstReplyUseCase(repo, sender, tokens, logger.NewLogger())

	uc.Notify(context.Background(), "secret-1")

	assert.Equal(t, 1, sender.calls)
	assert.False(t, markCalled, "registration must survive an undelivered notification")
}

func TestNotifyFirstReply_NoRegistrationIsANoop(t *testing.T) {
	repo := &mockRegistrationRepository{
		GetConsumableFunc: func(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
			return nil, nil
		},
	}
	sender := &mockSender{result: true}
	tokens := accesstoken.NewService("test-secret", time.Hour)
	uc := NewNotifyFirstReplyUseCase(repo, sender, tokens, logger.NewLogger())

	uc.Notify(context.Background(), "secret-1")

	assert.Zero(t, sender.calls)
}

func TestNotifyFirstReply_TokenGrantsReplyAccess(t *testing.T) {
	sender := &mockSender{result: true}
	repo := &mockRegistrationRepository{
		GetConsumableFunc: func(ctx context.Context, secretID string) (*notification.PushRegistration, error) {
			return consumableRegistration(t, secretID), nil
		},
	}
	tokens := accesstoken.NewService("test-secret", time.Hour)
	uc := NewNotifyFirstReplyUseCase(repo, sender, tokens, logger.NewLogger())

	uc.Notify(context.Background(), "secret-1")

	require.Equal(t, 1, sender.calls)
	// The link carries a token the reply listing endpoint accepts.
	rawToken := sender.payload.URL[len("/echo/secret-1?t="):]
	unescaped, err := url.QueryUnescape(rawToken)
	require.NoError(t, err)
	assert.True(t, tokens.Verify(unescaped, "secret-1"))
}
