package usecases

import (
	"context"
	"time"

	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/domain/notification"
	"github.com/voidlabs/void/internal/domain/secret"
)

type mockSecretRepository struct {
	CreateFunc             func(ctx context.Context, s *secret.Secret) error
	GetByIDFunc            func(ctx context.Context, id string) (*secret.Secret, error)
	HasRecentDuplicateFunc func(ctx context.Context, content string, since time.Time) (bool, error)
	PullNextFunc           func(ctx context.Context, receiverSessionID string) (*secret.Secret, error)
	ReleaseFunc            func(ctx context.Context, id, holderSessionID string) (bool, error)
}

func (m *mockSecretRepository) Create(ctx context.Context, s *secret.Secret) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockSecretRepository) GetByID(ctx context.Context, id string) (*secret.Secret, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSecretRepository) HasRecentDuplicate(ctx context.Context, content string, since time.Time) (bool, error) {
	if m.HasRecentDuplicateFunc != nil {
		return m.HasRecentDuplicateFunc(ctx, content, since)
	}
	return false, nil
}

func (m *mockSecretRepository) PullNext(ctx context.Context, receiverSessionID string) (*secret.Secret, error) {
	if m.PullNextFunc != nil {
		return m.PullNextFunc(ctx, receiverSessionID)
	}
	return nil, nil
}

func (m *mockSecretRepository) Release(ctx context.Context, id, holderSessionID string) (bool, error) {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, id, holderSessionID)
	}
	return false, nil
}

type mockReplyRepository struct {
	CreateWithQuotaFunc func(ctx context.Context, r *secret.Reply, maxReplies int) error
	GetByIDFunc         func(ctx context.Context, id string) (*secret.Reply, error)
	SoftDeleteFunc      func(ctx context.Context, id string, deletedAt time.Time) error
	ListBySecretFunc    func(ctx context.Context, secretID string) ([]*secret.Reply, error)
}

func (m *mockReplyRepository) CreateWithQuota(ctx context.Context, r *secret.Reply, maxReplies int) error {
	if m.CreateWithQuotaFunc != nil {
		return m.CreateWithQuotaFunc(ctx, r, maxReplies)
	}
	return nil
}

func (m *mockReplyRepository) GetByID(ctx context.Context, id string) (*secret.Reply, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReplyRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, deletedAt)
	}
	return nil
}

func (m *mockReplyRepository) ListBySecret(ctx context.Context, secretID string) ([]*secret.Reply, error) {
	if m.ListBySecretFunc != nil {
		return m.ListBySecretFunc(ctx, secretID)
	}
	return nil, nil
}

type mockGate struct {
	ResolveLongLetterLimitFunc func(ctx context.Context, sessionID string) (int, error)
	HasActiveEntitlementFunc   func(ctx context.Context, sessionID string, feature entitlement.FeatureType) (bool, error)
}

func (m *mockGate) ResolveLongLetterLimit(ctx context.Context, sessionID string) (int, error) {
	if m.ResolveLongLetterLimitFunc != nil {
		return m.ResolveLongLetterLimitFunc(ctx, sessionID)
	}
	return 300, nil
}

func (m *mockGate) HasActiveEntitlement(ctx context.Context, sessionID string, feature entitlement.FeatureType) (bool, error) {
	if m.HasActiveEntitlementFunc != nil {
		return m.HasActiveEntitlementFunc(ctx, sessionID, feature)
	}
	return false, nil
}

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

type mockNotifier struct {
	notified chan string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notified: make(chan string, 1)}
}

func (m *mockNotifier) Notify(ctx context.Context, secretID string) {
	select {
	case m.notified <- secretID:
	default:
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
