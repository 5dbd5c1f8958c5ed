package secret

import (
	"context"
	"time"
)

// Repository persists secrets and owns the storage-level atomicity contracts:
// pull-and-mark-delivered and release are single conditional statements, never
// select-then-update round trips.
type Repository interface {
	Create(ctx context.Context, s *Secret) error
	GetByID(ctx context.Context, id string) (*Secret, error)

	// HasRecentDuplicate reports whether any secret with exactly this content
	// was created at or after the given instant.
	HasRecentDuplicate(ctx context.Context, content string, since time.Time) (bool, error)

	// PullNext atomically selects one eligible secret for the receiver and
	// marks it delivered. Eligible: not authored by the receiver, not
	// currently delivered, not a reply, not scheduled for the future.
	// Returns (nil, nil) when the pool is empty.
	PullNext(ctx context.Context, receiverSessionID string) (*Secret, error)

	// Release clears the delivery fields if and only if the secret is
	// currently held by holderSessionID. Returns false when no row matched.
	Release(ctx context.Context, secretID, holderSessionID string) (bool, error)
}

// ReplyRepository persists replies. Insertion and the parent's reply quota
// check happen in one transaction so concurrent replies cannot race past the
// one-reply limit.
type ReplyRepository interface {
	// CreateWithQuota inserts the reply and increments the parent's reply
	// count, failing with a conflict error when the quota is already consumed
	// or the author already has a live reply on this secret, and with a
	// not-found error when the parent does not exist.
	CreateWithQuota(ctx context.Context, r *Reply, maxReplies int) error

	GetByID(ctx context.Context, id string) (*Reply, error)

	// SoftDelete sets deleted_at. The parent's reply count is not decremented.
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error

	// ListBySecret returns live replies ordered by creation time ascending.
	ListBySecret(ctx context.Context, secretID string) ([]*Reply, error)
}
