// Package secret contains the secret exchange aggregates and their
// lifecycle rules: creation, random delivery, the single allowed reply,
// release back to the pool and reply withdrawal.
package secret

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voidlabs/void/internal/shared/errors"
)

// Secret is the central aggregate: one anonymous text submission.
// A reply is itself a restricted secret row (is_reply=true) pointing at its
// parent; the reply endpoint only ever attaches to non-reply secrets.
type Secret struct {
	id                string
	content           string
	authorSessionID   *string
	isReply           bool
	parentSecretID    *string
	isDelivered       bool
	deliveredAt       *time.Time
	receiverSessionID *string
	replyCount        int
	deliverAfter      *time.Time
	isSealed          bool
	sealType          *string
	paperID           *string
	inkEffect         *string
	createdAt         time.Time
}

// CreateOptions carries the optional attributes of a new secret.
type CreateOptions struct {
	DeliverAfter *time.Time
	IsSealed     bool
	SealType     *string
	PaperID      *string
	InkEffect    *string
}

// NewSecret creates a secret from already-sanitized content. Content length
// against the effective limit is validated by the caller since the limit
// depends on the author's entitlements.
func NewSecret(authorSessionID string, content string, opts CreateOptions) (*Secret, error) {
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if authorSessionID == "" {
		return nil, fmt.Errorf("author session ID is required")
	}
	if opts.DeliverAfter != nil && !opts.DeliverAfter.After(time.Now()) {
		return nil, fmt.Errorf("deliver after must be in the future")
	}

	author := authorSessionID
	return &Secret{
		id:              uuid.NewString(),
		content:         content,
		authorSessionID: &author,
		deliverAfter:    opts.DeliverAfter,
		isSealed:        opts.IsSealed,
		sealType:        opts.SealType,
		paperID:         opts.PaperID,
		inkEffect:       opts.InkEffect,
		createdAt:       time.Now(),
	}, nil
}

// ReconstructSecret rebuilds a secret from persistence.
func ReconstructSecret(
	id string,
	content string,
	authorSessionID *string,
	isReply bool,
	parentSecretID *string,
	isDelivered bool,
	deliveredAt *time.Time,
	receiverSessionID *string,
	replyCount int,
	deliverAfter *time.Time,
	isSealed bool,
	sealType *string,
	paperID *string,
	inkEffect *string,
	createdAt time.Time,
) (*Secret, error) {
	if id == "" {
		return nil, fmt.Errorf("secret ID cannot be empty")
	}
	return &Secret{
		id:                id,
		content:           content,
		authorSessionID:   authorSessionID,
		isReply:           isReply,
		parentSecretID:    parentSecretID,
		isDelivered:       isDelivered,
		deliveredAt:       deliveredAt,
		receiverSessionID: receiverSessionID,
		replyCount:        replyCount,
		deliverAfter:      deliverAfter,
		isSealed:          isSealed,
		sealType:          sealType,
		paperID:           paperID,
		inkEffect:         inkEffect,
		createdAt:         createdAt,
	}, nil
}

func (s *Secret) ID() string                  { return s.id }
func (s *Secret) Content() string             { return s.content }
func (s *Secret) AuthorSessionID() *string    { return s.authorSessionID }
func (s *Secret) IsReply() bool               { return s.isReply }
func (s *Secret) ParentSecretID() *string     { return s.parentSecretID }
func (s *Secret) IsDelivered() bool           { return s.isDelivered }
func (s *Secret) DeliveredAt() *time.Time     { return s.deliveredAt }
func (s *Secret) ReceiverSessionID() *string  { return s.receiverSessionID }
func (s *Secret) ReplyCount() int             { return s.replyCount }
func (s *Secret) DeliverAfter() *time.Time    { return s.deliverAfter }
func (s *Secret) IsSealed() bool              { return s.isSealed }
func (s *Secret) SealType() *string           { return s.sealType }
func (s *Secret) PaperID() *string            { return s.paperID }
func (s *Secret) InkEffect() *string          { return s.inkEffect }
func (s *Secret) CreatedAt() time.Time        { return s.createdAt }

// IsAuthoredBy reports whether sessionID recorded this secret.
func (s *Secret) IsAuthoredBy(sessionID string) bool {
	return s.authorSessionID != nil && *s.authorSessionID == sessionID
}

// IsHeldBy reports whether sessionID is the current delivery holder.
func (s *Secret) IsHeldBy(sessionID string) bool {
	return s.isDelivered && s.receiverSessionID != nil && *s.receiverSessionID == sessionID
}

// CanReceiveReplyFrom validates the reply preconditions that do not require
// storage-level atomicity. The quota itself is enforced atomically by the
// repository; this catches the deterministic rejections first.
func (s *Secret) CanReceiveReplyFrom(sessionID string) error {
	if s.isReply {
		return errors.NewNotFoundError("Secret not found.")
	}
	if s.IsAuthoredBy(sessionID) {
		return errors.NewForbiddenError("You cannot reply to your own secret.")
	}
	return nil
}
