package secret

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voidlabs/void/internal/shared/errors"
)

// Reply is the single permitted response to a secret. At most one live reply
// per (secret, author) pair exists; withdrawal soft-deletes the row and never
// returns the consumed quota.
type Reply struct {
	id              string
	secretID        string
	content         string
	authorSessionID string
	deletedAt       *time.Time
	createdAt       time.Time
}

// NewReply creates a reply from already-sanitized content.
func NewReply(secretID, authorSessionID, content string) (*Reply, error) {
	if secretID == "" {
		return nil, fmt.Errorf("secret ID is required")
	}
	if authorSessionID == "" {
		return nil, fmt.Errorf("author session ID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}

	return &Reply{
		id:              uuid.NewString(),
		secretID:        secretID,
		content:         content,
		authorSessionID: authorSessionID,
		createdAt:       time.Now(),
	}, nil
}

// ReconstructReply rebuilds a reply from persistence.
func ReconstructReply(id, secretID, content, authorSessionID string, deletedAt *time.Time, createdAt time.Time) (*Reply, error) {
	if id == "" {
		return nil, fmt.Errorf("reply ID cannot be empty")
	}
	return &Reply{
		id:              id,
		secretID:        secretID,
		content:         content,
		authorSessionID: authorSessionID,
		deletedAt:       deletedAt,
		createdAt:       createdAt,
	}, nil
}

func (r *Reply) ID() string              { return r.id }
func (r *Reply) SecretID() string        { return r.secretID }
func (r *Reply) Content() string         { return r.content }
func (r *Reply) AuthorSessionID() string { return r.authorSessionID }
func (r *Reply) DeletedAt() *time.Time   { return r.deletedAt }
func (r *Reply) CreatedAt() time.Time    { return r.createdAt }

// CheckWithdrawableBy validates withdrawal by sessionID at the given instant.
// Each rejection is a distinct observable condition: not owner, already
// withdrawn, or outside the grace window.
func (r *Reply) CheckWithdrawableBy(sessionID string, now time.Time, grace time.Duration) error {
	if r.authorSessionID != sessionID {
		return errors.NewForbiddenError("Access denied.")
	}
	if r.deletedAt != nil {
		return errors.NewConflictError("Reply already deleted.")
	}
	if now.Sub(r.createdAt) > grace {
		return errors.NewConflictError("Grace window expired.")
	}
	return nil
}

// Withdraw soft-deletes the reply. The parent's reply count is deliberately
// left untouched: withdrawal removes visibility, not the consumed quota.
func (r *Reply) Withdraw(at time.Time) error {
	if r.deletedAt != nil {
		return errors.NewConflictError("Reply already deleted.")
	}
	r.deletedAt = &at
	return nil
}
