// Package dto holds the response shapes for the secret exchange API. Field
// names match the persisted column names because the web client consumes
// them verbatim.
package dto

import "time"

// SecretResponse is a secret as returned from create and pull. The author
// session is only present on create (the author seeing their own secret);
// pulled secrets never reveal it.
type SecretResponse struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	IsReply         bool      `json:"is_reply"`
	ParentSecretID  *string   `json:"parent_secret_id"`
	IsSealed        bool      `json:"is_sealed"`
	SealType        *string   `json:"seal_type"`
	PaperID         *string   `json:"paper_id"`
	InkEffect       *string   `json:"ink_effect"`
	AuthorSessionID *string   `json:"author_session_id,omitempty"`
}

// ReplyResponse is a newly created reply.
type ReplyResponse struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	IsReply        bool      `json:"is_reply"`
	ParentSecretID string    `json:"parent_secret_id"`
}

// ReplyListItem is one reply in the author's reply listing.
type ReplyListItem struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReplyListResponse is the reply listing for one secret.
type ReplyListResponse struct {
	SecretID string          `json:"secretId"`
	Replies  []ReplyListItem `json:"replies"`
}
