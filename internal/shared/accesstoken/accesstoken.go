// Package accesstoken implements the signed echo access token that grants
// reply-list access to bearers outside the author's session, e.g. a push
// notification link opened on another device.
//
// Token format: base64url(payload) + "." + base64url(HMAC-SHA256(secret, encoded payload))
// The payload carries the secret id and a unix expiry.
package accesstoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

type payload struct {
	SecretID string `json:"secretId"`
	Exp      int64  `json:"exp"`
}

// Service handles generation and verification of echo access tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service with the given signing secret and token lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate mints a token scoped to the given secret id.
func (s *Service) Generate(secretID string) (string, error) {
	p := payload{
		SecretID: secretID,
		Exp:      time.Now().Add(s.ttl).Unix(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	payloadPart := base64.RawURLEncoding.EncodeToString(raw)
	return payloadPart + "." + s.sign(payloadPart), nil
}

// Verify reports whether token is a valid, unexpired grant for expectedSecretID.
func (s *Service) Verify(token, expectedSecretID string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}

	payloadPart, signaturePart := parts[0], parts[1]
	expected := s.sign(payloadPart)
	if !hmac.Equal([]byte(signaturePart), []byte(expected)) {
		return false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return false
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return false
	}
	if p.SecretID != expectedSecretID {
		return false
	}
	return p.Exp >= time.Now().Unix()
}

// sign computes the signature over the encoded payload, not the raw JSON.
func (s *Service) sign(encodedPayload string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
