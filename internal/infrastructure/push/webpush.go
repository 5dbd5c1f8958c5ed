// Package push delivers one-shot reply notifications: web push when the
// stored token is a browser subscription, a webhook relay otherwise.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/voidlabs/void/internal/shared/config"
	"github.com/voidlabs/void/internal/shared/logger"
)

// Payload is the notification content shown to the author.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Sender attempts delivery to an opaque push token. A false return means no
// channel accepted the notification; the caller must not consume the token.
type Sender interface {
	Send(ctx context.Context, pushToken string, payload Payload) bool
}

type subscriptionPayload struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// WebPushSender sends through the web push protocol with VAPID auth, falling
// back to the configured webhook relay for tokens that are not subscriptions
// or when push delivery fails.
type WebPushSender struct {
	pushCfg    *config.PushConfig
	webhookURL string
	client     *http.Client
	logger     logger.Interface
}

// NewWebPushSender creates a sender from the push and echo configuration.
func NewWebPushSender(pushCfg *config.PushConfig, webhookURL string, logger logger.Interface) *WebPushSender {
	return &WebPushSender{
		pushCfg:    pushCfg,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (s *WebPushSender) Send(ctx context.Context, pushToken string, payload Payload) bool {
	if sub := parseSubscription(pushToken); sub != nil {
		if s.sendWebPush(ctx, sub, payload) {
			return true
		}
	}
	return s.sendRelay(ctx, pushToken, payload)
}

// parseSubscription returns nil when the token is not a serialized web-push
// subscription; such tokens go straight to the relay.
func parseSubscription(token string) *subscriptionPayload {
	var sub subscriptionPayload
	if err := json.Unmarshal([]byte(token), &sub); err != nil {
		return nil
	}
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return nil
	}
	return &sub
}

func (s *WebPushSender) sendWebPush(ctx context.Context, sub *subscriptionPayload, payload Payload) bool {
	if s.pushCfg.VAPIDPublicKey == "" || s.pushCfg.VAPIDPrivateKey == "" || s.pushCfg.VAPIDSubject == "" {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.pushCfg.VAPIDSubject,
		VAPIDPublicKey:  s.pushCfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.pushCfg.VAPIDPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		s.logger.Warnw("web push delivery failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warnw("web push rejected", "status", resp.StatusCode)
		return false
	}
	return true
}

func (s *WebPushSender) sendRelay(ctx context.Context, pushToken string, payload Payload) bool {
	if s.webhookURL == "" {
		return false
	}

	body, err := json.Marshal(struct {
		Token string `json:"token"`
		Payload
	}{Token: pushToken, Payload: payload})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warnw("relay delivery failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warnw("relay rejected", "status", resp.StatusCode)
		return false
	}
	return true
}

var _ Sender = (*WebPushSender)(nil)
