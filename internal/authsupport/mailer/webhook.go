package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/authsupport"
)

// WebhookMailer posts messages to an email automation webhook (n8n), which
// renders and sends the actual email.
type WebhookMailer struct {
	url    string
	client *http.Client
}

func NewWebhookMailer(url string, timeout time.Duration) *WebhookMailer {
	return &WebhookMailer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (m *WebhookMailer) Send(ctx context.Context, msg authsupport.Message) error {
	if m.url == "" {
		return fmt.Errorf("%w: webhook url not configured", authsupport.ErrDelivery)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", authsupport.ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: webhook returned status %d", authsupport.ErrDelivery, resp.StatusCode)
	}
	return nil
}
