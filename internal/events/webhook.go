package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// WebhookNotifier delivers every event as a JSON POST to a single endpoint.
// Delivery is best-effort: a failed POST surfaces through the bus's joined
// error and is logged, never retried.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

type webhookPayload struct {
	Topic      string            `json:"topic"`
	OccurredAt time.Time         `json:"occurredAt"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Notify implements Notifier.
func (n WebhookNotifier) Notify(ctx context.Context, event Event) error {
	if n.URL == "" {
		return nil
	}
	body, err := json.Marshal(webhookPayload{
		Topic:      event.Topic,
		OccurredAt: event.OccurredAt,
		Fields:     event.Fields,
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = HTTPClient(0)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("deliver webhook: endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// HTTPClient returns an HTTP client configured for webhook delivery, with
// outbound requests traced.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
