package webhook

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Signature header names, verified client-side against the shared secret
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderTimestamp = "X-Webhook-Timestamp"
	HeaderEventID   = "X-Webhook-Event-Id"
)

// Config holds webhook delivery configuration
type Config struct {
	// URL is the client endpoint events are POSTed to
	URL string
	// HexSecret is the hex-encoded shared secret used to sign payloads
	HexSecret string
}

// Notifier delivers HMAC-signed name-change events to a configured client
// endpoint. It satisfies messaging.Publisher, so it can stand beside the
// JetStream publisher behind a fan-out.
type Notifier struct {
	config     Config
	httpClient adapter.HTTPClient
}

// NewNotifier creates a webhook notifier for the given endpoint
func NewNotifier(config Config, httpClient adapter.HTTPClient) *Notifier {
	return &Notifier{
		config:     config,
		httpClient: httpClient,
	}
}

// PublishNameChangeEvent signs and delivers a lifecycle event. The event ID
// rides along in a header so clients can deduplicate retried deliveries.
func (n *Notifier) PublishNameChangeEvent(ctx context.Context, event *domain.NameChangeEvent) error {
	webhookEvent := Event{
		EventID:   event.EventID,
		EventType: EventTypeForStatus(event.Status),
		Timestamp: event.OccurredAt,
		Data: EventData{
			NameChangeID: event.NameChangeID,
			OldName:      event.OldName,
			NewName:      event.NewName,
			Status:       string(event.Status),
		},
	}

	payload, signature, timestamp, err := GenerateSignedPayload(n.config.HexSecret, webhookEvent)
	if err != nil {
		return fmt.Errorf("failed to sign webhook payload: %w", err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		HeaderSignature: signature,
		HeaderTimestamp: strconv.FormatInt(timestamp, 10),
		HeaderEventID:   event.EventID,
	}

	if _, err := n.httpClient.PostBytes(ctx, n.config.URL, payload, headers); err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}

	return nil
}

// Close is a no-op; the notifier holds no connection state
func (n *Notifier) Close() {}
