package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusflow/catalogue-api/pkg/jobs"
)

// Notifier announces lookup activity to an external channel. Delivery is
// best effort: implementations must never fail the primary request.
type Notifier interface {
	Notify(message string)
}

// WebhookNotifier posts lookup messages to a chat webhook through a
// background queue. Deliveries retry with backoff and are dropped, with a
// log line, once retries are exhausted.
type WebhookNotifier struct {
	url      string
	client   *http.Client
	queue    *jobs.Queue
	logger   *zap.Logger
	location *time.Location
}

// NewWebhookNotifier constructs a webhook notifier. An empty URL yields a
// disabled notifier whose Notify is a no-op.
func NewWebhookNotifier(url string, workers, maxRetries int, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	location, err := time.LoadLocation("America/Edmonton")
	if err != nil {
		location = time.UTC
	}
	n := &WebhookNotifier{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		location: location,
	}
	n.queue = jobs.NewQueue("notifier", n.deliver, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: maxRetries,
		Logger:     logger,
	})
	return n
}

// Start launches the delivery workers.
func (n *WebhookNotifier) Start(ctx context.Context) {
	if n.url == "" {
		return
	}
	n.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (n *WebhookNotifier) Stop() {
	if n.url == "" {
		return
	}
	n.queue.Stop()
}

// Notify queues a message for delivery. Failures to enqueue are logged and
// swallowed.
func (n *WebhookNotifier) Notify(message string) {
	if n == nil || n.url == "" {
		return
	}
	err := n.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Payload: message})
	if err != nil {
		n.logger.Warn("notification dropped", zap.Error(err))
	}
}

func (n *WebhookNotifier) deliver(ctx context.Context, job jobs.Job) error {
	message, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	stamp := time.Now().In(n.location).Format("2006-01-02 03:04:05 PM")
	body, err := json.Marshal(map[string]string{
		"content": "**" + stamp + "**\n" + message,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
