package forwarder

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/akozlov/order-relay/internal/models"
)

// maxResponseBytes caps how much of the downstream response body is read back.
const maxResponseBytes = 1 << 20

// DeliveryError is returned when the accounting API answers with a non-2xx
// status. Body holds the remote error body when the API sent one.
type DeliveryError struct {
	StatusCode int
	Body       []byte
}

func (e *DeliveryError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("accounting api returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("accounting api returned %d", e.StatusCode)
}

// Forwarder delivers transaction records to the accounting API.
// Exactly one attempt per call: no retry, no backoff.
type Forwarder struct {
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

// New creates a forwarder for the given endpoint. When insecure is true the
// client skips TLS certificate verification; this is only meant for
// development and is logged loudly so it cannot slip into production quietly.
func New(endpoint string, timeout time.Duration, insecure bool, log *slog.Logger) *Forwarder {
	client := &http.Client{
		Timeout: timeout,
	}

	if insecure {
		log.Warn("TLS certificate verification DISABLED for outbound forwarding; never run this configuration in production",
			"endpoint", endpoint,
		)
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Forwarder{
		endpoint: endpoint,
		client:   client,
		log:      log,
	}
}

// Forward POSTs the record as JSON to the accounting API and returns the
// response body on a 2xx status. Any network error, timeout, or non-2xx
// status yields an error; the caller decides how much of it to expose.
func (f *Forwarder) Forward(ctx context.Context, record models.TransactionRecord) ([]byte, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	deliveryID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Relay-Delivery", deliveryID)

	f.log.Info("forwarding transaction",
		"order_id", record.ID,
		"delivery_id", deliveryID,
		"endpoint", f.endpoint,
	)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach accounting api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read accounting api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DeliveryError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
