package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
)

const maxResponseBytes = 1 << 20

// GatewayClient talks to the remote payment/notification backend. Every call is a
// single POST; no retries, the generated transaction id is cosmetic.
type GatewayClient struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
	metrics metrics.Recorder
}

// NewGatewayClient creates a gateway client for the given base URL
func NewGatewayClient(baseURL string, client *http.Client, log logger.Logger, rec metrics.Recorder) *GatewayClient {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &GatewayClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  log,
		metrics: rec,
	}
}

// Post sends the payload as JSON and returns the server's confirmation data on 2xx.
// Non-2xx responses and transport errors come back as an error carrying the
// best-effort extracted server message.
func (c *GatewayClient) Post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal gateway payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.ObserveLatency(metrics.GatewayLatency, time.Since(start), map[string]string{"method": path})
	if err != nil {
		c.logger.Warn("gateway request failed", map[string]any{"path": path, "error": err.Error()})
		return "", errors.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.Wrap(err, "failed to read gateway response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := extractErrorMessage(raw, resp.Status)
		c.logger.Warn("gateway rejected request", map[string]any{
			"path":   path,
			"status": resp.StatusCode,
			"error":  msg,
		})
		return "", errors.New(msg)
	}

	var ok struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(raw, &ok); err == nil && ok.Data != "" {
		return ok.Data, nil
	}

	return strings.TrimSpace(string(raw)), nil
}

// extractErrorMessage pulls a human-readable message out of a failed response body,
// falling back to the HTTP status line
func extractErrorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return fallback
}

// newTransactionID generates a display transaction id: prefix plus a randomized
// alphanumeric suffix
func newTransactionID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return prefix + "-" + suffix
}
