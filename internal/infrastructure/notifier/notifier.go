package notifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"borica-qes/internal/config"
)

// JobEvent is pushed to the configured downstream endpoint when a signing
// job reaches a terminal state.
type JobEvent struct {
	CallbackID   string `json:"callback_id"`
	RPCallbackID string `json:"rp_callback_id,omitempty"`
	Status       string `json:"status"`
	ContentRefs  string `json:"content_refs,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// Client posts job completion events to an internal endpoint with basic
// auth. Disabled unless notifier.enabled is set.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.Notifier.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SendJobEvent delivers one event. A disabled notifier is a no-op.
func (c *Client) SendJobEvent(ctx context.Context, event *JobEvent) error {
	if !c.config.Notifier.Enabled {
		c.logger.Debug("Notifier disabled, skipping job event")
		return nil
	}

	reqBody, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	c.logger.Info("Sending job event",
		zap.String("url", c.config.Notifier.BaseURL),
		zap.String("callback_id", event.CallbackID),
		zap.String("status", event.Status),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Notifier.BaseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create notifier request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.config.Notifier.Username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.config.Notifier.Username + ":" + c.config.Notifier.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send job event: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read notifier response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifier request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	c.logger.Info("Job event delivered",
		zap.String("callback_id", event.CallbackID),
		zap.Int("status_code", resp.StatusCode),
	)

	return nil
}

var Module = fx.Module("notifier",
	fx.Provide(NewClient),
)
