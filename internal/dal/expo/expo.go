package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/spf13/viper"
)

const defaultEndpoint = "https://exp.host/--/api/v2/push/send"

// Client delivers push messages through the Expo push API.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Expo push client.
func NewClient() *Client {
	endpoint := viper.GetString("push.expo_endpoint")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

// Send delivers one push job. A non-2xx response is returned as an error so
// the caller can decide whether to log or retry; nothing is retried here.
func (c *Client) Send(ctx context.Context, job notification.PushJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal push job: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("push provider returned %s: %s", resp.Status, body)
	}

	return nil
}
