package telebirr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultEndpoint = "https://verifyapi.leulzenebe.pro/verify-telebirr"

// VerificationResult is the verification API's answer for one payment
// reference.
type VerificationResult struct {
	Success bool `json:"success"`
	Data    struct {
		CreditedPartyName string `json:"creditedPartyName"`
		TransactionStatus string `json:"transactionStatus"`
		Amount            string `json:"amount"`
		Date              string `json:"date"`
	} `json:"data"`
}

// Client verifies telebirr payment references against the external
// verification API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient creates a new verification client. The api key comes from the
// environment; the endpoint can be overridden in config.
func NewClient() *Client {
	endpoint := viper.GetString("payments.verify_endpoint")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
		apiKey:     os.Getenv("RECEIPT_VERIFICATION_API_KEY"),
	}
}

// Verify looks a payment reference up with the provider.
func (c *Client) Verify(ctx context.Context, reference string) (VerificationResult, error) {
	payload, err := json.Marshal(map[string]string{"reference": reference})
	if err != nil {
		return VerificationResult{}, fmt.Errorf("failed to marshal verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return VerificationResult{}, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("failed to call verification api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerificationResult{}, fmt.Errorf("payment verification failed: %s", resp.Status)
	}

	var result VerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return VerificationResult{}, fmt.Errorf("failed to decode verification response: %w", err)
	}

	return result, nil
}

// NormalizeName lowercases and trims a party name for comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
