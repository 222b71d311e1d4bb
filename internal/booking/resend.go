package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Email is one outgoing message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewResendClient(apiKey, baseURL string) *ResendClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = 15 * time.Second
	return &ResendClient{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *ResendClient) Send(ctx context.Context, email Email) (string, error) {
	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("error encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error building email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling email API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("error reading email API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: email API returned %s: %s", ErrDeliveryFailed, resp.Status, strings.TrimSpace(string(raw)))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("error decoding email API response: %w", err)
	}
	return out.ID, nil
}
