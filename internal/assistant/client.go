package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/oauth2"
)

// ModelClient is the model API as used here: one request/response call for
// the admin loop and a raw event stream for visitors.
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	OpenChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (io.ReadCloser, error)
}

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	*openai.Client
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	baseURL = strings.TrimRight(baseURL, "/")
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
	return &OpenAIClient{
		Client:     openai.NewClientWithConfig(cfg),
		baseURL:    baseURL,
		httpClient: oauth2.NewClient(context.Background(), ts),
	}
}

// OpenChatCompletionStream starts a streaming completion and returns the
// undecoded event stream body. The caller closes it.
func (c *OpenAIClient) OpenChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (io.ReadCloser, error) {
	req.Stream = true
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Kind: ErrorUpstream, Err: fmt.Errorf("error calling model API: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, newStatusError(resp.StatusCode, fmt.Errorf("model API returned %s: %s", resp.Status, strings.TrimSpace(string(detail))))
	}
	return resp.Body, nil
}
