// Package deepseek implements a minimal client for the DeepSeek
// chat-completion API: one blocking POST per invocation, no retries.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"promptforge/internal/config"
)

const (
	contentTypeJSON = "application/json"
	userAgent       = "promptforge/0.1"

	chatCompletionsPath = "/chat/completions"

	maxResponseBytes = 1 << 20 // 1 MiB

	dialTimeout     = 10 * time.Second
	keepAlive       = 30 * time.Second
	idleConnTimeout = 90 * time.Second
)

// Client issues chat-completion requests against a single endpoint.
type Client struct {
	apiKey     string
	chatURL    string
	httpClient *http.Client
}

// ChatRequest carries the composed prompts and sampling parameters for one
// completion.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Temperature  float64
	MaxTokens    int
}

// New constructs a client from configuration. The configured API key is a
// fallback; a per-request key supplied through WithAPIKey takes precedence.
func New(cfg config.DeepSeekConfig) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, errors.New("base url must not be empty")
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Client{
		apiKey:  cfg.APIKey,
		chatURL: baseURL + chatCompletionsPath,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: dialTimeout, KeepAlive: keepAlive}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        50,
				IdleConnTimeout:     idleConnTimeout,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}, nil
}

// WithAPIKey returns a shallow copy of the client bound to the given key.
func (c *Client) WithAPIKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

type chatPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// ChatCompletion posts the request and returns the first choice's trimmed
// message content. Failures are classified as *TransportError, *RemoteError
// or *ParseError.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	payload := chatPayload{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("construct request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", &RemoteError{
			StatusCode: httpResp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", &ParseError{Body: string(raw), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ParseError{Body: string(raw), Err: errors.New("response did not include choices")}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &ParseError{Body: string(raw), Err: errors.New("empty response content")}
	}
	return content, nil
}
