package prompt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
)

// Defaults for the OpenAI chat completions backend
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4-turbo"
)

// ErrMissingAPIKey is returned before any request is sent without a key
var ErrMissingAPIKey = errors.New("API key not configured")

// OpenAIClient calls an OpenAI-compatible /chat/completions endpoint
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a client. Empty baseURL uses the public API.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type openAIResponse struct {
	Created int64 `json:"created"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion request
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	if c.apiKey == "" {
		return Response{}, ErrMissingAPIKey
	}
	if req.Model == "" {
		req.Model = DefaultOpenAIModel
	}

	start := time.Now()
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out openAIResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Error != nil {
		return Response{}, fmt.Errorf("API error: %s", out.Error.Message)
	}

	result := Response{Created: out.Created, Usage: out.Usage}
	if len(out.Choices) > 0 && out.Choices[0].Message.Content != nil {
		result.Message = strings.TrimSpace(*out.Choices[0].Message.Content)
	}

	internal.Logger().Debug().
		Str("model", req.Model).
		Dur("elapsed", time.Since(start)).
		Int("message_len", len(result.Message)).
		Msg("openai completion")
	return result, nil
}
