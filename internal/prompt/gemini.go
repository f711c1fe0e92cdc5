package prompt

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/iksnae/stickyboard/internal"
)

// DefaultGeminiModel is used when the gemini provider has no model configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient completes requests with the Gemini API
type GeminiClient struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed completer
func NewGeminiClient(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, timeout: timeout}, nil
}

// Complete maps system messages to the system instruction and the rest to
// user content
func (c *GeminiClient) Complete(ctx context.Context, req Request) (Response, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	var system, user string
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system += m.Content
		default:
			user += m.Content
		}
	}

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(user), config)
	if err != nil {
		return Response{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	out := Response{
		Created: resp.CreateTime.Unix(),
		Message: resp.Text(),
	}
	if resp.CreateTime.IsZero() {
		out.Created = time.Now().Unix()
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	internal.Logger().Debug().
		Str("model", model).
		Dur("elapsed", time.Since(start)).
		Int("message_len", len(out.Message)).
		Msg("gemini completion")
	return out, nil
}
