package prompt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/stickyboard/internal"
)

func TestOpenAIClientComplete(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"created": 1714564800,
			"choices": [{"message": {"role": "assistant", "content": "  {\"label\": \"Roadmap\"}\n"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`)
	}))
	defer srv.Close()

	client := NewOpenAIClient("sk-test", srv.URL+"/", 5*time.Second)
	resp, err := client.Complete(context.Background(), AxisLabelsPrompt("ctx").Request(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)

	assert.Equal(t, int64(1714564800), resp.Created)
	assert.Equal(t, `{"label": "Roadmap"}`, resp.Message)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 17, resp.Usage.TotalTokens)
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"created": 1, "choices": []}`)
	}))
	defer srv.Close()

	resp, err := NewOpenAIClient("k", srv.URL, time.Second).Complete(context.Background(), Request{Model: "m"})
	require.NoError(t, err)
	assert.Empty(t, resp.Message)
	assert.Nil(t, resp.Usage)
}

func TestOpenAIClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "bad key"}}`)
	}))
	defer srv.Close()

	_, err := NewOpenAIClient("k", srv.URL, time.Second).Complete(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOpenAIClientMissingKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", time.Second).Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateOverHTTPTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAIClient("k", srv.URL, time.Second)
	_, err := Generate[TitleSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))

	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(context.Background(), internal.LLMConfig{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = NewCompleter(context.Background(), internal.LLMConfig{Provider: "gemini"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewCompleter(context.Background(), internal.LLMConfig{Provider: "llama"})
	assert.Error(t, err)
}

func TestModelFor(t *testing.T) {
	tests := []struct {
		cfg  internal.LLMConfig
		want string
	}{
		{cfg: internal.LLMConfig{}, want: DefaultOpenAIModel},
		{cfg: internal.LLMConfig{Provider: "openai", Model: "gpt-4o"}, want: "gpt-4o"},
		{cfg: internal.LLMConfig{Provider: "gemini"}, want: DefaultGeminiModel},
		{cfg: internal.LLMConfig{Provider: "gemini", Model: DefaultOpenAIModel}, want: DefaultGeminiModel},
		{cfg: internal.LLMConfig{Provider: "gemini", Model: "gemini-2.5-pro"}, want: "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModelFor(tt.cfg))
	}
}
