// Package prompt is the boundary to the external text-completion service.
// It builds the prompts for every AI-assisted board action, sends them
// through a Completer and decodes the reply into a validated suggestion.
package prompt

import (
	"context"
)

// Action names an AI-assisted board action
type Action string

const (
	ActionAxisLabels   Action = "axis_labels"
	ActionSessionTitle Action = "session_title"
	ActionPlaceNote    Action = "place_note"
	ActionFitNote      Action = "fit_note"
	ActionGenerateNote Action = "generate_note"
)

// Actions lists every action in a stable order
var Actions = []Action{
	ActionAxisLabels,
	ActionSessionTitle,
	ActionPlaceNote,
	ActionFitNote,
	ActionGenerateNote,
}

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message sent to the completion service
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a chat completion request
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// NewRequest builds a request with a system and a user message
func NewRequest(model, systemPrompt, userPrompt string) Request {
	return Request{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
	}
}

// Usage reports token accounting when the service provides it
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the trimmed reply of the completion service. Message is empty
// when the service returned no content.
type Response struct {
	Created int64  `json:"created"`
	Message string `json:"message,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Completer sends one request to a completion service. Implementations make
// a single attempt; retries are the caller's business.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, req Request) (Response, error)

// Complete calls f(ctx, req)
func (f CompleterFunc) Complete(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
