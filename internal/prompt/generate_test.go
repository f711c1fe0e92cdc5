package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticCompleter returns a fixed message and records the last request
func staticCompleter(message string, last *Request) Completer {
	return CompleterFunc(func(_ context.Context, req Request) (Response, error) {
		if last != nil {
			*last = req
		}
		return Response{Created: 1714564800, Message: message}, nil
	})
}

func TestGenerateParsesTitle(t *testing.T) {
	var req Request
	c := staticCompleter(`  {"label": "Launch plan"}  `, &req)

	res, err := Generate[TitleSuggestion](context.Background(), c, "gpt-4-turbo", AxisLabelsPrompt("x"))
	require.NoError(t, err)
	require.NotNil(t, res.Parsed)

	assert.Equal(t, "Launch plan", res.Parsed.Label)
	assert.Equal(t, `{"label": "Launch plan"}`, res.Response.Message)
	assert.Equal(t, int64(1714564800), res.Response.Created)
	assert.Equal(t, "gpt-4-turbo", req.Model)
}

func TestGenerateNotJSON(t *testing.T) {
	c := staticCompleter("not json", nil)

	res, err := Generate[CoordinateSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "not json", pe.Message)
	assert.Nil(t, res.Parsed)
	assert.Equal(t, "not json", res.Response.Message)

	var te *TransportError
	assert.False(t, errors.As(err, &te))
}

func TestGenerateEmptyMessage(t *testing.T) {
	c := staticCompleter("", nil)

	res, err := Generate[NoteSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Nil(t, res.Parsed)
}

func TestGenerateWrongShape(t *testing.T) {
	c := staticCompleter(`{"content": ""}`, nil)

	res, err := Generate[NoteSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Nil(t, res.Parsed)
}

func TestGenerateTrailingData(t *testing.T) {
	c := staticCompleter(`{"label": "a"} {"label": "b"}`, nil)

	_, err := Generate[TitleSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))

	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestGenerateStripsCodeFence(t *testing.T) {
	c := staticCompleter("```json\n{\"rx\": \"4\", \"ry\": 6, \"reason\": \"middle\"}\n```", nil)

	res, err := Generate[CoordinateSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))
	require.NoError(t, err)
	require.NotNil(t, res.Parsed)

	assert.InDelta(t, 4, float64(*res.Parsed.RX), 1e-9)
	assert.InDelta(t, 6, float64(*res.Parsed.RY), 1e-9)
	assert.Equal(t, "middle", res.Parsed.Reason)
}

func TestGenerateTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	c := CompleterFunc(func(context.Context, Request) (Response, error) {
		return Response{}, boom
	})

	res, err := Generate[TitleSuggestion](context.Background(), c, "m", AxisLabelsPrompt("x"))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ActionAxisLabels, te.Action)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, res.Parsed)
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `{"a":1}`, want: `{"a":1}`},
		{input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{input: "```json\n{\"a\":1}```", want: `{"a":1}`},
		{input: "```", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFence(tt.input), tt.input)
	}
}
