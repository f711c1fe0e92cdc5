package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/iksnae/stickyboard/internal"
)

// Completion outcomes recorded in metrics
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
)

// ErrEmptyMessage is wrapped in a ParseError when the service returned no content
var ErrEmptyMessage = errors.New("empty completion message")

// Result is a completion reply with its decoded suggestion. Parsed is nil
// whenever decoding failed.
type Result[T Suggestion] struct {
	Response Response
	Parsed   *T
}

var (
	metricsOnce sync.Once
	completions metric.Int64Counter
)

func completionCounter() metric.Int64Counter {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/iksnae/stickyboard/internal/prompt")
		c, err := meter.Int64Counter("stickyboard.prompt.completions",
			metric.WithDescription("Completion requests by action and outcome"),
			metric.WithUnit("{request}"))
		if err != nil {
			internal.LogWarn("completion counter unavailable: %v", err)
			return
		}
		completions = c
	})
	return completions
}

func record(ctx context.Context, action Action, outcome string) {
	c := completionCounter()
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
		attribute.String("outcome", outcome),
	))
}

// Complete sends a template without decoding the reply
func Complete(ctx context.Context, c Completer, model string, tmpl Template) (Response, error) {
	log := internal.Logger()
	log.Debug().Str("action", string(tmpl.Action)).Str("model", model).Msg("sending completion")

	resp, err := c.Complete(ctx, tmpl.Request(model))
	if err != nil {
		record(ctx, tmpl.Action, OutcomeTransportError)
		var te *TransportError
		if errors.As(err, &te) {
			return Response{}, err
		}
		return Response{}, &TransportError{Action: tmpl.Action, Err: err}
	}
	resp.Message = strings.TrimSpace(resp.Message)
	return resp, nil
}

// Generate sends a template and decodes the reply as T. A reply that is not
// JSON of the expected shape yields a *ParseError and a Result whose Parsed
// is nil but whose Response keeps the raw message.
func Generate[T Suggestion](ctx context.Context, c Completer, model string, tmpl Template) (Result[T], error) {
	resp, err := Complete(ctx, c, model, tmpl)
	if err != nil {
		return Result[T]{}, err
	}

	result := Result[T]{Response: resp}
	parsed, err := decode[T](resp.Message)
	if err != nil {
		record(ctx, tmpl.Action, OutcomeParseError)
		internal.Logger().Warn().
			Str("action", string(tmpl.Action)).
			Str("message", resp.Message).
			Err(err).
			Msg("failed to parse completion")
		return result, &ParseError{Action: tmpl.Action, Message: resp.Message, Err: err}
	}

	record(ctx, tmpl.Action, OutcomeOK)
	result.Parsed = &parsed
	return result, nil
}

func decode[T Suggestion](message string) (T, error) {
	var v T
	body := stripFence(message)
	if body == "" {
		return v, ErrEmptyMessage
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if dec.More() {
		return v, errors.New("trailing data after JSON object")
	}
	if err := v.Validate(); err != nil {
		return v, err
	}
	return v, nil
}

// stripFence removes a surrounding markdown code fence
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
