package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iksnae/stickyboard/internal"
)

// Suggestion is one of the validated reply shapes
type Suggestion interface {
	Action() Action
	Validate() error
}

var errEmptyField = errors.New("required field is empty")

// Number is a float that decodes from a JSON number or a numeric string
type Number float64

// UnmarshalJSON accepts 4, 4.5 and "4.5"
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.New("number is null")
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid numeric string %s: %w", s, err)
		}
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", string(data), err)
	}
	*n = Number(f)
	return nil
}

// AxisLabelsSuggestion is the {x, y} label pair
type AxisLabelsSuggestion internal.AxisLabels

func (AxisLabelsSuggestion) Action() Action { return ActionAxisLabels }

func (s AxisLabelsSuggestion) Validate() error {
	if strings.TrimSpace(s.X.Label) == "" {
		return fmt.Errorf("x.label: %w", errEmptyField)
	}
	if strings.TrimSpace(s.Y.Label) == "" {
		return fmt.Errorf("y.label: %w", errEmptyField)
	}
	return nil
}

// Labels converts the suggestion to board axis labels
func (s AxisLabelsSuggestion) Labels() internal.AxisLabels {
	return internal.AxisLabels(s)
}

// TitleSuggestion is the {label} session title
type TitleSuggestion struct {
	Label string `json:"label"`
}

func (TitleSuggestion) Action() Action { return ActionSessionTitle }

func (s TitleSuggestion) Validate() error {
	if strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("label: %w", errEmptyField)
	}
	return nil
}

// CoordinateSuggestion is the {rx, ry, reason} placement
type CoordinateSuggestion struct {
	RX     *Number `json:"rx"`
	RY     *Number `json:"ry"`
	Reason string  `json:"reason"`
}

// Action reports the placement action; fitting uses the same shape
func (CoordinateSuggestion) Action() Action { return ActionPlaceNote }

func (s CoordinateSuggestion) Validate() error {
	if s.RX == nil {
		return fmt.Errorf("rx: %w", errEmptyField)
	}
	if s.RY == nil {
		return fmt.Errorf("ry: %w", errEmptyField)
	}
	if err := inGrid("rx", float64(*s.RX)); err != nil {
		return err
	}
	return inGrid("ry", float64(*s.RY))
}

func inGrid(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > internal.GridMax {
		return fmt.Errorf("%s %.2f outside [0,%g]", name, v, internal.GridMax)
	}
	return nil
}

// Point returns the suggested relative position
func (s CoordinateSuggestion) Point() internal.Point {
	var p internal.Point
	if s.RX != nil {
		p.X = float64(*s.RX)
	}
	if s.RY != nil {
		p.Y = float64(*s.RY)
	}
	return p
}

// NoteSuggestion is the {content, reason} generated note
type NoteSuggestion struct {
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

func (NoteSuggestion) Action() Action { return ActionGenerateNote }

func (s NoteSuggestion) Validate() error {
	if strings.TrimSpace(s.Content) == "" {
		return fmt.Errorf("content: %w", errEmptyField)
	}
	return nil
}
