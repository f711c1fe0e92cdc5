package prompt

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
)

// SystemMessage is shared by every board action
const SystemMessage = "You are a helpful assistant that maps data to a numerical two-dimensional coordinate system."

const coordinateSample = `{"rx": number for relative x coordinate (0,10), "ry": number for relative y coordinate (0,10), "reason": "reason for choosing this relative coordinate"}`

// Template is a fully rendered prompt for one action
type Template struct {
	Action Action
	System string
	User   string
}

// Request turns the template into a completion request for model
func (t Template) Request(model string) Request {
	return NewRequest(model, t.System, t.User)
}

// indentJSON renders v as 2-space indented JSON
func indentJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type section struct {
	title string
	value any
}

// contextBlock renders titled JSON sections, one after another
func contextBlock(sections ...section) (string, error) {
	var sb strings.Builder
	for _, s := range sections {
		body, err := indentJSON(s.value)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", strings.ToLower(s.title), err)
		}
		fmt.Fprintf(&sb, "\n%s:\n%s\n", s.title, body)
	}
	return sb.String(), nil
}

func nonNil(notes []internal.Note) []internal.Note {
	if notes == nil {
		return []internal.Note{}
	}
	return notes
}

// AxisLabelsPrompt asks for axis labels that fit a free-text context
func AxisLabelsPrompt(context string) Template {
	user := fmt.Sprintf(`Given the context of: %q, define the directions of the axis and reply as raw JSON data without special characters:
{
  "x": {"label": "custom label for x axis", "brief": "brief for choosing this label for x axis"},
  "y": {"label": "custom label for y axis", "brief": "brief for choosing this label for y axis"}
}`, context)
	return Template{Action: ActionAxisLabels, System: SystemMessage, User: user}
}

// SessionTitlePrompt asks for a session title from the labels and notes.
// hint is optional extra context appended after the notes.
func SessionTitlePrompt(labels internal.AxisLabels, notes []internal.Note, hint string) (Template, error) {
	ctx, err := contextBlock(
		section{"Axis Labels", labels},
		section{"Sticky Note Items", nonNil(notes)},
	)
	if err != nil {
		return Template{}, err
	}
	user := `Given the context of the following Axis Labels and Sticky Note Items, define a title for the session and reply as raw JSON data without special characters like: {"label": "custom label for session title"}:
` + ctx
	if hint != "" {
		user += "\n" + hint + "\n"
	}
	return Template{Action: ActionSessionTitle, System: SystemMessage, User: user}, nil
}

// PlaceNotePrompt asks where new note content belongs on the grid
func PlaceNotePrompt(labels internal.AxisLabels, notes []internal.Note, content string) (Template, error) {
	ctx, err := contextBlock(
		section{"Axis Labels", labels},
		section{"Sticky Note Items", nonNil(notes)},
	)
	if err != nil {
		return Template{}, err
	}
	user := fmt.Sprintf(`Given the context of the following Axis Labels and Sticky Note Items, define relative coordinates rx and ry for the given New Note Content and reply only as the raw JSON data without special characters.

Sample Response:
%s
%s
New Note Content:
%s
`, coordinateSample, ctx, content)
	return Template{Action: ActionPlaceNote, System: SystemMessage, User: user}, nil
}

// FitNotePrompt asks for a better position for target. Only locked notes are
// sent as anchors.
func FitNotePrompt(labels internal.AxisLabels, notes []internal.Note, target internal.Note) (Template, error) {
	locked := make([]internal.Note, 0, len(notes))
	for _, n := range notes {
		if n.Locked && n.ID != target.ID {
			locked = append(locked, n)
		}
	}
	ctx, err := contextBlock(
		section{"Axis Labels", labels},
		section{"Locked Sticky Note Items", locked},
		section{"Note to Fit", target},
	)
	if err != nil {
		return Template{}, err
	}
	user := fmt.Sprintf(`Given the context of the following Axis Labels and Locked Sticky Note Items, define relative coordinates rx and ry where the "Note to Fit" would fit better semantically and reply only as raw JSON data without special characters. Do not choose the same coordinates as the "Note to Fit".

Sample Response:
%s
%s`, coordinateSample, ctx)
	return Template{Action: ActionFitNote, System: SystemMessage, User: user}, nil
}

// GenerateNotePrompt asks for note content that fits a relative grid point
func GenerateNotePrompt(labels internal.AxisLabels, notes []internal.Note, at internal.Point) (Template, error) {
	ctx, err := contextBlock(
		section{"Axis Labels", labels},
		section{"Existing Notes", nonNil(notes)},
	)
	if err != nil {
		return Template{}, err
	}
	chosen, err := indentJSON(map[string]float64{"rx": at.X, "ry": at.Y})
	if err != nil {
		return Template{}, fmt.Errorf("render chosen coordinates: %w", err)
	}
	user := fmt.Sprintf(`Given the context of the following Axis Labels and Existing Notes, create a new note that semantically fits the Chosen Coordinates. Only reply with raw JSON data without any special characters.

Sample Response:
{"content": "content for the new note", "reason": "reason for choosing this content for the relative coordinate"}
%s
Chosen Coordinates:
%s
`, ctx, chosen)
	return Template{Action: ActionGenerateNote, System: SystemMessage, User: user}, nil
}
