// Package assist runs the AI-assisted board actions. Every action is tagged
// at dispatch with the session and note it targets, and its result is only
// applied while that scope still exists.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/prompt"
)

var (
	// ErrStaleResult means the scope captured at dispatch is gone
	ErrStaleResult = errors.New("result is stale")

	// ErrNothingToTitle means the active session has no notes with content
	ErrNothingToTitle = errors.New("no notes to title the session from")
)

// ActionState is the loading flag and last error of one action
type ActionState struct {
	Loading bool
	Err     error
}

// Ticket identifies one dispatched action and the scope it was issued for
type Ticket struct {
	ID      uuid.UUID
	Action  prompt.Action
	Session internal.SessionID
	Note    int64
}

// Assistant runs AI actions against a board
type Assistant struct {
	board     *internal.Board
	completer prompt.Completer
	model     string

	mu     sync.Mutex
	states map[prompt.Action]ActionState
}

// New creates an assistant
func New(board *internal.Board, completer prompt.Completer, model string) *Assistant {
	return &Assistant{
		board:     board,
		completer: completer,
		model:     model,
		states:    make(map[prompt.Action]ActionState, len(prompt.Actions)),
	}
}

// State returns the state of one action
func (a *Assistant) State(action prompt.Action) ActionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.states[action]
}

// States returns the state of every action
func (a *Assistant) States() map[prompt.Action]ActionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[prompt.Action]ActionState, len(prompt.Actions))
	for _, action := range prompt.Actions {
		out[action] = a.states[action]
	}
	return out
}

// begin marks action as loading, clears its previous error and captures
// the active session
func (a *Assistant) begin(action prompt.Action, note int64) (Ticket, error) {
	t := Ticket{ID: uuid.New(), Action: action, Note: note}
	if session, ok := a.board.ActiveSession(); ok {
		t.Session = session.ID
	} else if action != prompt.ActionAxisLabels {
		return Ticket{}, a.reject(action, internal.ErrNoActiveSession)
	}

	a.mu.Lock()
	a.states[action] = ActionState{Loading: true}
	a.mu.Unlock()

	internal.Logger().Debug().
		Str("ticket", t.ID.String()).
		Str("action", string(action)).
		Int64("session", int64(t.Session)).
		Int64("note", note).
		Msg("action dispatched")
	return t, nil
}

// reject records a failure found before dispatch, replacing the error of
// any earlier attempt
func (a *Assistant) reject(action prompt.Action, err error) error {
	a.mu.Lock()
	a.states[action] = ActionState{Err: err}
	a.mu.Unlock()
	return err
}

// finish always clears the loading flag and records err
func (a *Assistant) finish(t Ticket, err error) {
	a.mu.Lock()
	a.states[t.Action] = ActionState{Err: err}
	a.mu.Unlock()

	log := internal.Logger()
	if err != nil {
		log.Warn().Str("ticket", t.ID.String()).Str("action", string(t.Action)).Err(err).Msg("action failed")
		return
	}
	log.Debug().Str("ticket", t.ID.String()).Str("action", string(t.Action)).Msg("action applied")
}

// check reports ErrStaleResult when the session is no longer active or the
// target note is gone
func (a *Assistant) check(t Ticket) error {
	active, ok := a.board.ActiveSession()
	if !ok || active.ID != t.Session {
		return fmt.Errorf("%w: session %d is no longer active", ErrStaleResult, t.Session)
	}
	if t.Note != 0 {
		if _, ok := a.board.Note(t.Note); !ok {
			return fmt.Errorf("%w: note %d was deleted", ErrStaleResult, t.Note)
		}
	}
	return nil
}

// SuggestAxisLabels asks for axis labels that fit a free-text topic and
// applies them
func (a *Assistant) SuggestAxisLabels(ctx context.Context, topic string) (labels internal.AxisLabels, err error) {
	t, err := a.begin(prompt.ActionAxisLabels, 0)
	if err != nil {
		return internal.AxisLabels{}, err
	}
	defer func() { a.finish(t, err) }()

	res, err := prompt.Generate[prompt.AxisLabelsSuggestion](ctx, a.completer, a.model, prompt.AxisLabelsPrompt(topic))
	if err != nil {
		return internal.AxisLabels{}, err
	}
	labels = res.Parsed.Labels()
	a.board.SetAxisLabels(labels)
	return labels, nil
}

// TitleSession asks for a title for the active session and applies it.
// hint is optional extra context.
func (a *Assistant) TitleSession(ctx context.Context, hint string) (session internal.Session, err error) {
	notes := withContent(a.board.ActiveNotes())
	if len(notes) == 0 {
		return internal.Session{}, a.reject(prompt.ActionSessionTitle, ErrNothingToTitle)
	}

	t, err := a.begin(prompt.ActionSessionTitle, 0)
	if err != nil {
		return internal.Session{}, err
	}
	defer func() { a.finish(t, err) }()

	tmpl, err := prompt.SessionTitlePrompt(a.board.AxisLabels(), notes, hint)
	if err != nil {
		return internal.Session{}, err
	}
	res, err := prompt.Generate[prompt.TitleSuggestion](ctx, a.completer, a.model, tmpl)
	if err != nil {
		return internal.Session{}, err
	}
	if err := a.check(t); err != nil {
		return internal.Session{}, err
	}
	return a.board.RenameSession(t.Session, strings.TrimSpace(res.Parsed.Label))
}

// PlaceNewNote asks where content belongs and adds it there as an AI note
func (a *Assistant) PlaceNewNote(ctx context.Context, content string) (note internal.Note, err error) {
	if !a.board.Viewport().Measured() {
		return internal.Note{}, a.reject(prompt.ActionPlaceNote, internal.ErrViewportNotReady)
	}

	t, err := a.begin(prompt.ActionPlaceNote, 0)
	if err != nil {
		return internal.Note{}, err
	}
	defer func() { a.finish(t, err) }()

	tmpl, err := prompt.PlaceNotePrompt(a.board.AxisLabels(), a.board.ActiveNotes(), content)
	if err != nil {
		return internal.Note{}, err
	}
	res, err := prompt.Generate[prompt.CoordinateSuggestion](ctx, a.completer, a.model, tmpl)
	if err != nil {
		return internal.Note{}, err
	}
	if err := a.check(t); err != nil {
		return internal.Note{}, err
	}
	return a.board.AddNoteAt(res.Parsed.Point(), content, res.Parsed.Reason, true)
}

// FitNote asks for a better position for a note, using the locked notes of
// the active session as anchors
func (a *Assistant) FitNote(ctx context.Context, id int64) (note internal.Note, err error) {
	target, ok := a.board.Note(id)
	if !ok {
		return internal.Note{}, a.reject(prompt.ActionFitNote, internal.ErrNoteNotFound)
	}
	if target.Locked {
		return internal.Note{}, a.reject(prompt.ActionFitNote, internal.ErrNoteLocked)
	}
	if strings.TrimSpace(target.Content) == "" {
		return internal.Note{}, a.reject(prompt.ActionFitNote, fmt.Errorf("note %d has no content to fit", id))
	}

	t, err := a.begin(prompt.ActionFitNote, id)
	if err != nil {
		return internal.Note{}, err
	}
	defer func() { a.finish(t, err) }()

	tmpl, err := prompt.FitNotePrompt(a.board.AxisLabels(), a.board.ActiveNotes(), target)
	if err != nil {
		return internal.Note{}, err
	}
	res, err := prompt.Generate[prompt.CoordinateSuggestion](ctx, a.completer, a.model, tmpl)
	if err != nil {
		return internal.Note{}, err
	}
	if err := a.check(t); err != nil {
		return internal.Note{}, err
	}
	p := res.Parsed.Point()
	return a.board.ApplyPlacement(id, p.X, p.Y, res.Parsed.Reason)
}

// GenerateNote asks for note content fitting the absolute point at and adds
// it there as an AI note
func (a *Assistant) GenerateNote(ctx context.Context, at internal.Point) (note internal.Note, err error) {
	rel, ok := internal.ToRelative(at, internal.DefaultNoteSize, a.board.Viewport())
	if !ok {
		return internal.Note{}, a.reject(prompt.ActionGenerateNote, internal.ErrViewportNotReady)
	}

	t, err := a.begin(prompt.ActionGenerateNote, 0)
	if err != nil {
		return internal.Note{}, err
	}
	defer func() { a.finish(t, err) }()

	tmpl, err := prompt.GenerateNotePrompt(a.board.AxisLabels(), a.board.ActiveNotes(), rel)
	if err != nil {
		return internal.Note{}, err
	}
	res, err := prompt.Generate[prompt.NoteSuggestion](ctx, a.completer, a.model, tmpl)
	if err != nil {
		return internal.Note{}, err
	}
	if err := a.check(t); err != nil {
		return internal.Note{}, err
	}
	return a.board.AddNote(at.X, at.Y, res.Parsed.Content, res.Parsed.Reason, true)
}

func withContent(notes []internal.Note) []internal.Note {
	out := make([]internal.Note, 0, len(notes))
	for _, n := range notes {
		if strings.TrimSpace(n.Content) != "" {
			out = append(out, n)
		}
	}
	return out
}
