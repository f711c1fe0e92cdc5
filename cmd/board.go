package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/assist"
	"github.com/iksnae/stickyboard/internal/prompt"
)

// boardEnv is an open board together with the database it persists to
type boardEnv struct {
	db      *sql.DB
	storage *internal.Storage
	board   *internal.Board
}

// openBoard opens the board database and restores the persisted state
// onto a board measured with the configured viewport
func openBoard() (*boardEnv, error) {
	db, err := internal.OpenDatabase(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	storage := internal.NewStorage(db)

	board := internal.NewBoard()
	board.Resize(cfg.Viewport)

	state, ok, err := storage.LoadState()
	if err != nil {
		db.Close()
		return nil, err
	}
	if ok {
		board.Restore(state)
		internal.LogDebug("restored %d note(s) in %d session(s)", len(state.Notes), len(state.Sessions))
	}

	return &boardEnv{db: db, storage: storage, board: board}, nil
}

// save persists the board
func (e *boardEnv) save() error {
	return e.storage.SaveState(e.board.Snapshot())
}

func (e *boardEnv) close() {
	if err := e.db.Close(); err != nil {
		internal.LogWarn("failed to close database: %v", err)
	}
}

// withBoard runs fn against the persisted board and saves it afterwards
// when fn succeeds
func withBoard(fn func(env *boardEnv) error) error {
	env, err := openBoard()
	if err != nil {
		return err
	}
	defer env.close()

	if err := fn(env); err != nil {
		return err
	}
	return env.save()
}

// newAssistant builds the assistant for the configured provider
func newAssistant(ctx context.Context, board *internal.Board) (*assist.Assistant, error) {
	completer, err := prompt.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	return assist.New(board, completer, prompt.ModelFor(cfg.LLM)), nil
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func parseSessionID(s string) (internal.SessionID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid session id %q", s)
	}
	return internal.SessionID(id), nil
}

func parseFloats(args ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = f
	}
	return out, nil
}
