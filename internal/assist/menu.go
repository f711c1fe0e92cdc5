package assist

import (
	"context"
	"fmt"

	"github.com/iksnae/stickyboard/internal"
)

// MenuAction is an entry of the board context menu
type MenuAction string

const (
	MenuAdd      MenuAction = "add"
	MenuGenerate MenuAction = "generate"
	MenuEdit     MenuAction = "edit"
	MenuDelete   MenuAction = "delete"
	MenuLock     MenuAction = "lock"
	MenuUnlock   MenuAction = "unlock"
	MenuFit      MenuAction = "fit"
)

// Dispatch runs a context-menu action. add and generate work on the
// absolute point at; the rest act on the selected note.
func (a *Assistant) Dispatch(ctx context.Context, action MenuAction, at internal.Point) (internal.Note, error) {
	switch action {
	case MenuAdd:
		return a.board.AddNote(at.X, at.Y, "", "", false)
	case MenuGenerate:
		return a.GenerateNote(ctx, at)
	}

	selected, ok := a.board.SelectedNote()
	if !ok {
		return internal.Note{}, internal.ErrNothingSelected
	}

	switch action {
	case MenuEdit:
		if err := a.board.Edit(selected.ID); err != nil {
			return internal.Note{}, err
		}
		return selected, nil
	case MenuDelete:
		return a.board.DeleteNote(selected.ID)
	case MenuLock:
		return a.board.SetLocked(selected.ID, true)
	case MenuUnlock:
		return a.board.SetLocked(selected.ID, false)
	case MenuFit:
		return a.FitNote(ctx, selected.ID)
	default:
		return internal.Note{}, fmt.Errorf("%w: %s", internal.ErrUnknownAction, action)
	}
}
