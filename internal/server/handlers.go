package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/assist"
	"github.com/iksnae/stickyboard/internal/export"
	"github.com/iksnae/stickyboard/internal/prompt"
)

// ActionView is the JSON form of an assistant action state
type ActionView struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// BoardView is the full board as returned by GET /board
type BoardView struct {
	Viewport   internal.Viewport            `json:"viewport"`
	Sessions   []internal.SessionSummary    `json:"sessions"`
	Notes      []internal.Note              `json:"notes"`
	AxisLabels internal.AxisLabels          `json:"axis_labels"`
	Selection  internal.Selection           `json:"selection"`
	Assist     map[prompt.Action]ActionView `json:"assist,omitempty"`
}

func (s *Server) actionViews() map[prompt.Action]ActionView {
	if s.assistant == nil {
		return nil
	}
	out := make(map[prompt.Action]ActionView)
	for action, st := range s.assistant.States() {
		v := ActionView{Loading: st.Loading}
		if st.Err != nil {
			v.Error = st.Err.Error()
		}
		out[action] = v
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.broadcaster.ClientCount(),
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BoardView{
		Viewport:   s.board.Viewport(),
		Sessions:   s.board.Sessions(),
		Notes:      s.board.ActiveNotes(),
		AxisLabels: s.board.AxisLabels(),
		Selection:  s.board.Selection(),
		Assist:     s.actionViews(),
	})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var vp internal.Viewport
	if err := decode(r, &vp); err != nil {
		writeError(w, err)
		return
	}
	if vp.Width < 0 || vp.Height < 0 {
		writeError(w, fmt.Errorf("%w: viewport dimensions must not be negative", errBadRequest))
		return
	}
	s.board.Resize(vp)
	s.commit(w, http.StatusOK, s.board.Viewport())
}

func (s *Server) handleHotkey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key internal.Hotkey `json:"key"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.board.HandleHotkey(req.Key); err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, s.board.Selection())
}

// Sessions

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Sessions())
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Activate bool `json:"activate"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session := s.board.AddSession()
	if req.Activate {
		if err := s.board.SetActiveSession(session.ID); err != nil {
			writeError(w, err)
			return
		}
	}
	s.commit(w, http.StatusCreated, session)
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	session, err := s.board.RenameSession(id, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, session)
}

func (s *Server) handleActivateSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.board.SetActiveSession(id); err != nil {
		writeError(w, err)
		return
	}
	session, _ := s.board.Session(id)
	s.commit(w, http.StatusOK, session)
}

func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		writeError(w, &internal.ExportError{Format: format, Err: err})
		return
	}
	doc, err := s.board.Document(id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="session_%d.%s"`, id, exporter.Extension()))
	w.WriteHeader(http.StatusOK)
	if err := exporter.Export(&doc, w); err != nil {
		internal.Logger().Error().Err(err).Str("format", format).Msg("export failed mid-stream")
	}
}

// Notes

type notePosition struct {
	AX     float64 `json:"ax"`
	AY     float64 `json:"ay"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		writeJSON(w, http.StatusOK, s.board.Notes())
		return
	}
	writeJSON(w, http.StatusOK, s.board.ActiveNotes())
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AX      float64         `json:"ax"`
		AY      float64         `json:"ay"`
		At      *internal.Point `json:"at,omitempty"`
		Content string          `json:"content"`
		Brief   string          `json:"brief"`
		IsAI    bool            `json:"isai"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		note internal.Note
		err  error
	)
	if req.At != nil {
		if !internal.InGrid(*req.At) {
			writeError(w, fmt.Errorf("%w: relative point outside the grid", errBadRequest))
			return
		}
		note, err = s.board.AddNoteAt(*req.At, req.Content, req.Brief, req.IsAI)
	} else {
		note, err = s.board.AddNote(req.AX, req.AY, req.Content, req.Brief, req.IsAI)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusCreated, note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	note, ok := s.board.Note(id)
	if !ok {
		writeError(w, internal.ErrNoteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	note, err := s.board.DeleteNote(id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, note)
}

func (s *Server) handleNotePosition(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	current, ok := s.board.Note(id)
	if !ok {
		writeError(w, internal.ErrNoteNotFound)
		return
	}
	req := notePosition{Width: current.Width, Height: current.Height}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeError(w, fmt.Errorf("%w: width and height must be positive", errBadRequest))
		return
	}
	note, err := s.board.UpdatePosition(id, req.AX, req.AY, req.Width, req.Height)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, note)
}

func (s *Server) handleNoteContent(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	note, err := s.board.EditContent(id, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, note)
}

func (s *Server) handleNoteLock(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	note, err := s.board.SetLocked(id, req.Locked)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, note)
}

// Selection

type idRequest struct {
	ID int64 `json:"id"`
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Selection())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.board.Select(req.ID); err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, s.board.Selection())
}

func (s *Server) handleSelectAt(w http.ResponseWriter, r *http.Request) {
	var p internal.Point
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	note, found := s.board.SelectAt(p)
	resp := struct {
		Selection internal.Selection `json:"selection"`
		Note      *internal.Note     `json:"note,omitempty"`
	}{Selection: s.board.Selection()}
	if found {
		resp.Note = &note
	}
	s.commit(w, http.StatusOK, resp)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req idRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.board.Edit(req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.board.Selection())
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	s.board.Blur()
	s.commit(w, http.StatusOK, s.board.Selection())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.board.Deselect()
	s.commit(w, http.StatusOK, s.board.Selection())
}

// Context menu and AI actions

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeError(w, fmt.Errorf("%w: assistant not configured", internal.ErrUnknownAction))
		return
	}
	var at internal.Point
	if err := decode(r, &at); err != nil {
		writeError(w, err)
		return
	}
	action := assist.MenuAction(chi.URLParam(r, "action"))
	note, err := s.assistant.Dispatch(r.Context(), action, at)
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, note)
}

func (s *Server) handleAIStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.actionViews())
}

// aiRequest carries the payload of every AI action; each action reads the
// fields it needs
type aiRequest struct {
	Topic   string  `json:"topic"`
	Hint    string  `json:"hint"`
	Content string  `json:"content"`
	ID      int64   `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeError(w, fmt.Errorf("%w: assistant not configured", internal.ErrUnknownAction))
		return
	}
	var req aiRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	var (
		result any
		err    error
	)
	switch prompt.Action(chi.URLParam(r, "action")) {
	case prompt.ActionAxisLabels:
		result, err = s.assistant.SuggestAxisLabels(ctx, req.Topic)
	case prompt.ActionSessionTitle:
		result, err = s.assistant.TitleSession(ctx, req.Hint)
	case prompt.ActionPlaceNote:
		result, err = s.assistant.PlaceNewNote(ctx, req.Content)
	case prompt.ActionFitNote:
		id := req.ID
		if id == 0 {
			if selected, ok := s.board.SelectedNote(); ok {
				id = selected.ID
			}
		}
		if id == 0 {
			err = internal.ErrNothingSelected
			break
		}
		result, err = s.assistant.FitNote(ctx, id)
	case prompt.ActionGenerateNote:
		result, err = s.assistant.GenerateNote(ctx, internal.Point{X: req.X, Y: req.Y})
	default:
		err = fmt.Errorf("%w: %s", internal.ErrUnknownAction, chi.URLParam(r, "action"))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	s.commit(w, http.StatusOK, result)
}
