// Package server exposes a board over HTTP. Mutations are persisted after
// they succeed and every board change is streamed to /events.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/assist"
)

// Persister saves board state after a mutation
type Persister interface {
	SaveState(state internal.State) error
}

// Server serves the board API
type Server struct {
	board       *internal.Board
	assistant   *assist.Assistant
	persister   Persister
	broadcaster *Broadcaster
	router      chi.Router
}

// New builds the server and subscribes it to board changes. persister may
// be nil for an in-memory board.
func New(board *internal.Board, assistant *assist.Assistant, persister Persister) *Server {
	s := &Server{
		board:       board,
		assistant:   assistant,
		persister:   persister,
		broadcaster: NewBroadcaster(),
		router:      chi.NewRouter(),
	}
	board.Subscribe(func(c internal.Change) {
		s.broadcaster.Broadcast(string(c.Kind), c)
	})
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Broadcaster returns the event broadcaster
func (s *Server) Broadcaster() *Broadcaster {
	return s.broadcaster
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/board", s.handleBoard)
	r.Post("/viewport", s.handleViewport)
	r.Post("/hotkeys", s.handleHotkey)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleAddSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Patch("/", s.handleRenameSession)
			r.Post("/activate", s.handleActivateSession)
			r.Get("/export", s.handleExportSession)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.handleListNotes)
		r.Post("/", s.handleAddNote)
		r.Route("/{noteID}", func(r chi.Router) {
			r.Get("/", s.handleGetNote)
			r.Delete("/", s.handleDeleteNote)
			r.Patch("/position", s.handleNotePosition)
			r.Patch("/content", s.handleNoteContent)
			r.Patch("/lock", s.handleNoteLock)
		})
	})

	r.Route("/selection", func(r chi.Router) {
		r.Get("/", s.handleGetSelection)
		r.Post("/select", s.handleSelect)
		r.Post("/at", s.handleSelectAt)
		r.Post("/edit", s.handleEdit)
		r.Post("/blur", s.handleBlur)
		r.Post("/clear", s.handleClear)
	})

	r.Post("/menu/{action}", s.handleMenu)

	r.Route("/ai", func(r chi.Router) {
		r.Get("/", s.handleAIStates)
		r.Post("/{action}", s.handleAI)
	})

	r.Get("/events", s.broadcaster.HandleSSE)
}

// persist saves the board, returning a StorageError on failure
func (s *Server) persist() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.SaveState(s.board.Snapshot())
}

// commit persists and writes v, or reports the storage failure
func (s *Server) commit(w http.ResponseWriter, status int, v any) {
	if err := s.persist(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, v)
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end with ctx instead of holding Shutdown open
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		internal.Logger().Info().Str("addr", addr).Msg("board API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		internal.Logger().Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
