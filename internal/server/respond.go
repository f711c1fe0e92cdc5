package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/iksnae/stickyboard/internal"
	"github.com/iksnae/stickyboard/internal/assist"
	"github.com/iksnae/stickyboard/internal/prompt"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.Logger().Error().Err(err).Msg("failed to encode response")
	}
}

// statusFor maps domain errors to a status code and a short kind
func statusFor(err error) (int, string) {
	var (
		transportErr *prompt.TransportError
		parseErr     *prompt.ParseError
		storageErr   *internal.StorageError
		exportErr    *internal.ExportError
	)
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, internal.ErrInvalidGeometry):
		return http.StatusBadRequest, "invalid_geometry"
	case errors.Is(err, internal.ErrUnknownAction):
		return http.StatusBadRequest, "unknown_action"
	case errors.Is(err, internal.ErrNoteNotFound):
		return http.StatusNotFound, "note_not_found"
	case errors.Is(err, internal.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, internal.ErrNoteLocked):
		return http.StatusConflict, "note_locked"
	case errors.Is(err, internal.ErrViewportNotReady):
		return http.StatusConflict, "viewport_not_ready"
	case errors.Is(err, internal.ErrNoActiveSession):
		return http.StatusConflict, "no_active_session"
	case errors.Is(err, internal.ErrNothingSelected):
		return http.StatusConflict, "nothing_selected"
	case errors.Is(err, assist.ErrStaleResult):
		return http.StatusConflict, "stale_result"
	case errors.Is(err, assist.ErrNothingToTitle):
		return http.StatusUnprocessableEntity, "nothing_to_title"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "prompt_parse_error"
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, "prompt_transport_error"
	case errors.As(err, &exportErr):
		return http.StatusBadRequest, "export_error"
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError, "storage_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := statusFor(err)
	if status >= http.StatusInternalServerError {
		internal.Logger().Error().Err(err).Str("kind", kind).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: kind})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid note id", errBadRequest)
	}
	return id, nil
}

func sessionID(r *http.Request) (internal.SessionID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid session id", errBadRequest)
	}
	return internal.SessionID(id), nil
}
