package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/okian/squads/internal/adapters/ingest"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
)

// RosterHandler handles roster uploads and reads.
type RosterHandler struct {
	deps     Dependencies
	settings *settings
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies, s *settings) *RosterHandler {
	return &RosterHandler{deps: deps, settings: s}
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "roster.get"
	roster, err := h.deps.Roster(r.Context())
	if errors.Is(err, service.ErrNoRoster) {
		writeError(w, http.StatusNotFound, "no_roster", Wrap(op, err))
		return
	}
	if err != nil {
		h.settings.logger.Error(r.Context(), "roster read failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// HandlePostRoster handles POST /roster requests. JSON bodies are decoded as
// {skills, people}; anything else is read as delimited text.
func (h *RosterHandler) HandlePostRoster(w http.ResponseWriter, r *http.Request) {
	const op = "roster.post"
	r.Body = http.MaxBytesReader(w, r.Body, h.settings.maxUploadBytes)

	var (
		roster model.Roster
		err    error
	)
	if isJSON(r.Header.Get("Content-Type")) {
		roster, err = ingest.LoadJSON(r.Context(), r.Body)
	} else {
		roster, err = ingest.LoadCSV(r.Context(), r.Body, ingest.WithDelimiter(h.settings.delimiter))
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_roster", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.LoadRoster(r.Context(), roster); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_roster", WrapKind(op, ErrBadRequest, err))
		return
	}

	ranked, err := h.deps.Roster(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, ranked)
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}
