package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/squads/internal/adapters/export"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/pkg/logger"
	"github.com/okian/squads/pkg/metrics"
)

// ExportHandler serves the current team list as a download.
type ExportHandler struct {
	deps     Dependencies
	settings *settings
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies, s *settings) *ExportHandler {
	return &ExportHandler{deps: deps, settings: s}
}

// HandleExport handles GET /teams/export?format=html|csv|xlsx|json|text.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "teams.export"
	format := r.URL.Query().Get("format")

	exp, err := export.ForFormat(format, h.settings.delimiter)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_format", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Teams(r.Context())
	if errors.Is(err, service.ErrNoTeams) {
		writeError(w, http.StatusNotFound, "no_teams", Wrap(op, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	// Render fully before writing so a failure can still produce an error status.
	var buf bytes.Buffer
	if err := exp.Export(&buf, toDocument(res)); err != nil {
		metrics.RecordExportError(exp.Name())
		h.settings.logger.Error(r.Context(), "export failed", logger.String("format", exp.Name()), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "export_failed", WrapKind(op, ErrExport, err))
		return
	}
	metrics.RecordExport(exp.Name())

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "teams-"+res.PlanID+exp.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func toDocument(res service.Result) export.Document {
	return export.Document{
		PlanID:      res.PlanID,
		GeneratedAt: res.GeneratedAt,
		TeamSize:    res.TeamSize,
		SortBy:      res.SortBy,
		Teams:       res.Teams,
	}
}
