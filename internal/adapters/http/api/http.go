// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	LoadRoster(ctx context.Context, r model.Roster) error
	Roster(ctx context.Context) (model.Roster, error)
	Generate(ctx context.Context, req service.Request) (service.Result, error)
	Teams(ctx context.Context) (service.Result, error)
}

// Default limits applied when no Option overrides them.
const (
	defaultMinTeamSize    = 2
	defaultMaxTeamSize    = 10
	defaultMaxUploadBytes = 1 << 20
	defaultDelimiter      = ';'
)

type settings struct {
	minTeamSize    int
	maxTeamSize    int
	maxUploadBytes int64
	delimiter      rune
	logger         logger.Logger
}

// Option configures the Server.
type Option func(*settings)

// WithTeamSizeBounds limits the team_size accepted by POST /teams.
func WithTeamSizeBounds(minSize, maxSize int) Option {
	return func(s *settings) {
		if minSize >= 1 && maxSize >= minSize {
			s.minTeamSize, s.maxTeamSize = minSize, maxSize
		}
	}
}

// WithMaxUploadBytes caps the POST /roster body.
func WithMaxUploadBytes(n int64) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithDelimiter sets the column separator for CSV uploads and exports.
func WithDelimiter(d rune) Option {
	return func(s *settings) {
		if d != 0 {
			s.delimiter = d
		}
	}
}

// WithLogger sets the logger used for server side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	rosterHandler *RosterHandler
	teamsHandler  *TeamsHandler
	exportHandler *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &settings{
		minTeamSize:    defaultMinTeamSize,
		maxTeamSize:    defaultMaxTeamSize,
		maxUploadBytes: defaultMaxUploadBytes,
		delimiter:      defaultDelimiter,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("api")
	}

	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		rosterHandler: NewRosterHandler(deps, s),
		teamsHandler:  NewTeamsHandler(deps, s),
		exportHandler: NewExportHandler(deps, s),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("POST /roster", MetricsMiddleware(s.rosterHandler.HandlePostRoster, "roster"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	mux.HandleFunc("POST /teams", MetricsMiddleware(s.teamsHandler.HandlePostTeams, "teams"))
	mux.HandleFunc("GET /teams/export", MetricsMiddleware(s.exportHandler.HandleExport, "teams_export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// encodingFailed is written when a response value cannot be encoded.
const encodingFailed = `{"code":"internal_error","message":"response encoding failed"}` + "\n"

// writeJSON encodes v fully before the status line is written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	body := []byte(encodingFailed)
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Named("api").Error(context.Background(), "response encoding failed", logger.Error(err))
		status = http.StatusInternalServerError
	} else {
		body = buf.Bytes()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON value from the body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body holds more than one JSON value")
	}
	return nil
}
