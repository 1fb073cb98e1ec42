package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/domain/distribution"
	"github.com/okian/squads/internal/domain/ranking"
	"github.com/okian/squads/pkg/logger"
)

// teamsRequest mirrors the OpenAPI schema for POST /teams.
type teamsRequest struct {
	TeamSize int    `json:"team_size" validate:"required,gte=1"`
	SortBy   string `json:"sort_by" validate:"omitempty,max=128"`
}

// TeamsHandler handles team generation and reads.
type TeamsHandler struct {
	deps     Dependencies
	settings *settings
	validate *validator.Validate
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies, s *settings) *TeamsHandler {
	return &TeamsHandler{
		deps:     deps,
		settings: s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *TeamsHandler) check(req teamsRequest) error {
	if err := h.validate.Struct(req); err != nil {
		return err
	}
	bounds := fmt.Sprintf("min=%d,max=%d", h.settings.minTeamSize, h.settings.maxTeamSize)
	if err := h.validate.Var(req.TeamSize, bounds); err != nil {
		return fmt.Errorf("team_size must be between %d and %d: %w",
			h.settings.minTeamSize, h.settings.maxTeamSize, err)
	}
	return nil
}

// HandlePostTeams handles POST /teams requests.
func (h *TeamsHandler) HandlePostTeams(w http.ResponseWriter, r *http.Request) {
	const op = "teams.post"

	var req teamsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.check(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Generate(r.Context(), service.Request{TeamSize: req.TeamSize, SortBy: req.SortBy})
	if err != nil {
		status, code := generateStatus(err)
		if status >= statusInternalError {
			h.settings.logger.Error(r.Context(), "team generation failed", logger.Error(err))
		}
		writeError(w, status, code, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// HandleGetTeams handles GET /teams requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	const op = "teams.get"
	res, err := h.deps.Teams(r.Context())
	if errors.Is(err, service.ErrNoTeams) {
		writeError(w, http.StatusNotFound, "no_teams", Wrap(op, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func generateStatus(err error) (int, string) {
	switch {
	case errors.Is(err, distribution.ErrNoValidPlan):
		return http.StatusUnprocessableEntity, "no_valid_plan"
	case errors.Is(err, distribution.ErrEmptyRoster):
		return http.StatusUnprocessableEntity, "empty_roster"
	case errors.Is(err, distribution.ErrInvalidTeamSize):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ranking.ErrUnknownCriterion), errors.Is(err, ranking.ErrSkillIndexOutOfRange):
		return http.StatusBadRequest, "bad_sort"
	case errors.Is(err, service.ErrNoRoster):
		return http.StatusConflict, "no_roster"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
