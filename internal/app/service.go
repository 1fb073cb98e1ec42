// Package service owns the live roster and the current team list and runs
// the score, rank and distribute pipeline on request.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/squads/internal/domain/distribution"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/ranking"
	"github.com/okian/squads/internal/domain/scoring"
	"github.com/okian/squads/pkg/logger"
	"github.com/okian/squads/pkg/metrics"
)

// Request asks for a new team list.
type Request struct {
	TeamSize int
	SortBy   string // "average", a skill name or a skill index; empty uses the default
}

// Result is one generated team list.
type Result struct {
	PlanID      string            `json:"plan_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	TeamSize    int               `json:"team_size"`
	SortBy      string            `json:"sort_by"`
	Plan        distribution.Plan `json:"plan"`
	Teams       []model.Team      `json:"teams"`
}

func (r Result) clone() Result {
	teams := make([]model.Team, len(r.Teams))
	for i, t := range r.Teams {
		members := make([]model.Person, len(t.Members))
		for j, m := range t.Members {
			members[j] = m.Clone()
		}
		teams[i] = model.Team{Name: t.Name, Members: members}
	}
	r.Teams = teams
	return r
}

// Service is safe for concurrent use. Every mutation replaces state as a
// whole, so readers never see a half-built roster or team list.
type Service struct {
	mu sync.RWMutex

	roster *model.Roster
	result *Result

	// Configuration
	defaultSort string
	teamNames   []string
	now         func() time.Time
	newID       func() string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaultSort sets the criterion used when a request names none.
func WithDefaultSort(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.defaultSort = name
		}
	}
}

// WithTeamNames sets the labels given to teams in creation order.
func WithTeamNames(names []string) Option {
	return func(s *Service) {
		s.teamNames = names
	}
}

// WithClock replaces time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the plan ID source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a Service with no roster loaded.
func New(opts ...Option) *Service {
	s := &Service{
		defaultSort: ranking.AverageName,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// LoadRoster validates and scores r, ranks it by the default criterion and
// makes it the live roster. Any previous team list is discarded.
func (s *Service) LoadRoster(ctx context.Context, r model.Roster) error {
	start := time.Now()
	if err := r.Validate(); err != nil {
		metrics.RecordRosterLoadError(loadFailureReason(err))
		s.logger.Warn(ctx, "roster rejected", logger.Error(err))
		return err
	}

	roster := r.Clone()
	scoring.ScoreRoster(&roster)

	crit, err := ranking.ParseCriterion(s.defaultSort, roster.Skills)
	if err != nil {
		s.logger.Warn(ctx, "default sort does not match roster, ranking by average",
			logger.String("sort_by", s.defaultSort), logger.Error(err))
		crit = ranking.ByAverage()
	}
	if err := s.rank(&roster, crit); err != nil {
		return err
	}

	s.mu.Lock()
	s.roster = &roster
	s.result = nil
	s.mu.Unlock()

	metrics.RecordRosterLoaded(roster.Len(), len(roster.Skills), metrics.Since(start))
	s.logger.Info(ctx, "roster loaded",
		logger.Int("people", roster.Len()),
		logger.Strings("skills", roster.Skills),
		logger.String("sort_by", crit.Name(roster.Skills)),
	)
	return nil
}

func (s *Service) rank(r *model.Roster, c ranking.Criterion) error {
	start := time.Now()
	if err := ranking.Sort(r, c); err != nil {
		return err
	}
	kind := ranking.AverageName
	if _, bySkill := c.SkillIndex(); bySkill {
		kind = "skill"
	}
	metrics.RecordRanking(kind, metrics.Since(start))
	return nil
}

// Roster returns a copy of the live roster in its current ranked order.
func (s *Service) Roster(_ context.Context) (model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.roster == nil {
		return model.Roster{}, ErrNoRoster
	}
	return s.roster.Clone(), nil
}

// Skills returns the skill dimension names of the live roster.
func (s *Service) Skills(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.roster == nil {
		return nil
	}
	return append([]string(nil), s.roster.Skills...)
}

// Generate re-ranks the live roster by req.SortBy and distributes it into
// teams of req.TeamSize. On success the ranked order and the new team list
// replace the current ones together; on failure neither changes.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roster == nil {
		metrics.RecordDistributionFailure("no_roster")
		return Result{}, ErrNoRoster
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = s.defaultSort
	}
	crit, err := ranking.ParseCriterion(sortBy, s.roster.Skills)
	if err != nil {
		metrics.RecordDistributionFailure("bad_criterion")
		return Result{}, err
	}

	ranked := s.roster.Clone()
	if err := s.rank(&ranked, crit); err != nil {
		metrics.RecordDistributionFailure("bad_criterion")
		return Result{}, err
	}

	start := time.Now()
	plan, err := distribution.PlanTeamCount(ranked.Len(), req.TeamSize)
	if err != nil {
		return Result{}, s.distributionFailed(ctx, req, err)
	}
	teams, err := distribution.Distribute(ranked, req.TeamSize, distribution.WithTeamNames(s.teamNames))
	if err != nil {
		return Result{}, s.distributionFailed(ctx, req, err)
	}

	res := Result{
		PlanID:      s.newID(),
		GeneratedAt: s.now().UTC(),
		TeamSize:    req.TeamSize,
		SortBy:      crit.Name(ranked.Skills),
		Plan:        plan,
		Teams:       teams,
	}
	s.roster = &ranked
	s.result = &res

	metrics.RecordDistribution(len(teams), sizeSpread(teams), metrics.Since(start))
	s.logger.Info(ctx, "teams generated",
		logger.String("plan_id", res.PlanID),
		logger.Int("team_size", req.TeamSize),
		logger.String("sort_by", res.SortBy),
		logger.Int("teams", plan.TeamCount),
		logger.Int("remainder", plan.Remainder),
	)
	return res.clone(), nil
}

func (s *Service) distributionFailed(ctx context.Context, req Request, err error) error {
	reason := distributionFailureReason(err)
	metrics.RecordDistributionFailure(reason)
	s.logger.Warn(ctx, "distribution rejected",
		logger.Int("team_size", req.TeamSize),
		logger.Int("people", s.roster.Len()),
		logger.String("reason", reason),
		logger.Error(err),
	)
	return err
}

// Teams returns the current team list.
func (s *Service) Teams(_ context.Context) (Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return Result{}, ErrNoTeams
	}
	return s.result.clone(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"rosterLoaded": s.roster != nil,
		"defaultSort":  s.defaultSort,
		"people":       0,
		"skills":       0,
		"teams":        0,
	}
	if s.roster != nil {
		stats["people"] = s.roster.Len()
		stats["skills"] = len(s.roster.Skills)
	}
	if s.result != nil {
		stats["teams"] = len(s.result.Teams)
		stats["lastPlanID"] = s.result.PlanID
		stats["lastGeneratedAt"] = s.result.GeneratedAt
		stats["lastTeamSize"] = s.result.TeamSize
		stats["teamSizeSpread"] = sizeSpread(s.result.Teams)
	}
	return stats
}

func sizeSpread(teams []model.Team) int {
	if len(teams) == 0 {
		return 0
	}
	lo, hi := teams[0].Size(), teams[0].Size()
	for _, t := range teams[1:] {
		lo = min(lo, t.Size())
		hi = max(hi, t.Size())
	}
	return hi - lo
}

func distributionFailureReason(err error) string {
	switch {
	case errors.Is(err, distribution.ErrNoValidPlan):
		return "no_valid_plan"
	case errors.Is(err, distribution.ErrInvalidTeamSize):
		return "invalid_team_size"
	case errors.Is(err, distribution.ErrEmptyRoster):
		return "empty_roster"
	default:
		return "other"
	}
}

func loadFailureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrNoSkills):
		return "no_skills"
	case errors.Is(err, model.ErrSkillCountMismatch):
		return "skill_count_mismatch"
	case errors.Is(err, model.ErrEmptySurname):
		return "empty_surname"
	case errors.Is(err, model.ErrDuplicateSkill):
		return "duplicate_skill"
	case errors.Is(err, model.ErrInvalidSkillLevel):
		return "invalid_skill_level"
	default:
		return "other"
	}
}
