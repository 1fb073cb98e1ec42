// Package distribution splits a ranked roster into teams with a serpentine
// (snake draft) sweep.
package distribution

import (
	"fmt"
	"strconv"

	"github.com/okian/squads/internal/domain/model"
)

// DefaultTeamNames are used to label teams in creation order.
var DefaultTeamNames = []string{
	"Alfa", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliett",
}

// Plan is the outcome of PlanTeamCount.
type Plan struct {
	TeamCount int `json:"team_count"`
	Remainder int `json:"remainder"`
}

// PlanTeamCount computes how many teams a roster of total people yields for
// the requested team size. Teams may end up larger than size: the remainder
// is drafted by the same sweep as everyone else.
func PlanTeamCount(total, size int) (Plan, error) {
	switch {
	case total <= 0:
		return Plan{}, ErrEmptyRoster
	case size <= 0:
		return Plan{}, fmt.Errorf("size %d: %w", size, ErrInvalidTeamSize)
	case size >= total:
		return Plan{}, fmt.Errorf("size %d with %d people: %w", size, total, ErrNoValidPlan)
	}
	return Plan{TeamCount: total / size, Remainder: total % size}, nil
}

// Option configures Distribute.
type Option func(*options)

type options struct {
	names []string
}

// WithTeamNames overrides DefaultTeamNames. An empty list keeps the default.
func WithTeamNames(names []string) Option {
	return func(o *options) {
		if len(names) > 0 {
			o.names = names
		}
	}
}

// TeamName returns the label for the team at index i.
func TeamName(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "Team " + strconv.Itoa(i+1)
}

// Distribute drafts ranked.People into PlanTeamCount(...).TeamCount teams.
// It pops the highest ranked remaining person (the last one, since ranking
// is ascending) and hands it to the team under a serpentine cursor until
// everyone is placed. ranked is not modified; a failed plan returns no teams.
func Distribute(ranked model.Roster, size int, opts ...Option) ([]model.Team, error) {
	o := &options{names: DefaultTeamNames}
	for _, opt := range opts {
		opt(o)
	}

	plan, err := PlanTeamCount(ranked.Len(), size)
	if err != nil {
		return nil, err
	}

	perTeam := (ranked.Len() + plan.TeamCount - 1) / plan.TeamCount
	teams := make([]model.Team, plan.TeamCount)
	for i := range teams {
		teams[i] = model.Team{
			Name:    TeamName(o.names, i),
			Members: make([]model.Person, 0, perTeam),
		}
	}

	pool := ranked.Clone().People
	cur := newCursor(plan.TeamCount)
	for len(pool) > 0 {
		last := len(pool) - 1
		teams[cur.index].Members = append(teams[cur.index].Members, pool[last])
		pool = pool[:last]
		cur.advance()
	}

	return teams, nil
}
