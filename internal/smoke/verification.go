package smoke

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okian/squads/internal/domain/model"
)

// Verification failures.
var (
	ErrTeamCount     = errors.New("team count does not match the plan")
	ErrMembership    = errors.New("members were dropped or duplicated")
	ErrEmptyTeam     = errors.New("a team has no members")
	ErrUnexpectedRun = errors.New("server accepted a size it should refuse")
)

// VerifyTeams checks one generated team list against the roster it came from.
func VerifyTeams(roster model.Roster, size int, teams []model.Team) error {
	want := roster.Len() / size
	if len(teams) != want {
		return fmt.Errorf("size %d: got %d teams, want %d: %w", size, len(teams), want, ErrTeamCount)
	}

	var got []string
	for _, t := range teams {
		if t.Size() == 0 {
			return fmt.Errorf("size %d, %s: %w", size, t.Name, ErrEmptyTeam)
		}
		got = append(got, t.Surnames()...)
	}
	expected := roster.Surnames()
	slices.Sort(got)
	slices.Sort(expected)
	if !slices.Equal(got, expected) {
		return fmt.Errorf("size %d: %d placed, %d on roster: %w", size, len(got), len(expected), ErrMembership)
	}
	return nil
}
