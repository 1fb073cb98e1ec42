// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel kinds for roster validation.
var (
	ErrNoSkills           = errors.New("roster has no skill dimensions")
	ErrSkillCountMismatch = errors.New("skill level count does not match skill dimensions")
	ErrEmptySurname       = errors.New("person has an empty surname")
	ErrDuplicateSkill     = errors.New("skill dimension is listed more than once")
	ErrInvalidSkillLevel  = errors.New("skill level is not a finite number")
)

// Person is one roster member.
type Person struct {
	Surname           string    `json:"surname"`             // display name, not required to be unique
	SkillLevels       []float64 `json:"skill_levels"`        // one rating per skill dimension, same order as Roster.Skills
	AverageSkillLevel float64   `json:"average_skill_level"` // filled by scoring.ScoreRoster; zero until then
}

// Clone returns a copy of p that shares no memory with it.
func (p Person) Clone() Person {
	levels := make([]float64, len(p.SkillLevels))
	copy(levels, p.SkillLevels)
	p.SkillLevels = levels
	return p
}

// Roster is the ordered collection of people plus the skill dimension set.
// Order is insertion order until ranking.Sort reorders it.
type Roster struct {
	Skills []string `json:"skills"`
	People []Person `json:"people"`
}

// Len returns the number of people on the roster.
func (r Roster) Len() int { return len(r.People) }

// Clone deep-copies the roster.
func (r Roster) Clone() Roster {
	out := Roster{
		Skills: make([]string, len(r.Skills)),
		People: make([]Person, len(r.People)),
	}
	copy(out.Skills, r.Skills)
	for i, p := range r.People {
		out.People[i] = p.Clone()
	}
	return out
}

// Surnames lists the people in roster order.
func (r Roster) Surnames() []string {
	out := make([]string, len(r.People))
	for i, p := range r.People {
		out[i] = p.Surname
	}
	return out
}

// Validate checks that skill names are unique (case-insensitive) and that
// every person carries exactly one finite rating per skill.
func (r Roster) Validate() error {
	if len(r.Skills) == 0 {
		return ErrNoSkills
	}
	seen := make(map[string]int, len(r.Skills))
	for i, s := range r.Skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if j, ok := seen[key]; ok {
			return fmt.Errorf("skill %q at columns %d and %d: %w", s, j, i, ErrDuplicateSkill)
		}
		seen[key] = i
	}
	for i, p := range r.People {
		if strings.TrimSpace(p.Surname) == "" {
			return fmt.Errorf("person %d: %w", i, ErrEmptySurname)
		}
		if len(p.SkillLevels) != len(r.Skills) {
			return fmt.Errorf("person %d (%s): got %d levels, want %d: %w",
				i, p.Surname, len(p.SkillLevels), len(r.Skills), ErrSkillCountMismatch)
		}
		for j, v := range p.SkillLevels {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("person %d (%s), %s: %v: %w", i, p.Surname, r.Skills[j], v, ErrInvalidSkillLevel)
			}
		}
	}
	return nil
}
