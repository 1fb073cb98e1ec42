package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/okian/squads/internal/domain/model"
)

// jsonRoster is the JSON upload shape.
type jsonRoster struct {
	Skills []string     `json:"skills"`
	People []jsonPerson `json:"people"`
}

// jsonPerson accepts levels as "skills" or, matching the GET /roster output,
// as "skill_levels". A served average_skill_level is ignored and recomputed.
type jsonPerson struct {
	Surname           string    `json:"surname"`
	Skills            []float64 `json:"skills"`
	SkillLevels       []float64 `json:"skill_levels"`
	AverageSkillLevel float64   `json:"average_skill_level"`
}

func (p jsonPerson) levels() ([]float64, error) {
	switch {
	case p.Skills != nil && p.SkillLevels != nil:
		return nil, fmt.Errorf("person %q sets both skills and skill_levels: %w", p.Surname, ErrMalformedRow)
	case p.SkillLevels != nil:
		return p.SkillLevels, nil
	default:
		return p.Skills, nil
	}
}

// LoadJSON reads {"skills": [...], "people": [{"surname", "skills": [...]}]}.
// Each person may carry "skill_levels" in place of "skills", so a roster read
// from GET /roster can be posted back unchanged.
func LoadJSON(_ context.Context, r io.Reader) (model.Roster, error) {
	var in jsonRoster
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Roster{}, ErrEmptyInput
		}
		return model.Roster{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
	}

	roster := model.Roster{Skills: in.Skills, People: make([]model.Person, 0, len(in.People))}
	for _, p := range in.People {
		levels, err := p.levels()
		if err != nil {
			return model.Roster{}, err
		}
		roster.People = append(roster.People, model.Person{Surname: p.Surname, SkillLevels: levels})
	}
	if err := roster.Validate(); err != nil {
		return model.Roster{}, err
	}
	return roster, nil
}
