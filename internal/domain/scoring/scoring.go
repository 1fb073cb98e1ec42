// Package scoring reduces a person's skill ratings to a single scalar.
package scoring

import (
	"github.com/okian/squads/internal/domain/model"
)

// Average returns the arithmetic mean of p's skill levels. An empty skill
// vector yields NaN; rosters are validated on ingestion so that cannot
// happen for loaded data.
func Average(p model.Person) float64 {
	var sum float64
	for _, v := range p.SkillLevels {
		sum += v
	}
	return sum / float64(len(p.SkillLevels))
}

// ScoreRoster writes Average into every person's AverageSkillLevel,
// overwriting any previous value.
func ScoreRoster(r *model.Roster) {
	for i := range r.People {
		r.People[i].AverageSkillLevel = Average(r.People[i])
	}
}
