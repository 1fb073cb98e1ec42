// Package ranking orders a roster ascending by a single scalar criterion.
//
// Ordering is stable: people with equal keys keep their relative input
// order. The distributor drafts from the end of the ranked roster, so the
// tie order decides which of several equally ranked people is picked first.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/squads/internal/domain/model"
)

// AverageName is the criterion name for ranking by aggregate score.
const AverageName = "average"

// Criterion selects the scalar used to rank people. The zero value ranks
// by aggregate score.
type Criterion struct {
	bySkill bool
	index   int
}

// ByAverage ranks by AverageSkillLevel.
func ByAverage() Criterion { return Criterion{} }

// BySkill ranks by the skill dimension at index i.
func BySkill(i int) Criterion { return Criterion{bySkill: true, index: i} }

// SkillIndex reports the skill dimension index, if any.
func (c Criterion) SkillIndex() (int, bool) { return c.index, c.bySkill }

func (c Criterion) String() string {
	if !c.bySkill {
		return AverageName
	}
	return "skill[" + strconv.Itoa(c.index) + "]"
}

// Name resolves the criterion to a display name using the skill set.
func (c Criterion) Name(skills []string) string {
	if c.bySkill && c.index >= 0 && c.index < len(skills) {
		return skills[c.index]
	}
	return c.String()
}

// ParseCriterion maps "average" (or empty), a skill name, or a 0-based
// skill index to a Criterion. Matching is case-insensitive. Unknown names
// are an error; there is no fallback to average.
func ParseCriterion(name string, skills []string) (Criterion, error) {
	n := strings.TrimSpace(name)
	if n == "" || strings.EqualFold(n, AverageName) {
		return ByAverage(), nil
	}
	for i, s := range skills {
		if strings.EqualFold(s, n) {
			return BySkill(i), nil
		}
	}
	if i, err := strconv.Atoi(n); err == nil {
		c := BySkill(i)
		if err := c.check(len(skills)); err != nil {
			return Criterion{}, err
		}
		return c, nil
	}
	return Criterion{}, fmt.Errorf("%q: %w", name, ErrUnknownCriterion)
}

func (c Criterion) check(skillCount int) error {
	if c.bySkill && (c.index < 0 || c.index >= skillCount) {
		return fmt.Errorf("index %d with %d skills: %w", c.index, skillCount, ErrSkillIndexOutOfRange)
	}
	return nil
}

// Key returns the value p is ranked by under c.
func (c Criterion) Key(p model.Person) float64 {
	if c.bySkill {
		return p.SkillLevels[c.index]
	}
	return p.AverageSkillLevel
}

// Sort reorders r.People ascending by c, keeping ties in input order.
// An out-of-range skill index is rejected before r is touched.
func Sort(r *model.Roster, c Criterion) error {
	if err := c.check(len(r.Skills)); err != nil {
		return err
	}
	slices.SortStableFunc(r.People, func(a, b model.Person) int {
		return cmp.Compare(c.Key(a), c.Key(b))
	})
	return nil
}

// IsSorted reports whether r is already ascending under c.
func IsSorted(r model.Roster, c Criterion) bool {
	if c.check(len(r.Skills)) != nil {
		return false
	}
	return slices.IsSortedFunc(r.People, func(a, b model.Person) int {
		return cmp.Compare(c.Key(a), c.Key(b))
	})
}
