package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/squads/internal/domain/model"
	scoring "github.com/okian/squads/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAverage(t *testing.T) {
	Convey("Given people with six skill ratings", t, func() {
		Convey("When the ratings are 2,2,2,2,2,2", func() {
			p := model.Person{Surname: "Reclus", SkillLevels: []float64{2, 2, 2, 2, 2, 2}}

			Convey("Then the average is 2", func() {
				So(scoring.Average(p), ShouldEqual, 2.0)
			})
		})

		Convey("When the ratings are 1,2,1,3,2,2", func() {
			p := model.Person{Surname: "Pomettini", SkillLevels: []float64{1, 2, 1, 3, 2, 2}}

			Convey("Then the average is 11/6", func() {
				So(scoring.Average(p), ShouldAlmostEqual, 1.833333, 0.00001)
			})
		})

		Convey("When the ratings are fractional", func() {
			p := model.Person{Surname: "Leotta", SkillLevels: []float64{0.5, 1.5}}

			Convey("Then the mean is exact", func() {
				So(scoring.Average(p), ShouldEqual, 1.0)
			})
		})
	})

	Convey("Given a person without ratings", t, func() {
		p := model.Person{Surname: "Nobody"}

		Convey("Then the average is NaN", func() {
			So(math.IsNaN(scoring.Average(p)), ShouldBeTrue)
		})
	})
}

func TestScoreRoster(t *testing.T) {
	Convey("Given a roster with stale averages", t, func() {
		r := model.Roster{
			Skills: []string{"a", "b", "c"},
			People: []model.Person{
				{Surname: "Bonanni", SkillLevels: []float64{5, 4, 3}, AverageSkillLevel: 99},
				{Surname: "Ricchiuti", SkillLevels: []float64{1, 1, 4}},
				{Surname: "De Dominicis", SkillLevels: []float64{0, 0, 0}},
			},
		}

		Convey("When the roster is scored", func() {
			scoring.ScoreRoster(&r)

			Convey("Then every average equals the mean of its levels", func() {
				for _, p := range r.People {
					var sum float64
					for _, v := range p.SkillLevels {
						sum += v
					}
					So(p.AverageSkillLevel, ShouldAlmostEqual, sum/float64(len(p.SkillLevels)), 1e-9)
				}
				So(r.People[0].AverageSkillLevel, ShouldEqual, 4.0)
				So(r.People[1].AverageSkillLevel, ShouldEqual, 2.0)
				So(r.People[2].AverageSkillLevel, ShouldEqual, 0.0)
			})

			Convey("And the order is unchanged", func() {
				So(r.Surnames(), ShouldResemble, []string{"Bonanni", "Ricchiuti", "De Dominicis"})
			})
		})
	})
}
