package model_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/squads/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRosterValidate(t *testing.T) {
	convey.Convey("Given a roster with two skills", t, func() {
		r := model.Roster{
			Skills: []string{"Programming", "Graphics"},
			People: []model.Person{
				{Surname: "Reclus", SkillLevels: []float64{1, 2}},
				{Surname: "Bonanni", SkillLevels: []float64{4, 5}},
			},
		}

		convey.Convey("When every person has two levels", func() {
			convey.Convey("Then it validates", func() {
				convey.So(r.Validate(), convey.ShouldBeNil)
				convey.So(r.Len(), convey.ShouldEqual, 2)
				convey.So(r.Surnames(), convey.ShouldResemble, []string{"Reclus", "Bonanni"})
			})
		})

		convey.Convey("When a person is missing a level", func() {
			r.People[1].SkillLevels = []float64{4}

			convey.Convey("Then it reports the mismatch", func() {
				err := r.Validate()
				convey.So(errors.Is(err, model.ErrSkillCountMismatch), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Bonanni")
			})
		})

		convey.Convey("When a surname is blank", func() {
			r.People[0].Surname = "  "

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(r.Validate(), model.ErrEmptySurname), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a level is not finite", func() {
			for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				r.People[0].SkillLevels = []float64{1, v}
				err := r.Validate()
				convey.So(errors.Is(err, model.ErrInvalidSkillLevel), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Graphics")
			}
		})

		convey.Convey("When a skill name repeats in another case", func() {
			r.Skills = []string{"Programming", "programming "}

			convey.Convey("Then the duplicate is rejected", func() {
				convey.So(errors.Is(r.Validate(), model.ErrDuplicateSkill), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When there are no skills", func() {
			r.Skills = nil

			convey.Convey("Then it is rejected", func() {
				convey.So(r.Validate(), convey.ShouldEqual, model.ErrNoSkills)
			})
		})
	})
}

func TestRosterClone(t *testing.T) {
	convey.Convey("Given a roster", t, func() {
		r := model.Roster{
			Skills: []string{"Narrative"},
			People: []model.Person{{Surname: "Leotta", SkillLevels: []float64{3}, AverageSkillLevel: 3}},
		}

		convey.Convey("When the clone is mutated", func() {
			c := r.Clone()
			c.Skills[0] = "Teamwork"
			c.People[0].SkillLevels[0] = 9
			c.People[0].Surname = "Other"

			convey.Convey("Then the source roster is untouched", func() {
				convey.So(r.Skills[0], convey.ShouldEqual, "Narrative")
				convey.So(r.People[0].SkillLevels[0], convey.ShouldEqual, 3)
				convey.So(r.People[0].Surname, convey.ShouldEqual, "Leotta")
			})
		})
	})
}

func TestTeam(t *testing.T) {
	convey.Convey("Given a team", t, func() {
		team := model.Team{
			Name: "Alfa",
			Members: []model.Person{
				{Surname: "Bonanni", AverageSkillLevel: 4},
				{Surname: "Reclus", AverageSkillLevel: 1},
			},
		}

		convey.Convey("Then it reports size, average and surnames", func() {
			convey.So(team.Size(), convey.ShouldEqual, 2)
			convey.So(team.AverageSkillLevel(), convey.ShouldAlmostEqual, 2.5)
			convey.So(team.Surnames(), convey.ShouldResemble, []string{"Bonanni", "Reclus"})
		})

		convey.Convey("When the team is empty", func() {
			empty := model.Team{Name: "Bravo"}

			convey.Convey("Then the average is zero", func() {
				convey.So(empty.AverageSkillLevel(), convey.ShouldEqual, 0)
				convey.So(empty.Size(), convey.ShouldEqual, 0)
			})
		})
	})
}
