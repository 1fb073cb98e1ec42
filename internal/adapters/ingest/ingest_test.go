package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/squads/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const classCSV = `Surname;Game Design;Level Design;Programming;Narrative;Graphics;Teamwork
Bonanni;4;4;3;4;4;5
Pomettini;1;1;5;1;2;1
Ricchiuti;2;2;2;2;2;2

Leotta;2;3;2;2;3;3
`

func TestLoadCSV(t *testing.T) {
	ctx := context.Background()

	Convey("Given a semicolon separated roster", t, func() {
		r, err := LoadCSV(ctx, strings.NewReader(classCSV))

		Convey("Then skills come from the header and people keep file order", func() {
			So(err, ShouldBeNil)
			So(r.Skills, ShouldResemble, []string{"Game Design", "Level Design", "Programming", "Narrative", "Graphics", "Teamwork"})
			So(r.Surnames(), ShouldResemble, []string{"Bonanni", "Pomettini", "Ricchiuti", "Leotta"})
			So(r.People[1].SkillLevels, ShouldResemble, []float64{1, 1, 5, 1, 2, 1})
		})
	})

	Convey("Given a comma separated roster and a delimiter option", t, func() {
		in := "Surname, Art, Code\nReclus, 1, 2.5\n"
		r, err := LoadCSV(ctx, strings.NewReader(in), WithDelimiter(','))

		Convey("Then values are trimmed and parsed", func() {
			So(err, ShouldBeNil)
			So(r.Skills, ShouldResemble, []string{"Art", "Code"})
			So(r.People[0].SkillLevels, ShouldResemble, []float64{1, 2.5})
		})
	})

	Convey("Given a header-only file", t, func() {
		r, err := LoadCSV(ctx, strings.NewReader("Surname;Art\n"))

		Convey("Then an empty roster is returned", func() {
			So(err, ShouldBeNil)
			So(r.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given bad input", t, func() {
		cases := []struct {
			name string
			in   string
			want error
		}{
			{"empty", "", ErrEmptyInput},
			{"header without skills", "Surname\nReclus\n", ErrMissingHeader},
			{"short row", "Surname;Art;Code\nReclus;1\n", ErrMalformedRow},
			{"long row", "Surname;Art\nReclus;1;2\n", ErrMalformedRow},
			{"letter rating", "Surname;Art\nReclus;x\n", ErrInvalidRating},
			{"NaN rating", "Surname;Art\nReclus;NaN\nLeotta;2\n", ErrInvalidRating},
			{"Inf rating", "Surname;Art\nReclus;1\nLeotta;Inf\n", ErrInvalidRating},
			{"negative infinity rating", "Surname;Art\nReclus;-infinity\n", ErrInvalidRating},
			{"duplicate skill", "Surname;Art;art\nReclus;1;2\n", model.ErrDuplicateSkill},
			{"blank surname", "Surname;Art\n ;3\n", model.ErrEmptySurname},
		}
		for _, tc := range cases {
			Convey("When the input is "+tc.name, func() {
				_, err := LoadCSV(ctx, strings.NewReader(tc.in))

				Convey("Then the matching error kind is returned", func() {
					So(errors.Is(err, tc.want), ShouldBeTrue)
				})
			})
		}
	})

	Convey("Given a rating that is not finite", t, func() {
		_, err := LoadCSV(ctx, strings.NewReader("Surname;Art;Code\nReclus;1;2\nLeotta;3;Inf\n"))

		Convey("Then the error names the line and the skill", func() {
			So(errors.Is(err, ErrInvalidRating), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "line 3")
			So(err.Error(), ShouldContainSubstring, "Code")
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := LoadCSV(cctx, strings.NewReader(classCSV))

		Convey("Then loading stops", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()

	Convey("Given a JSON roster", t, func() {
		in := `{"skills":["Art","Code"],"people":[{"surname":"Reclus","skills":[1,2]},{"surname":"Leotta","skills":[3,3]}]}`
		r, err := LoadJSON(ctx, strings.NewReader(in))

		Convey("Then it is decoded in order", func() {
			So(err, ShouldBeNil)
			So(r.Surnames(), ShouldResemble, []string{"Reclus", "Leotta"})
			So(r.People[1].SkillLevels, ShouldResemble, []float64{3, 3})
		})
	})

	Convey("Given JSON with a missing level", t, func() {
		in := `{"skills":["Art","Code"],"people":[{"surname":"Reclus","skills":[1]}]}`
		_, err := LoadJSON(ctx, strings.NewReader(in))

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, model.ErrSkillCountMismatch), ShouldBeTrue)
		})
	})

	Convey("Given a roster in the shape GET /roster serves", t, func() {
		in := `{"skills":["Art"],"people":[{"surname":"Reclus","skill_levels":[1],"average_skill_level":7},{"surname":"Leotta","skill_levels":[3],"average_skill_level":3}]}`
		r, err := LoadJSON(ctx, strings.NewReader(in))

		Convey("Then skill_levels is read and the served average is dropped", func() {
			So(err, ShouldBeNil)
			So(r.People[0].SkillLevels, ShouldResemble, []float64{1})
			So(r.People[0].AverageSkillLevel, ShouldEqual, 0)
		})
	})

	Convey("Given a person with both skills and skill_levels", t, func() {
		in := `{"skills":["Art"],"people":[{"surname":"Reclus","skills":[1],"skill_levels":[2]}]}`
		_, err := LoadJSON(ctx, strings.NewReader(in))

		Convey("Then the ambiguity is rejected", func() {
			So(errors.Is(err, ErrMalformedRow), ShouldBeTrue)
		})
	})

	Convey("Given JSON that repeats a skill name", t, func() {
		in := `{"skills":["Art","ART"],"people":[{"surname":"Reclus","skills":[1,2]}]}`
		_, err := LoadJSON(ctx, strings.NewReader(in))

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, model.ErrDuplicateSkill), ShouldBeTrue)
		})
	})

	Convey("Given empty or broken JSON", t, func() {
		_, err := LoadJSON(ctx, strings.NewReader(""))
		So(errors.Is(err, ErrEmptyInput), ShouldBeTrue)

		_, err = LoadJSON(ctx, strings.NewReader(`{"skills":`))
		So(errors.Is(err, ErrMalformedRow), ShouldBeTrue)
	})
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given roster files on disk", t, func() {
		dir := t.TempDir()
		csvPath := filepath.Join(dir, "class.csv")
		jsonPath := filepath.Join(dir, "class.JSON")
		So(os.WriteFile(csvPath, []byte(classCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(jsonPath, []byte(`{"skills":["Art"],"people":[{"surname":"Reclus","skills":[1]}]}`), 0o600), ShouldBeNil)

		Convey("Then the extension picks the decoder", func() {
			r, err := LoadFile(ctx, csvPath)
			So(err, ShouldBeNil)
			So(r.Len(), ShouldEqual, 4)

			r, err = LoadFile(ctx, jsonPath)
			So(err, ShouldBeNil)
			So(r.Surnames(), ShouldResemble, []string{"Reclus"})
		})

		Convey("When the file does not exist", func() {
			_, err := LoadFile(ctx, filepath.Join(dir, "missing.csv"))

			Convey("Then ErrOpen is returned", func() {
				So(errors.Is(err, ErrOpen), ShouldBeTrue)
			})
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given a loaded roster", t, func() {
		ctx := context.Background()
		r, err := LoadCSV(ctx, strings.NewReader(classCSV))
		So(err, ShouldBeNil)

		Convey("When it is written and read back", func() {
			var buf strings.Builder
			So(WriteCSV(&buf, r, '|'), ShouldBeNil)
			back, err := LoadCSV(ctx, strings.NewReader(buf.String()), WithDelimiter('|'))

			Convey("Then nothing is lost", func() {
				So(err, ShouldBeNil)
				So(back, ShouldResemble, r)
				So(buf.String(), ShouldStartWith, "Surname|Game Design|")
			})
		})
	})
}
