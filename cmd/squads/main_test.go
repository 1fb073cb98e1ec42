package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/squads/internal/adapters/ingest"
	"github.com/okian/squads/internal/domain/distribution"
	"github.com/smartystreets/goconvey/convey"
)

const classCSV = `Surname;Game Design;Level Design;Programming;Narrative;Graphics;Teamwork
Bonanni;4;4;3;4;4;5
Pomettini;1;1;5;1;2;1
Ricchiuti;2;2;2;2;2;2
Leotta;2;3;2;2;3;3
De Dominicis;4;4;0;3;4;4
Reclus;1;1;2;1;1;2
`

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeRoster(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "class.csv")
	if err := os.WriteFile(path, []byte(classCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildCommand(t *testing.T) {
	convey.Convey("Given a roster file", t, func() {
		roster := writeRoster(t)

		convey.Convey("When building teams of three as CSV", func() {
			out, _, err := execute("build", "--roster", roster, "--size", "3", "--format", "csv")

			convey.Convey("Then the snake drafted teams are printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldEqual, "Alfa;Bonanni;Leotta;Pomettini\nBravo;De Dominicis;Ricchiuti;Reclus\n")
			})
		})

		convey.Convey("When building as text sorted by a skill", func() {
			out, _, err := execute("build", "-r", roster, "-s", "2", "--sort-by", "Programming")

			convey.Convey("Then the terminal rendering lists every team", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Alfa")
				convey.So(out, convey.ShouldContainSubstring, "Charlie")
				convey.So(out, convey.ShouldContainSubstring, "Pomettini")
			})
		})

		convey.Convey("When writing xlsx to a file", func() {
			dest := filepath.Join(t.TempDir(), "nested", "teams.xlsx")
			_, _, err := execute("build", "-r", roster, "-s", "3", "-f", "xlsx", "-o", dest)

			convey.Convey("Then the file exists", func() {
				convey.So(err, convey.ShouldBeNil)
				info, statErr := os.Stat(dest)
				convey.So(statErr, convey.ShouldBeNil)
				convey.So(info.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the size leaves no valid plan", func() {
			_, _, err := execute("build", "-r", roster, "-s", "6")

			convey.Convey("Then the command fails with ErrNoValidPlan", func() {
				convey.So(errors.Is(err, distribution.ErrNoValidPlan), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the format is unknown", func() {
			_, _, err := execute("build", "-r", roster, "-s", "2", "-f", "pdf")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When required flags are missing", func() {
			_, _, err := execute("build", "-r", roster)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestPlanCommand(t *testing.T) {
	convey.Convey("Given a head count", t, func() {
		out, _, err := execute("plan", "--people", "7", "--size", "2")

		convey.Convey("Then the plan is printed", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "teams: 3")
			convey.So(out, convey.ShouldContainSubstring, "remainder: 1")
		})
	})

	convey.Convey("Given a roster file", t, func() {
		out, _, err := execute("plan", "--roster", writeRoster(t), "--size", "4")

		convey.Convey("Then the roster size is used", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "people: 6")
			convey.So(out, convey.ShouldContainSubstring, "teams: 1")
		})
	})

	convey.Convey("Given a size as large as the roster", t, func() {
		_, _, err := execute("plan", "-n", "4", "-s", "4")
		convey.So(errors.Is(err, distribution.ErrNoValidPlan), convey.ShouldBeTrue)
	})
}

func TestGenerateCommand(t *testing.T) {
	convey.Convey("Given a generate request", t, func() {
		out, _, err := execute("generate", "--count", "5", "--skills", "Art,Code")

		convey.Convey("Then a loadable CSV roster is printed", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldStartWith, "Surname;Art;Code\n")
			r, err := ingest.LoadCSV(context.Background(), strings.NewReader(out))
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Len(), convey.ShouldEqual, 5)
		})
	})

	convey.Convey("Given a zero count", t, func() {
		_, _, err := execute("generate", "-n", "0")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
