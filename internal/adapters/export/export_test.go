package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okian/squads/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func sampleTeams() []model.Team {
	return []model.Team{
		{Name: "Alfa", Members: []model.Person{
			{Surname: "Bonanni", AverageSkillLevel: 4},
			{Surname: "Reclus", AverageSkillLevel: 1.3333},
			{Surname: "Ricchiuti", AverageSkillLevel: 2},
		}},
		{Name: "Bravo", Members: []model.Person{
			{Surname: "De <Dominicis>", AverageSkillLevel: 3.1667},
			{Surname: "Leotta", AverageSkillLevel: 2.5},
		}},
	}
}

func TestHTML(t *testing.T) {
	Convey("Given two unequal teams", t, func() {
		var buf bytes.Buffer
		So(HTML(&buf, sampleTeams()), ShouldBeNil)
		out := buf.String()

		Convey("Then each team is one row with scored cells", func() {
			So(strings.Count(out, "<tr>"), ShouldEqual, 2)
			So(out, ShouldContainSubstring, "<th>Alfa</th>")
			So(out, ShouldContainSubstring, "<td>Bonanni [4.0]</td>")
			So(out, ShouldContainSubstring, "<td>Reclus [1.3]</td>")
			So(out, ShouldContainSubstring, "<td>Leotta [2.5]</td>")
		})

		Convey("Then surnames are escaped", func() {
			So(out, ShouldContainSubstring, "De &lt;Dominicis&gt;")
		})
	})
}

func TestCSV(t *testing.T) {
	Convey("Given two teams and a semicolon delimiter", t, func() {
		var buf bytes.Buffer
		So(CSV(&buf, sampleTeams(), ';'), ShouldBeNil)

		Convey("Then each record is the team name then surnames", func() {
			So(buf.String(), ShouldEqual, "Alfa;Bonanni;Reclus;Ricchiuti\nBravo;De <Dominicis>;Leotta\n")
		})
	})

	Convey("Given a zero delimiter", t, func() {
		var buf bytes.Buffer
		So(CSV(&buf, sampleTeams()[1:], 0), ShouldBeNil)

		Convey("Then commas are used", func() {
			So(buf.String(), ShouldEqual, "Bravo,De <Dominicis>,Leotta\n")
		})
	})
}

func TestSpreadsheet(t *testing.T) {
	Convey("Given two teams written as xlsx", t, func() {
		var buf bytes.Buffer
		So(Spreadsheet(&buf, sampleTeams()), ShouldBeNil)

		f, err := excelize.OpenReader(&buf)
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Then the Teams sheet has one row per team", func() {
			rows, err := f.GetRows(SheetName)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0], ShouldResemble, []string{"Alfa", "Bonanni", "Reclus", "Ricchiuti"})
			So(rows[1], ShouldResemble, []string{"Bravo", "De <Dominicis>", "Leotta"})
		})
	})
}

func TestJSONAndText(t *testing.T) {
	Convey("Given a document", t, func() {
		doc := Document{PlanID: "p-1", GeneratedAt: time.Unix(0, 0).UTC(), TeamSize: 2, SortBy: "average", Teams: sampleTeams()}

		Convey("When exported as JSON", func() {
			var buf bytes.Buffer
			So(JSON(&buf, doc), ShouldBeNil)

			Convey("Then it decodes back to the same teams", func() {
				var got Document
				So(json.Unmarshal(buf.Bytes(), &got), ShouldBeNil)
				So(got.PlanID, ShouldEqual, "p-1")
				So(got.Teams[1].Surnames(), ShouldResemble, []string{"De <Dominicis>", "Leotta"})
			})
		})

		Convey("When rendered as text", func() {
			var buf bytes.Buffer
			So(Text(&buf, doc.Teams), ShouldBeNil)

			Convey("Then teams and members are listed", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "Alfa (3, avg 2.4)")
				So(out, ShouldContainSubstring, "Bonanni")
				So(out, ShouldContainSubstring, "[2.5]")
			})
		})
	})
}

func TestForFormat(t *testing.T) {
	Convey("Given every supported format", t, func() {
		for _, name := range Formats() {
			e, err := ForFormat(strings.ToUpper(name), ';')
			So(err, ShouldBeNil)
			So(e.ContentType(), ShouldNotBeEmpty)
			So(e.Extension(), ShouldStartWith, ".")

			var buf bytes.Buffer
			So(e.Export(&buf, Document{Teams: sampleTeams()}), ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 0)
		}
	})

	Convey("Given an unknown format", t, func() {
		_, err := ForFormat("pdf", ';')

		Convey("Then ErrUnknownFormat is returned", func() {
			So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
		})
	})
}
