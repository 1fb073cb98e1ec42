// Package export renders a team list as HTML, CSV, xlsx, JSON or terminal text.
// Exporters only read the teams and never assume equal team sizes.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/okian/squads/internal/domain/model"
)

// Supported format names.
const (
	FormatHTML = "html"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "text"
)

// Document is everything an exporter may render.
type Document struct {
	PlanID      string       `json:"plan_id,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	TeamSize    int          `json:"team_size"`
	SortBy      string       `json:"sort_by"`
	Teams       []model.Team `json:"teams"`
}

// Exporter writes a document to w.
type Exporter interface {
	Name() string
	ContentType() string
	Extension() string
	Export(w io.Writer, doc Document) error
}

type exporterFunc struct {
	name        string
	contentType string
	ext         string
	fn          func(io.Writer, Document) error
}

func (e exporterFunc) Name() string                           { return e.name }
func (e exporterFunc) ContentType() string                    { return e.contentType }
func (e exporterFunc) Extension() string                      { return e.ext }
func (e exporterFunc) Export(w io.Writer, doc Document) error { return e.fn(w, doc) }

// ForFormat resolves an exporter by name. CSV output uses delimiter.
func ForFormat(name string, delimiter rune) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatHTML, "":
		return exporterFunc{FormatHTML, "text/html; charset=utf-8", ".html", func(w io.Writer, d Document) error {
			return HTML(w, d.Teams)
		}}, nil
	case FormatCSV:
		return exporterFunc{FormatCSV, "text/csv; charset=utf-8", ".csv", func(w io.Writer, d Document) error {
			return CSV(w, d.Teams, delimiter)
		}}, nil
	case FormatXLSX:
		return exporterFunc{FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx", func(w io.Writer, d Document) error {
			return Spreadsheet(w, d.Teams)
		}}, nil
	case FormatJSON:
		return exporterFunc{FormatJSON, "application/json", ".json", JSON}, nil
	case FormatText, "txt":
		return exporterFunc{FormatText, "text/plain; charset=utf-8", ".txt", func(w io.Writer, d Document) error {
			return Text(w, d.Teams)
		}}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// Formats lists the names ForFormat accepts.
func Formats() []string {
	return []string{FormatHTML, FormatCSV, FormatXLSX, FormatJSON, FormatText}
}

var page = template.Must(template.New("teams").Funcs(template.FuncMap{
	"avg": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Teams</title>
<style>
table {
  font-family: arial, sans-serif;
  border-collapse: collapse;
  width: 100%;
}

td, th {
  border: 1px solid #dddddd;
  text-align: left;
  padding: 8px;
}

tr:nth-child(even) {
  background-color: #dddddd;
}
</style>
</head>
<body>
<table>
{{- range .}}
<tr><th>{{.Name}}</th>{{range .Members}}<td>{{.Surname}} [{{avg .AverageSkillLevel}}]</td>{{end}}</tr>
{{- end}}
</table>
</body>
</html>
`))

// HTML writes a standalone page with one table row per team.
func HTML(w io.Writer, teams []model.Team) error {
	return page.Execute(w, teams)
}

// CSV writes one record per team: the team name followed by member surnames.
func CSV(w io.Writer, teams []model.Team, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	for _, t := range teams {
		if err := cw.Write(append([]string{t.Name}, t.Surnames()...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes the document as indented JSON.
func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
