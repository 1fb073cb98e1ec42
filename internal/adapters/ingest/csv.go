// Package ingest turns delimited text or JSON into a validated roster.
//
// The CSV layout is one header row, "Surname;<skill>;...;<skill>", followed
// by one row per person with a numeric rating for every skill column.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/squads/internal/domain/model"
)

// DefaultDelimiter separates CSV columns.
const DefaultDelimiter = ';'

// Option configures CSV loading.
type Option func(*options)

type options struct {
	delimiter rune
}

// WithDelimiter overrides DefaultDelimiter. Zero keeps the default.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// LoadCSV reads a roster from r.
func LoadCSV(ctx context.Context, r io.Reader, opts ...Option) (model.Roster, error) {
	o := &options{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.delimiter
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // checked per row for better messages
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.Roster{}, ErrEmptyInput
	}
	if err != nil {
		return model.Roster{}, fmt.Errorf("header: %w: %w", ErrMissingHeader, err)
	}
	if len(header) < 2 {
		return model.Roster{}, fmt.Errorf("got %d columns: %w", len(header), ErrMissingHeader)
	}

	roster := model.Roster{Skills: make([]string, 0, len(header)-1)}
	for _, h := range header[1:] {
		roster.Skills = append(roster.Skills, strings.TrimSpace(h))
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Roster{}, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Roster{}, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if len(record) != len(header) {
			return model.Roster{}, fmt.Errorf("line %d: got %d columns, want %d: %w", line, len(record), len(header), ErrMalformedRow)
		}

		p := model.Person{
			Surname:     strings.TrimSpace(record[0]),
			SkillLevels: make([]float64, len(roster.Skills)),
		}
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return model.Roster{}, fmt.Errorf("line %d, %s: %q: %w", line, roster.Skills[i], field, ErrInvalidRating)
			}
			p.SkillLevels[i] = v
		}
		roster.People = append(roster.People, p)
	}

	if err := roster.Validate(); err != nil {
		return model.Roster{}, err
	}
	return roster, nil
}

// LoadFile opens path and reads it as CSV, or as JSON when it ends in .json.
func LoadFile(ctx context.Context, path string, opts ...Option) (model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Roster{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(ctx, f)
	}
	return LoadCSV(ctx, f, opts...)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
