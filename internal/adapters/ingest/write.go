package ingest

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/okian/squads/internal/domain/model"
)

// WriteCSV writes r in the layout LoadCSV reads.
func WriteCSV(w io.Writer, r model.Roster, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = DefaultDelimiter
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(append([]string{"Surname"}, r.Skills...)); err != nil {
		return err
	}
	record := make([]string, len(r.Skills)+1)
	for _, p := range r.People {
		record[0] = p.Surname
		for i, v := range p.SkillLevels {
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
