package export

import (
	"io"

	"github.com/okian/squads/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet Spreadsheet writes to.
const SheetName = "Teams"

// Spreadsheet writes an xlsx workbook with one row per team.
func Spreadsheet(w io.Writer, teams []model.Team) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	for i, t := range teams {
		row := make([]interface{}, 0, t.Size()+1)
		row = append(row, t.Name)
		for _, s := range t.Surnames() {
			row = append(row, s)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
