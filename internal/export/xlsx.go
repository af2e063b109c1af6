package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

// WriteXLSX writes walks as a single-sheet workbook with the same header and
// field order as the CSV export.
func WriteXLSX(walks []walk.Walk, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Walks")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}

	for _, rec := range walks {
		row := sheet.AddRow()
		row.AddCell().Value = rec.Name
		row.AddCell().Value = rec.Description
		row.AddCell().SetFloat(rec.Length)
		row.AddCell().SetFloat(rec.Latitude)
		row.AddCell().SetFloat(rec.Longitude)
		row.AddCell().SetFloat(rec.Distance)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
