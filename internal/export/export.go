// Package export serializes ranked walk records to tabular files.
package export

import (
	"github.com/rotisserie/eris"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

// Format identifies an output file format.
type Format string

const (
	FormatCSV       Format = "csv"
	FormatShapefile Format = "shp"
	FormatXLSX      Format = "xlsx"
)

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatShapefile, FormatXLSX:
		return Format(name), nil
	default:
		return "", eris.Errorf("export: unknown format %q (want csv, shp or xlsx)", name)
	}
}

// Write serializes walks to path in the given format, overwriting any
// existing file.
func Write(walks []walk.Walk, path string, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(walks, path)
	case FormatShapefile:
		return WriteShapefile(walks, path)
	case FormatXLSX:
		return WriteXLSX(walks, path)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// columns is the export header, matching Walk field declaration order.
var columns = []string{"name", "description", "length", "latitude", "longitude", "distance"}
