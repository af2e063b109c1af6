package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

// dbfDescriptionMax is the DBF character field ceiling; longer descriptions
// are truncated in this format only.
const dbfDescriptionMax = 254

// WriteShapefile writes walks as a point shapefile with NAME, DESCR, LENGTH
// and DISTANCE attributes, for loading into GIS tools. Walks without a point
// geometry have nothing to plot and are skipped in this format only.
func WriteShapefile(walks []walk.Walk, path string) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close() //nolint:errcheck

	fields := []shp.Field{
		shp.StringField("NAME", 120),
		shp.StringField("DESCR", dbfDescriptionMax),
		shp.FloatField("LENGTH", 12, 2),
		shp.FloatField("DISTANCE", 12, 2),
	}
	w.SetFields(fields)

	row := 0
	skipped := 0
	for _, rec := range walks {
		// (0,0) is the no-geometry default, not a real start point.
		if rec.Latitude == 0 && rec.Longitude == 0 {
			skipped++
			continue
		}

		w.Write(&shp.Point{X: rec.Longitude, Y: rec.Latitude})

		descr := rec.Description
		if len(descr) > dbfDescriptionMax {
			descr = descr[:dbfDescriptionMax]
		}

		names := []string{"NAME", "DESCR", "LENGTH", "DISTANCE"}
		attrs := []any{rec.Name, descr, rec.Length, rec.Distance}
		for i, v := range attrs {
			if err := w.WriteAttribute(row, i, v); err != nil {
				return eris.Wrapf(err, "export: write attribute %s for %q", names[i], rec.Name)
			}
		}
		row++
	}

	if skipped > 0 {
		zap.L().Debug("shapefile export skipped walks without a start point",
			zap.Int("skipped", skipped),
		)
	}
	return nil
}
