package export

import (
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

// WriteCSV writes walks as a CSV file: header row from the Walk csv struct
// tags, then one row per record in slice order.
func WriteCSV(walks []walk.Walk, path string) error {
	data, err := csvutil.Marshal(walks)
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

// ReadCSV reads a walks CSV back into records. Used by the serve command and
// by round-trip verification.
func ReadCSV(path string) ([]walk.Walk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: read %s", path)
	}

	var walks []walk.Walk
	if err := csvutil.Unmarshal(data, &walks); err != nil {
		return nil, eris.Wrapf(err, "export: unmarshal %s", path)
	}
	return walks, nil
}
