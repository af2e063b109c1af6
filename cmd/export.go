package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obbardc/fancy-free-walks/internal/export"
	"github.com/obbardc/fancy-free-walks/internal/kml"
	"github.com/obbardc/fancy-free-walks/internal/store"
	"github.com/obbardc/fancy-free-walks/internal/walk"
)

var (
	exportInput     string
	exportOutput    string
	exportFormat    string
	exportHome      string
	exportSkipNames bool
	exportDump      bool
	exportRecord    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export walks from a map file, ranked by distance from home",
	Long: `Loads a KMZ/KML map export, decodes every placemark into a walk record,
sorts by distance from home and writes the result to a tabular file.

Examples:
  # Default input/output from config
  fancy-free-walks export

  # Explicit input, shapefile output, different home
  fancy-free-walks export --input summary.kmz --output walks.shp --format shp --home "51.5,-0.1"

  # Tolerate unnamed placemarks and keep a run record
  fancy-free-walks export --skip-missing-names --record`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		start := time.Now()

		input := exportInput
		if input == "" {
			input = cfg.Input.Path
		}
		output := exportOutput
		if output == "" {
			output = cfg.Export.Output
		}
		formatName := exportFormat
		if formatName == "" {
			formatName = cfg.Export.Format
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		home := walk.Coordinate{
			Latitude:  cfg.Home.Latitude,
			Longitude: cfg.Home.Longitude,
		}
		if exportHome != "" {
			home, err = parseCoordinate(exportHome)
			if err != nil {
				return err
			}
		}

		root, err := kml.Load(ctx, input)
		if err != nil {
			return eris.Wrap(err, "export: load map")
		}

		walks, skips, err := walk.Collect(root, walk.Options{
			Home:            home,
			SkipMissingName: exportSkipNames,
		})
		if err != nil {
			return eris.Wrap(err, "export: collect walks")
		}
		for _, s := range skips {
			zap.L().Warn("skipped placemark", zap.String("reason", s.Reason))
		}

		walk.SortByDistance(walks)

		if exportDump {
			if err := printWalksJSON(walks); err != nil {
				return err
			}
		}

		if err := export.Write(walks, output, format); err != nil {
			return err
		}

		if exportRecord {
			if err := recordRun(ctx, store.ExportRun{
				Input:    input,
				Output:   output,
				Format:   string(format),
				Records:  len(walks),
				Skipped:  len(skips),
				Duration: time.Since(start),
			}); err != nil {
				return err
			}
		}

		zap.L().Info("export complete",
			zap.String("input", input),
			zap.String("output", output),
			zap.String("format", string(format)),
			zap.Int("walks", len(walks)),
			zap.Int("skipped", len(skips)),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	},
}

// parseCoordinate parses a "lat,lon" flag value.
func parseCoordinate(s string) (walk.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return walk.Coordinate{}, eris.Errorf("export: home must be \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return walk.Coordinate{}, eris.Wrapf(err, "export: parse home latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return walk.Coordinate{}, eris.Wrapf(err, "export: parse home longitude %q", parts[1])
	}
	return walk.Coordinate{Latitude: lat, Longitude: lon}, nil
}

func printWalksJSON(walks []walk.Walk) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(walks); err != nil {
		return eris.Wrap(err, "export: dump walks")
	}
	return nil
}

func recordRun(ctx context.Context, run store.ExportRun) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	return st.RecordRun(ctx, &run)
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "map export path or URL (default from config)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path (default from config)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv, shp or xlsx (default from config)")
	exportCmd.Flags().StringVar(&exportHome, "home", "", "home coordinate as \"lat,lon\" (default from config)")
	exportCmd.Flags().BoolVar(&exportSkipNames, "skip-missing-names", false, "skip placemarks without a name instead of failing")
	exportCmd.Flags().BoolVar(&exportDump, "dump", false, "print the sorted record list as JSON before export")
	exportCmd.Flags().BoolVar(&exportRecord, "record", false, "record this run in the history store")
	rootCmd.AddCommand(exportCmd)
}
