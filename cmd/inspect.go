package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/obbardc/fancy-free-walks/internal/kml"
)

var inspectInput string

// treeStats summarizes a parsed map export for diagnostics.
type treeStats struct {
	Documents  int            `json:"documents"`
	Folders    int            `json:"folders"`
	Placemarks int            `json:"placemarks"`
	Styles     int            `json:"styles"`
	StyleMaps  int            `json:"style_maps"`
	Unknown    map[string]int `json:"unknown,omitempty"`

	Geometry geometryStats `json:"geometry"`
}

type geometryStats struct {
	Points      int `json:"points"`
	LineStrings int `json:"line_strings"`
	Polygons    int `json:"polygons"`
	Multi       int `json:"multi"`
	None        int `json:"none"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print tree statistics for a map export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := inspectInput
		if input == "" {
			input = cfg.Input.Path
		}

		root, err := kml.Load(cmd.Context(), input)
		if err != nil {
			return eris.Wrap(err, "inspect: load map")
		}

		stats := treeStats{Unknown: map[string]int{}}
		tally(root, &stats)
		if len(stats.Unknown) == 0 {
			stats.Unknown = nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			return eris.Wrap(err, "inspect: encode stats")
		}
		return nil
	},
}

func tally(node kml.Node, stats *treeStats) {
	switch n := node.(type) {
	case *kml.Document:
		stats.Documents++
		for _, child := range n.Children {
			tally(child, stats)
		}
	case *kml.Folder:
		stats.Folders++
		for _, child := range n.Children {
			tally(child, stats)
		}
	case *kml.Placemark:
		stats.Placemarks++
		tallyGeometry(n.Geometry, &stats.Geometry)
	case *kml.Style:
		stats.Styles++
	case *kml.StyleMap:
		stats.StyleMaps++
	case *kml.Raw:
		stats.Unknown[n.Local]++
	}
}

func tallyGeometry(g kml.Geometry, stats *geometryStats) {
	switch g.(type) {
	case *kml.Point:
		stats.Points++
	case *kml.LineString:
		stats.LineStrings++
	case *kml.Polygon:
		stats.Polygons++
	case *kml.MultiGeometry:
		stats.Multi++
	case nil:
		stats.None++
	}
}

func init() {
	inspectCmd.Flags().StringVar(&inspectInput, "input", "", "map export path or URL (default from config)")
	rootCmd.AddCommand(inspectCmd)
}
