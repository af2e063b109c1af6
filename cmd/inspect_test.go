package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbardc/fancy-free-walks/internal/kml"
	"github.com/obbardc/fancy-free-walks/internal/store"
)

func TestTally(t *testing.T) {
	name := "walk"
	root := &kml.Document{Children: []kml.Node{
		&kml.Style{},
		&kml.StyleMap{},
		&kml.Folder{Children: []kml.Node{
			&kml.Placemark{Name: &name, Geometry: &kml.Point{}},
			&kml.Placemark{Name: &name, Geometry: &kml.LineString{}},
			&kml.Placemark{Name: &name},
		}},
		&kml.Raw{Local: "NetworkLink"},
		&kml.Raw{Local: "NetworkLink"},
	}}

	stats := treeStats{Unknown: map[string]int{}}
	tally(root, &stats)

	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Folders)
	assert.Equal(t, 3, stats.Placemarks)
	assert.Equal(t, 1, stats.Styles)
	assert.Equal(t, 1, stats.StyleMaps)
	assert.Equal(t, map[string]int{"NetworkLink": 2}, stats.Unknown)
	assert.Equal(t, 1, stats.Geometry.Points)
	assert.Equal(t, 1, stats.Geometry.LineStrings)
	assert.Equal(t, 1, stats.Geometry.None)
}

func TestFormatRunsList(t *testing.T) {
	var sb strings.Builder
	formatRunsList(&sb, []store.ExportRun{
		{Input: "summary.kmz", Output: "out.csv", Format: "csv", Records: 120, Skipped: 2},
	})

	out := sb.String()
	require.Contains(t, out, "INPUT")
	assert.Contains(t, out, "summary.kmz")
	assert.Contains(t, out, "120")
}
