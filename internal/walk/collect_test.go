package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/obbardc/fancy-free-walks/internal/kml"
)

func strp(s string) *string { return &s }

func placemark(name, description string, coord geom.Coord) *kml.Placemark {
	pm := &kml.Placemark{Name: strp(name)}
	if description != "" {
		pm.Description = &description
	}
	if coord != nil {
		pm.Geometry = &kml.Point{Coord: coord}
	}
	return pm
}

func TestCollect_NestedFolders(t *testing.T) {
	// Folder containing a sub-folder with two placemarks, plus one placemark
	// at the top level: exactly 3 records, in document order.
	root := &kml.Document{Children: []kml.Node{
		&kml.Style{},
		&kml.Folder{Children: []kml.Node{
			&kml.Folder{Children: []kml.Node{
				placemark("first", "", nil),
				placemark("second", "", nil),
			}},
		}},
		&kml.StyleMap{},
		placemark("third", "", nil),
		&kml.Raw{Local: "NetworkLink"},
	}}

	walks, skips, err := Collect(root, Options{Home: home})
	require.NoError(t, err)
	assert.Empty(t, skips)

	require.Len(t, walks, 3)
	assert.Equal(t, "first", walks[0].Name)
	assert.Equal(t, "second", walks[1].Name)
	assert.Equal(t, "third", walks[2].Name)
}

func TestCollect_DecodesFields(t *testing.T) {
	root := &kml.Document{Children: []kml.Node{
		placemark("Leith Hill", "A lovely 4½ mile walk", geom.Coord{-0.243409, 51.097848}),
	}}

	walks, _, err := Collect(root, Options{Home: home})
	require.NoError(t, err)
	require.Len(t, walks, 1)

	w := walks[0]
	assert.Equal(t, "Leith Hill", w.Name)
	assert.Equal(t, "A lovely 4½ mile walk", w.Description)
	assert.InDelta(t, 4.50, w.Length, 0.001)
	assert.InDelta(t, 51.097848, w.Latitude, 1e-9)
	assert.InDelta(t, -0.243409, w.Longitude, 1e-9)
	assert.Zero(t, w.Distance) // walk starts at home
}

func TestCollect_DefaultsWithoutDescription(t *testing.T) {
	root := &kml.Document{Children: []kml.Node{placemark("bare", "", nil)}}

	walks, _, err := Collect(root, Options{Home: home})
	require.NoError(t, err)
	require.Len(t, walks, 1)

	assert.Equal(t, "", walks[0].Description)
	assert.Zero(t, walks[0].Length)
}

func TestCollect_NonPointGeometryLeavesDefaults(t *testing.T) {
	pm := placemark("route", "a 3 mile loop", nil)
	pm.Geometry = &kml.LineString{Coords: []geom.Coord{{0, 51}, {0.1, 51.1}}}
	root := &kml.Document{Children: []kml.Node{pm}}

	walks, _, err := Collect(root, Options{Home: home})
	require.NoError(t, err)
	require.Len(t, walks, 1)

	w := walks[0]
	assert.InDelta(t, 3.0, w.Length, 0.001) // description still mined
	assert.Zero(t, w.Latitude)
	assert.Zero(t, w.Longitude)
	assert.Zero(t, w.Distance)
}

func TestCollect_MissingNameFatal(t *testing.T) {
	root := &kml.Document{Children: []kml.Node{
		placemark("named", "", nil),
		&kml.Placemark{},
	}}

	_, _, err := Collect(root, Options{Home: home})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestCollect_SkipMissingName(t *testing.T) {
	root := &kml.Document{Children: []kml.Node{
		placemark("kept", "", nil),
		&kml.Placemark{Description: strp("nameless walk")},
	}}

	walks, skips, err := Collect(root, Options{Home: home, SkipMissingName: true})
	require.NoError(t, err)
	require.Len(t, walks, 1)
	assert.Equal(t, "kept", walks[0].Name)
	require.Len(t, skips, 1)
	assert.Contains(t, skips[0].Reason, "no name")
}

func TestCollect_BadLengthTokenFatal(t *testing.T) {
	root := &kml.Document{Children: []kml.Node{
		placemark("broken", "1¼¾ miles of confusion", nil),
	}}

	_, _, err := Collect(root, Options{Home: home})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestSortByDistance_Stable(t *testing.T) {
	walks := []Walk{
		{Name: "A", Distance: 5.0},
		{Name: "B", Distance: 2.0},
		{Name: "C", Distance: 2.0},
	}

	SortByDistance(walks)

	require.Len(t, walks, 3)
	assert.Equal(t, "B", walks[0].Name)
	assert.Equal(t, "C", walks[1].Name)
	assert.Equal(t, "A", walks[2].Name)
}
