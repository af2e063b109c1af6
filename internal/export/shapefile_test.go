package export

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obbardc/fancy-free-walks/internal/walk"
)

// attr trims the NUL/space padding DBF fixed-width fields carry.
func attr(r *shp.Reader, field int) string {
	return strings.TrimSpace(strings.TrimRight(r.Attribute(field), "\x00"))
}

func TestWriteShapefile_PointsAndAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walks.shp")
	require.NoError(t, WriteShapefile(sampleWalks, path))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	var names []string
	var points []*shp.Point
	for r.Next() {
		_, shape := r.Shape()
		point, ok := shape.(*shp.Point)
		require.True(t, ok)
		points = append(points, point)
		names = append(names, attr(r, 0))

		length, err := strconv.ParseFloat(attr(r, 2), 64)
		require.NoError(t, err)
		assert.InDelta(t, 4.50, length, 0.001)
	}

	// The second sample walk has no start point and is skipped.
	require.Len(t, points, 1)
	assert.Equal(t, "Leith Hill", names[0])
	assert.InDelta(t, -0.371, points[0].X, 1e-9)
	assert.InDelta(t, 51.176, points[0].Y, 1e-9)
}

func TestWriteShapefile_TruncatesLongDescription(t *testing.T) {
	long := walk.Walk{
		Name:        "long",
		Description: strings.Repeat("x", 400),
		Latitude:    51.0,
		Longitude:   -0.2,
	}

	path := filepath.Join(t.TempDir(), "walks.shp")
	require.NoError(t, WriteShapefile([]walk.Walk{long}, path))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck

	require.True(t, r.Next())
	assert.Len(t, attr(r, 1), dbfDescriptionMax)
}
