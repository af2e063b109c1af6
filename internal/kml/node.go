// Package kml loads KMZ/KML map exports into a tree of typed nodes.
//
// The node set is closed: container elements (kml, Document, Folder) carry
// their children in document order, Placemark is the only leaf of interest,
// and Style/StyleMap are recognized but carry nothing. Every other element
// is preserved as a Raw marker so unknown structure never aborts a parse.
package kml

import "github.com/twpayne/go-geom"

// Node is the closed set of tree node kinds produced by Parse.
type Node interface {
	node()
}

// Document is a container element: the <kml> root, a <Document>, or any
// document-level wrapper. Children preserve document order.
type Document struct {
	Name     string
	Children []Node
}

// Folder is a grouping container inside a document.
type Folder struct {
	Name     string
	Children []Node
}

// Placemark is a point-of-interest leaf. Name and Description are nil when
// the corresponding element is absent, which callers must distinguish from
// an empty string.
type Placemark struct {
	Name        *string
	Description *string
	Geometry    Geometry
}

// Style is a recognized decorative element; its contents are discarded.
type Style struct{}

// StyleMap is a recognized decorative element; its contents are discarded.
type StyleMap struct{}

// Raw marks an element the parser does not model. It contributes nothing to
// a traversal but records the element name for diagnostics.
type Raw struct {
	Local string
}

func (*Document) node()  {}
func (*Folder) node()    {}
func (*Placemark) node() {}
func (*Style) node()     {}
func (*StyleMap) node()  {}
func (*Raw) node()       {}

// Geometry is the closed set of placemark geometry kinds.
type Geometry interface {
	geometry()
}

// Point is a single coordinate. Coord is ordered X (longitude), Y (latitude).
type Point struct {
	Coord geom.Coord
}

// LineString is an ordered path of coordinates.
type LineString struct {
	Coords []geom.Coord
}

// Polygon holds the coordinates of a polygon's rings, outer ring first.
type Polygon struct {
	Rings [][]geom.Coord
}

// MultiGeometry groups several geometries under one placemark.
type MultiGeometry struct {
	Geometries []Geometry
}

func (*Point) geometry()         {}
func (*LineString) geometry()    {}
func (*Polygon) geometry()       {}
func (*MultiGeometry) geometry() {}
