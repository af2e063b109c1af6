package kml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"golang.org/x/text/encoding/htmlindex"
)

// Parse decodes a KML document into its node tree. The root element must be
// <kml> or <Document>; anything else is a malformed document.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "kml: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, eris.New("kml: document has no root element")
		}
		if err != nil {
			return nil, eris.Wrap(err, "kml: read token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		node, err := parseElement(dec, se)
		if err != nil {
			return nil, err
		}
		doc, ok := node.(*Document)
		if !ok {
			return nil, eris.Errorf("kml: unexpected root element <%s>", se.Name.Local)
		}
		return doc, nil
	}
}

// parseElement dispatches on the element name and consumes the element's
// entire subtree. Unrecognized elements become Raw markers.
func parseElement(dec *xml.Decoder, start xml.StartElement) (Node, error) {
	switch start.Name.Local {
	case "kml", "Document":
		return parseContainer(dec, start, false)
	case "Folder":
		return parseContainer(dec, start, true)
	case "Placemark":
		return parsePlacemark(dec, start)
	case "Style":
		if err := dec.Skip(); err != nil {
			return nil, eris.Wrap(err, "kml: skip <Style>")
		}
		return &Style{}, nil
	case "StyleMap":
		if err := dec.Skip(); err != nil {
			return nil, eris.Wrap(err, "kml: skip <StyleMap>")
		}
		return &StyleMap{}, nil
	default:
		if err := dec.Skip(); err != nil {
			return nil, eris.Wrapf(err, "kml: skip <%s>", start.Name.Local)
		}
		return &Raw{Local: start.Name.Local}, nil
	}
}

// parseContainer reads a kml/Document/Folder element, keeping children in
// document order. Struct-tag unmarshalling would regroup children by kind,
// which loses the encounter order the output is defined against.
func parseContainer(dec *xml.Decoder, start xml.StartElement, folder bool) (Node, error) {
	var name string
	var children []Node

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrapf(err, "kml: read <%s>", start.Name.Local)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "name" && name == "" {
				text, err := readText(dec, t)
				if err != nil {
					return nil, err
				}
				name = strings.TrimSpace(text)
				continue
			}
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			children = append(children, child)

		case xml.EndElement:
			if folder {
				return &Folder{Name: name, Children: children}, nil
			}
			return &Document{Name: name, Children: children}, nil
		}
	}
}

func parsePlacemark(dec *xml.Decoder, start xml.StartElement) (*Placemark, error) {
	pm := &Placemark{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrap(err, "kml: read <Placemark>")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				text, err := readText(dec, t)
				if err != nil {
					return nil, err
				}
				name := strings.TrimSpace(text)
				pm.Name = &name
			case "description":
				// Kept verbatim; the walk length is mined out of this text.
				text, err := readText(dec, t)
				if err != nil {
					return nil, err
				}
				pm.Description = &text
			case "Point", "LineString", "Polygon", "MultiGeometry":
				g, err := parseGeometry(dec, t)
				if err != nil {
					return nil, err
				}
				if pm.Geometry == nil {
					pm.Geometry = g
				}
			default:
				if err := dec.Skip(); err != nil {
					return nil, eris.Wrapf(err, "kml: skip <%s>", t.Name.Local)
				}
			}

		case xml.EndElement:
			return pm, nil
		}
	}
}

func parseGeometry(dec *xml.Decoder, start xml.StartElement) (Geometry, error) {
	switch start.Name.Local {
	case "Point":
		rings, err := collectRings(dec, start)
		if err != nil {
			return nil, err
		}
		if len(rings) == 0 || len(rings[0]) == 0 {
			return nil, eris.New("kml: <Point> has no coordinates")
		}
		return &Point{Coord: rings[0][0]}, nil

	case "LineString":
		rings, err := collectRings(dec, start)
		if err != nil {
			return nil, err
		}
		if len(rings) == 0 {
			return nil, eris.New("kml: <LineString> has no coordinates")
		}
		return &LineString{Coords: rings[0]}, nil

	case "Polygon":
		rings, err := collectRings(dec, start)
		if err != nil {
			return nil, err
		}
		return &Polygon{Rings: rings}, nil

	case "MultiGeometry":
		return parseMultiGeometry(dec)

	default:
		return nil, eris.Errorf("kml: unexpected geometry element <%s>", start.Name.Local)
	}
}

func parseMultiGeometry(dec *xml.Decoder) (Geometry, error) {
	mg := &MultiGeometry{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrap(err, "kml: read <MultiGeometry>")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Point", "LineString", "Polygon", "MultiGeometry":
				g, err := parseGeometry(dec, t)
				if err != nil {
					return nil, err
				}
				mg.Geometries = append(mg.Geometries, g)
			default:
				if err := dec.Skip(); err != nil {
					return nil, eris.Wrapf(err, "kml: skip <%s>", t.Name.Local)
				}
			}

		case xml.EndElement:
			return mg, nil
		}
	}
}

// collectRings consumes the rest of a geometry element's subtree and parses
// every <coordinates> block found, one ring per block. Polygons nest them
// under <outerBoundaryIs>/<innerBoundaryIs>/<LinearRing>; points and lines
// carry exactly one.
func collectRings(dec *xml.Decoder, start xml.StartElement) ([][]geom.Coord, error) {
	var rings [][]geom.Coord
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrapf(err, "kml: read <%s>", start.Name.Local)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "coordinates" {
				text, err := readText(dec, t)
				if err != nil {
					return nil, err
				}
				ring, err := parseCoordText(text)
				if err != nil {
					return nil, err
				}
				rings = append(rings, ring)
			} else {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	return rings, nil
}

// parseCoordText parses KML coordinate text: whitespace-separated tuples of
// "lon,lat[,alt]". Altitude is discarded.
func parseCoordText(text string) ([]geom.Coord, error) {
	var coords []geom.Coord

	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, eris.Errorf("kml: malformed coordinate tuple %q", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "kml: parse longitude %q", parts[0])
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, eris.Wrapf(err, "kml: parse latitude %q", parts[1])
		}
		coords = append(coords, geom.Coord{lon, lat})
	}

	return coords, nil
}

// readText flattens the text content of an element, including text inside
// nested elements (descriptions in the wild mix CDATA and inline markup).
func readText(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var sb strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", eris.Wrapf(err, "kml: read <%s> text", start.Name.Local)
		}

		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			inner, err := readText(dec, t)
			if err != nil {
				return "", err
			}
			sb.WriteString(inner)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
