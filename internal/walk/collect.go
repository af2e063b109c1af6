package walk

import (
	"github.com/rotisserie/eris"

	"github.com/obbardc/fancy-free-walks/internal/kml"
)

// Options configures collection. Home is required: distances are always
// computed relative to it rather than a compiled-in coordinate.
type Options struct {
	Home Coordinate

	// SkipMissingName skips placemarks without a <name> instead of failing
	// the whole run, reporting each skip to the caller.
	SkipMissingName bool
}

// Skip records one placemark dropped during collection and why.
type Skip struct {
	Reason string
}

// Collect walks the node tree depth-first and decodes every reachable
// placemark into a Walk, preserving document order. Containers recurse,
// decorative and unknown nodes contribute nothing, and no node kind is ever
// an error: unknown structure must not abort the walk.
func Collect(root kml.Node, opts Options) ([]Walk, []Skip, error) {
	var walks []Walk
	var skips []Skip

	var visit func(node kml.Node) error
	visit = func(node kml.Node) error {
		switch n := node.(type) {
		case *kml.Document:
			for _, child := range n.Children {
				if err := visit(child); err != nil {
					return err
				}
			}
		case *kml.Folder:
			for _, child := range n.Children {
				if err := visit(child); err != nil {
					return err
				}
			}
		case *kml.Placemark:
			if n.Name == nil {
				if opts.SkipMissingName {
					skips = append(skips, Skip{Reason: skipReason(n)})
					return nil
				}
				return eris.New("walk: placemark has no name")
			}
			w, err := decodePlacemark(n, opts.Home)
			if err != nil {
				return err
			}
			walks = append(walks, w)
		}
		// Style, StyleMap and Raw nodes fall through untouched.
		return nil
	}

	if err := visit(root); err != nil {
		return nil, nil, err
	}
	return walks, skips, nil
}

// decodePlacemark builds exactly one Walk from a named placemark. Optional
// fields degrade to zero values; they never drop the record.
func decodePlacemark(pm *kml.Placemark, home Coordinate) (Walk, error) {
	w := Walk{Name: *pm.Name}

	if pm.Description != nil {
		w.Description = *pm.Description

		length, err := ExtractLength(w.Description)
		if err != nil {
			return Walk{}, eris.Wrapf(err, "walk: placemark %q", w.Name)
		}
		w.Length = length
	}

	// Only a single point marks a walk's start; lines, polygons and
	// multi-geometries leave the coordinates and distance at zero.
	if point, ok := pm.Geometry.(*kml.Point); ok {
		w.Longitude = point.Coord.X()
		w.Latitude = point.Coord.Y()
		w.Distance = DistanceMiles(home, Coordinate{
			Latitude:  w.Latitude,
			Longitude: w.Longitude,
		})
	}

	return w, nil
}

func skipReason(pm *kml.Placemark) string {
	if pm.Description != nil && *pm.Description != "" {
		return "placemark has no name (description present)"
	}
	return "placemark has no name"
}
