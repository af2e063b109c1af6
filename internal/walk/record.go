// Package walk extracts walk records from a parsed map-export tree: a
// depth-first traversal over containers, a decoder for placemark leaves,
// and the distance ranking the export order is defined by.
package walk

import "sort"

// Walk is the exported record for one walking route. Field declaration
// order is the export column order.
type Walk struct {
	Name        string  `csv:"name" json:"name"`
	Description string  `csv:"description" json:"description"`
	Length      float64 `csv:"length" json:"length"`
	Latitude    float64 `csv:"latitude" json:"latitude"`
	Longitude   float64 `csv:"longitude" json:"longitude"`
	Distance    float64 `csv:"distance" json:"distance"`
}

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// SortByDistance orders walks by distance-from-home ascending. The sort is
// stable: equal distances keep their document encounter order, and there is
// no secondary key.
func SortByDistance(walks []Walk) {
	sort.SliceStable(walks, func(i, j int) bool {
		return walks[i].Distance < walks[j].Distance
	})
}
