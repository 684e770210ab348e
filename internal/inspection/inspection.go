// Package inspection defines the core entities of the region query system:
// inspection points captured on a 2-D plane and the axis-aligned regions
// used to select them.
package inspection

import (
	"cmp"
	"slices"
)

// Point is a single inspection point.
//
// Identity is carried by ID: two points with the same ID are the same point,
// regardless of where they were fetched from. GroupID associates the point
// with its inspection group; Category is a free-form integer label assigned
// by the upstream pipeline.
type Point struct {
	ID       int64
	GroupID  int64
	X        float64
	Y        float64
	Category int
}

// SortPoints orders points in place by ascending Y, then ascending X, then
// ascending ID. The ID tie-break makes the order total: points sharing exact
// coordinates always appear in a stable, documented order.
func SortPoints(pts []Point) {
	slices.SortFunc(pts, func(a, b Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
