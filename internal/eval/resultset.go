package eval

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

// ResultSet is the value every query subtree evaluates to: a set of point
// ids plus the full records for those ids.
//
// INVARIANT: the bitmap and the points map hold exactly the same ids.
// Construction goes through add(), which maintains this; duplicates
// collapse to the first occurrence.
type ResultSet struct {
	ids    *roaring64.Bitmap
	points map[uint64]inspection.Point
}

func newResultSet() *ResultSet {
	return &ResultSet{
		ids:    roaring64.New(),
		points: make(map[uint64]inspection.Point),
	}
}

// NewResultSet builds a ResultSet from points. Duplicate ids collapse to
// the first occurrence.
func NewResultSet(pts []inspection.Point) *ResultSet {
	rs := newResultSet()
	for _, p := range pts {
		rs.add(p)
	}
	return rs
}

func (rs *ResultSet) add(p inspection.Point) {
	id := uint64(p.ID)
	if rs.ids.CheckedAdd(id) {
		rs.points[id] = p
	}
}

// Len returns the number of distinct points in the set.
func (rs *ResultSet) Len() int {
	return int(rs.ids.GetCardinality())
}

// Contains reports whether the set holds the point with the given id.
func (rs *ResultSet) Contains(id int64) bool {
	return rs.ids.Contains(uint64(id))
}

// IDs returns the point ids in ascending order.
func (rs *ResultSet) IDs() []int64 {
	out := make([]int64, 0, rs.Len())
	it := rs.ids.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}

// Points returns the point records in unspecified order.
func (rs *ResultSet) Points() []inspection.Point {
	out := make([]inspection.Point, 0, len(rs.points))
	for _, p := range rs.points {
		out = append(out, p)
	}
	return out
}

// intersectIDs returns the ids present in every set, ascending. The input
// sets are left untouched.
func intersectIDs(sets []*ResultSet) []int64 {
	acc := sets[0].ids.Clone()
	for _, s := range sets[1:] {
		acc.And(s.ids)
		if acc.IsEmpty() {
			return nil
		}
	}
	out := make([]int64, 0, acc.GetCardinality())
	it := acc.Iterator()
	for it.HasNext() {
		out = append(out, int64(it.Next()))
	}
	return out
}

// unionSets merges sets into a fresh ResultSet. Ids give point identity,
// so overlapping entries carry equal records and the first one wins.
func unionSets(sets []*ResultSet) *ResultSet {
	out := newResultSet()
	for _, s := range sets {
		out.ids.Or(s.ids)
		for id, p := range s.points {
			if _, ok := out.points[id]; !ok {
				out.points[id] = p
			}
		}
	}
	return out
}
