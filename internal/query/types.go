package query

import "github.com/Kangyi02/DaoAI-assessment/internal/inspection"

// Node represents one operation of a region query.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the evaluator.
//
// Node types:
//   - Crop: select points inside a region, with optional narrowing
//   - And: intersect the results of all operands
//   - Or: union the results of all operands
type Node interface {
	node() // Marker method - seals interface to this package
}

// Crop selects the inspection points lying inside an axis-aligned region.
//
// Semantics:
//
//	point is selected when
//	  Region.Contains(point.X, point.Y)
//	  AND (Category == nil OR point.Category == *Category)
//	  AND (len(Groups) == 0 OR point.GroupID ∈ Groups)
//	  AND (!Proper OR point's whole group fits inside Region)
//
// Region edges are closed: boundary points are selected. An inverted region
// is legal and selects nothing.
//
// Category nil means no category constraint. Groups nil means the constraint
// was absent; an empty non-nil slice means it was present but empty - both
// select across all groups, matching the upstream tooling this system
// replaces.
//
// Proper switches the crop to whole-group semantics: a point qualifies only
// if every point of its group lies inside the region (group membership is
// judged against all points of the group, not just those matching Category
// or Groups). One stray group member outside the region disqualifies all of
// its members.
type Crop struct {
	Region   inspection.Region
	Category *int    // nil = no category constraint
	Groups   []int64 // empty = no group constraint
	Proper   bool
}

func (*Crop) node() {}

// And intersects the results of its operands. Points must appear in every
// operand result to survive. No operands means the empty result set; a
// single operand passes through unchanged.
type And struct {
	Operands []Node
}

func (*And) node() {}

// Or unions the results of its operands, collapsing duplicates by point id.
// No operands means the empty result set.
type Or struct {
	Operands []Node
}

func (*Or) node() {}
