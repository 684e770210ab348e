// Package filter describes crop selections declaratively.
//
// A Filter is the contract between query evaluation and the backing store:
// the evaluator compiles each crop leaf into a Filter and hands it to the
// store's read interface. The description carries typed values only - which
// backend syntax it becomes (and whether values are bound as ? or $n
// parameters) is entirely the store adapter's concern.
package filter

import (
	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/query"
)

// Filter selects inspection points inside Bounds, optionally narrowed by
// category and group membership. Proper switches to whole-group semantics:
// only points whose entire group lies inside Bounds qualify.
type Filter struct {
	Bounds   inspection.Region
	Category *int    // nil = no category constraint
	Groups   []int64 // empty = no group constraint
	Proper   bool
}

// FromCrop compiles a crop leaf into its filter description.
func FromCrop(c *query.Crop) Filter {
	return Filter{
		Bounds:   c.Region,
		Category: c.Category,
		Groups:   c.Groups,
		Proper:   c.Proper,
	}
}
