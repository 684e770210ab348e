// Package ingest loads inspection datasets into a store.
//
// Two sources are supported: a directory of three aligned text files
// (points.txt, categories.txt, groups.txt - line i of each describes point
// i) and ESRI shapefiles with point geometry. Both assign 1-based ids in
// source order and write through the store's idempotent insert, so loading
// the same dataset twice adds nothing.
package ingest

import (
	"context"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// DefaultBatchSize is how many points are written per store call.
const DefaultBatchSize = 500

// Options configure a load.
type Options struct {
	// BatchSize controls how many points are buffered per store write
	// (default DefaultBatchSize).
	BatchSize int
}

func (o *Options) batchSize() int {
	if o == nil || o.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return o.BatchSize
}

// Result reports what a load did.
type Result struct {
	PointsRead     int   // points parsed from the source
	PointsInserted int64 // rows newly written; re-loading an ingested set inserts 0
	Groups         int   // distinct group ids seen
	Categories     int   // distinct categories seen
}

// writePoints pushes pts to the store in batches and tallies the result.
func writePoints(ctx context.Context, s store.Store, pts []inspection.Point, batchSize int) (*Result, error) {
	res := &Result{PointsRead: len(pts)}

	groups := make(map[int64]struct{})
	categories := make(map[int]struct{})
	for _, p := range pts {
		groups[p.GroupID] = struct{}{}
		categories[p.Category] = struct{}{}
	}
	res.Groups = len(groups)
	res.Categories = len(categories)

	for start := 0; start < len(pts); start += batchSize {
		end := min(start+batchSize, len(pts))
		n, err := s.InsertPoints(ctx, pts[start:end])
		if err != nil {
			return nil, err
		}
		res.PointsInserted += n
	}
	return res, nil
}
