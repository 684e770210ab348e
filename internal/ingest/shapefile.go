package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// DBF attribute names the shapefile loader recognizes, matched
// case-insensitively.
const (
	categoryAttr = "category"
	groupAttr    = "group_id"
)

// LoadShapefile reads point geometries from an ESRI shapefile and writes
// them to s. Records get 1-based ids in file order. When the DBF table
// carries a "category" or "group_id" attribute it is used; otherwise
// category defaults to 0 and each point forms its own group (group id =
// point id). Non-point layers are rejected.
func LoadShapefile(ctx context.Context, s store.Store, path string, opts *Options) (*Result, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	categoryField, groupField := -1, -1
	for i, fld := range r.Fields() {
		switch strings.ToLower(fld.String()) {
		case categoryAttr:
			categoryField = i
		case groupAttr:
			groupField = i
		}
	}

	var pts []inspection.Point
	for r.Next() {
		idx, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			return nil, fmt.Errorf("record %d: unsupported shape %T, only point layers load", idx, shape)
		}

		id := int64(idx) + 1
		p := inspection.Point{ID: id, GroupID: id, X: pt.X, Y: pt.Y}
		if categoryField >= 0 {
			v, err := strconv.Atoi(strings.TrimSpace(r.ReadAttribute(idx, categoryField)))
			if err != nil {
				return nil, fmt.Errorf("record %d: category attribute: %w", idx, err)
			}
			p.Category = v
		}
		if groupField >= 0 {
			v, err := strconv.ParseInt(strings.TrimSpace(r.ReadAttribute(idx, groupField)), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("record %d: group_id attribute: %w", idx, err)
			}
			p.GroupID = v
		}
		pts = append(pts, p)
	}

	return writePoints(ctx, s, pts, opts.batchSize())
}
