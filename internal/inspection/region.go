package inspection

// Region is an axis-aligned rectangle, closed on all four edges: a point on
// the boundary is inside. A region with MinX > MaxX or MinY > MaxY is legal
// and contains nothing; callers never need to pre-validate coordinates.
type Region struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Contains reports whether (x, y) lies inside the region, boundary included.
func (r Region) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Empty reports whether the region can contain no point at all.
func (r Region) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}
