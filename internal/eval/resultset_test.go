package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

func TestResultSet_DuplicatesCollapse(t *testing.T) {
	rs := NewResultSet([]inspection.Point{
		{ID: 1, X: 1, Y: 1},
		{ID: 2, X: 2, Y: 2},
		{ID: 1, X: 1, Y: 1},
	})

	assert.Equal(t, 2, rs.Len())
	assert.True(t, rs.Contains(1))
	assert.True(t, rs.Contains(2))
	assert.False(t, rs.Contains(3))
	assert.Len(t, rs.Points(), 2, "points map must track the id set")
}

func TestResultSet_IDsAscending(t *testing.T) {
	rs := NewResultSet([]inspection.Point{
		{ID: 42}, {ID: 7}, {ID: 1000}, {ID: 8},
	})

	assert.Equal(t, []int64{7, 8, 42, 1000}, rs.IDs())
}

func TestResultSet_Empty(t *testing.T) {
	rs := newResultSet()

	assert.Equal(t, 0, rs.Len())
	assert.Empty(t, rs.IDs())
	assert.Empty(t, rs.Points())
}

func TestIntersectIDs(t *testing.T) {
	a := NewResultSet([]inspection.Point{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}})
	b := NewResultSet([]inspection.Point{{ID: 2}, {ID: 3}, {ID: 5}})
	c := NewResultSet([]inspection.Point{{ID: 3}, {ID: 2}, {ID: 9}})

	assert.Equal(t, []int64{2, 3}, intersectIDs([]*ResultSet{a, b, c}))
}

func TestIntersectIDs_Disjoint(t *testing.T) {
	a := NewResultSet([]inspection.Point{{ID: 1}, {ID: 2}})
	b := NewResultSet([]inspection.Point{{ID: 3}, {ID: 4}})

	assert.Empty(t, intersectIDs([]*ResultSet{a, b}))
}

func TestIntersectIDs_LeavesOperandsIntact(t *testing.T) {
	a := NewResultSet([]inspection.Point{{ID: 1}, {ID: 2}})
	b := NewResultSet([]inspection.Point{{ID: 2}})

	intersectIDs([]*ResultSet{a, b})

	assert.Equal(t, 2, a.Len(), "intersection must not mutate its inputs")
	assert.Equal(t, 1, b.Len())
}

func TestUnionSets(t *testing.T) {
	a := NewResultSet([]inspection.Point{{ID: 1, X: 1}, {ID: 2, X: 2}})
	b := NewResultSet([]inspection.Point{{ID: 2, X: 2}, {ID: 3, X: 3}})

	u := unionSets([]*ResultSet{a, b})

	assert.Equal(t, 3, u.Len())
	assert.Equal(t, []int64{1, 2, 3}, u.IDs())
	assert.Len(t, u.Points(), 3, "overlap must not duplicate points")
}
