package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

// createTestStore creates a file-backed SQLite store in a temp directory.
func createTestStore(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInsert seeds the store with points, failing the test on error.
func mustInsert(t *testing.T, s *SQLite, pts []inspection.Point) {
	t.Helper()
	if _, err := s.InsertPoints(context.Background(), pts); err != nil {
		t.Fatalf("InsertPoints() failed: %v", err)
	}
}

// samplePoints is a small fixture spanning three groups and two categories:
//
//	id 1  group 1  (1, 1)  category 0
//	id 2  group 1  (2, 2)  category 0
//	id 3  group 2  (3, 3)  category 1
//	id 4  group 2  (9, 9)  category 1
//	id 5  group 3  (4, 4)  category 0
//
// Group 1 lies entirely inside the region (0,0)-(5,5); group 2 has one
// member outside it; group 3 is a single inside point.
func samplePoints() []inspection.Point {
	return []inspection.Point{
		{ID: 1, GroupID: 1, X: 1, Y: 1, Category: 0},
		{ID: 2, GroupID: 1, X: 2, Y: 2, Category: 0},
		{ID: 3, GroupID: 2, X: 3, Y: 3, Category: 1},
		{ID: 4, GroupID: 2, X: 9, Y: 9, Category: 1},
		{ID: 5, GroupID: 3, X: 4, Y: 4, Category: 0},
	}
}

// pointIDs extracts ids in slice order.
func pointIDs(pts []inspection.Point) []int64 {
	ids := make([]int64, 0, len(pts))
	for _, p := range pts {
		ids = append(ids, p.ID)
	}
	return ids
}

// containsID reports whether pts holds a point with the given id.
func containsID(pts []inspection.Point, id int64) bool {
	for _, p := range pts {
		if p.ID == id {
			return true
		}
	}
	return false
}
