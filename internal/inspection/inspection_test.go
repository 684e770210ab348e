package inspection

import (
	"slices"
	"testing"
)

func TestSortPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   []int64 // expected ID order after sorting
	}{
		{
			name: "orders by y first",
			points: []Point{
				{ID: 1, X: 0, Y: 5},
				{ID: 2, X: 9, Y: 1},
				{ID: 3, X: 4, Y: 3},
			},
			want: []int64{2, 3, 1},
		},
		{
			name: "x breaks y ties",
			points: []Point{
				{ID: 1, X: 7, Y: 2},
				{ID: 2, X: 3, Y: 2},
				{ID: 3, X: 5, Y: 2},
			},
			want: []int64{2, 3, 1},
		},
		{
			name: "id breaks exact coordinate ties",
			points: []Point{
				{ID: 9, X: 1, Y: 1},
				{ID: 2, X: 1, Y: 1},
				{ID: 5, X: 1, Y: 1},
			},
			want: []int64{2, 5, 9},
		},
		{
			name: "negative coordinates sort before positive",
			points: []Point{
				{ID: 1, X: 0, Y: 0},
				{ID: 2, X: -2.5, Y: -1},
				{ID: 3, X: 2.5, Y: -1},
			},
			want: []int64{2, 3, 1},
		},
		{
			name:   "empty slice",
			points: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortPoints(tt.points)

			got := make([]int64, 0, len(tt.points))
			for _, p := range tt.points {
				got = append(got, p.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("SortPoints order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"interior", 5, 2.5, true},
		{"on min x edge", 0, 2, true},
		{"on max x edge", 10, 2, true},
		{"on min y edge", 4, 0, true},
		{"on max y edge", 4, 5, true},
		{"corner", 10, 5, true},
		{"outside left", -0.001, 2, false},
		{"outside above", 4, 5.001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRegionEmpty(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   bool
	}{
		{"normal region", Region{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, false},
		{"degenerate point region", Region{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}, false},
		{"inverted x", Region{MinX: 5, MinY: 0, MaxX: 1, MaxY: 1}, true},
		{"inverted y", Region{MinX: 0, MinY: 9, MaxX: 1, MaxY: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}

	// A degenerate region still contains exactly its single point.
	point := Region{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4}
	if !point.Contains(3, 4) {
		t.Error("degenerate region should contain its own corner")
	}
	if point.Contains(3, 4.0001) {
		t.Error("degenerate region should contain nothing else")
	}
}
