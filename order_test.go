package musk

import "testing"

func matrixFrom(rows [][]uint32) *DistanceMatrix {
	g := len(rows)
	d := NewDistanceMatrix(g)
	for i := 0; i < g; i++ {
		for j := 0; j < i; j++ {
			d.set(i, j, rows[i][j])
		}
	}
	return d
}

func TestGreedyOrderingScenario(t *testing.T) {
	d := matrixFrom([][]uint32{
		{0, 0, 0},
		{1, 0, 0},
		{9, 2, 0},
	})
	got := GreedyOrdering(d, 0)
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestGreedyOrderingIsPermutation(t *testing.T) {
	d := matrixFrom([][]uint32{
		{0, 0, 0, 0},
		{3, 0, 0, 0},
		{7, 1, 0, 0},
		{2, 8, 4, 0},
	})
	ordering := GreedyOrdering(d, 2)
	seen := make([]bool, d.G())
	for _, v := range ordering {
		if seen[v] {
			t.Fatalf("index %d repeated in ordering %v", v, ordering)
		}
		seen[v] = true
	}
	for i, s := range seen {
		if !s {
			t.Fatalf("index %d missing from ordering %v", i, ordering)
		}
	}
}

func TestOrderingStatistics(t *testing.T) {
	d := matrixFrom([][]uint32{
		{0, 0, 0},
		{1, 0, 0},
		{9, 2, 0},
	})
	avg, total := OrderingStatistics([]int{0, 1, 2}, d)
	if total != 3 {
		t.Fatalf("got total %d want 3", total)
	}
	if avg != 1.5 {
		t.Fatalf("got avg %v want 1.5", avg)
	}
}
