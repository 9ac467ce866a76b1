package musk

import "testing"

func TestLossyCompressDropsIsolatedBit(t *testing.T) {
	// A single isolated hit at 20, flanked by long zero runs on both sides,
	// should be dropped at every compression level.
	rle := buildRLE([]uint64{20, 100, 101, 102})
	for level := 1; level <= 3; level++ {
		got := LossyCompressColumn(rle, level).Iterate()
		if len(got) == 0 || got[0] == 20 {
			t.Fatalf("level %d: expected isolated bit 20 dropped, got %v", level, got)
		}
	}
}

func TestLossyCompressKeepsDenseRun(t *testing.T) {
	rle := buildRLE([]uint64{0, 1, 2, 3, 4, 5})
	got := LossyCompressColumn(rle, 3).Iterate()
	want := []uint64{0, 1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestLossyCompressKeepsCloseIsolatedBits(t *testing.T) {
	// Isolated bits close together (small gaps) survive at level 1.
	rle := buildRLE([]uint64{10, 12, 14})
	got := LossyCompressColumn(rle, 1).Iterate()
	if len(got) != 3 {
		t.Fatalf("got %v, want all three bits kept", got)
	}
}

func TestColumnDensity(t *testing.T) {
	rle := buildRLE([]uint64{0, 1, 2, 3})
	if d := ColumnDensity(rle, 8); d != 0.5 {
		t.Fatalf("got %v want 0.5", d)
	}
}
