package musk

import "testing"

// TestShortIteration reproduces scenario E1: k=3, seq "ATGCTGA", canonical
// mode (each expected code is the smaller of the k-mer and its reverse
// complement, e.g. TGC=0b111001 vs GCA=0b100100).
func TestShortIteration(t *testing.T) {
	it, err := NewKmerIterator([]byte("ATGCTGA"), 3, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0b001110, 0b100100, 0b001001, 0b010010, 0b110100}
	for i, w := range want {
		got, ok := it.Next()
		if !ok {
			t.Fatalf("kmer %d: iterator ended early", i)
		}
		if got != w {
			t.Errorf("kmer %d: got %06b want %06b", i, got, w)
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}

func TestShortSequenceYieldsNothing(t *testing.T) {
	it, err := NewKmerIterator([]byte("AC"), 3, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected no k-mers from a sequence shorter than k")
	}
}

func TestAmbiguousBaseResetsWindow(t *testing.T) {
	// "CGATTAAAGATAGAAATACACGNTGCGAGCAATCAAATT" with k=14, matching the
	// MUSK reference's encode-from-scratch behavior.
	seq := "CGATTAAAGATAGAAATACACGNTGCGAGCAATCAAATT"
	want := []uint32{
		0b_01_10_00_11_11_00_00_00_10_00_11_00_10_00,
		0b_10_00_11_11_00_00_00_10_00_11_00_10_00_00,
		0b_00_11_11_00_00_00_10_00_11_00_10_00_00_00,
		0b_11_11_00_00_00_10_00_11_00_10_00_00_00_11,
		0b_11_00_00_00_10_00_11_00_10_00_00_00_11_00,
		0b_00_00_00_10_00_11_00_10_00_00_00_11_00_01,
		0b_00_00_10_00_11_00_10_00_00_00_11_00_01_00,
		0b_00_10_00_11_00_10_00_00_00_11_00_01_00_01,
		0b_10_00_11_00_10_00_00_00_11_00_01_00_01_10,
		0b_11_10_01_10_00_10_01_00_00_11_01_00_00_00,
		0b_10_01_10_00_10_01_00_00_11_01_00_00_00_11,
		0b_01_10_00_10_01_00_00_11_01_00_00_00_11_11,
	}
	it, err := NewKmerIterator([]byte(seq), 14, false)
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range want {
		got, ok := it.Next()
		if !ok {
			t.Fatalf("kmer %d: iterator ended early", i)
		}
		if got != w {
			t.Errorf("kmer %d: got %014b want %014b", i, got, w)
		}
	}
}

func TestCanonicalModeEmitsMin(t *testing.T) {
	k := 4
	it, err := NewKmerIterator([]byte("ACGTACGT"), k, true)
	if err != nil {
		t.Fatal(err)
	}
	plain, _ := NewKmerIterator([]byte("ACGTACGT"), k, false)
	for {
		c, ok := it.Next()
		p, ok2 := plain.Next()
		if ok != ok2 {
			t.Fatal("canonical and plain iterators disagree on length")
		}
		if !ok {
			break
		}
		want := Canonical(p, k)
		if c != want {
			t.Errorf("canonical iterator emitted %d, want %d", c, want)
		}
	}
}
