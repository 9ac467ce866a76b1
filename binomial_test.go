package musk

import "testing"

func TestBinomialSFBoundaries(t *testing.T) {
	if got := BinomialSF(0.3, 10, 10); !got.IsZero() && got.AsFloat64() > 1e-12 {
		// sf(n,n,p) should be ~0: no trials remain to exceed.
		t.Fatalf("sf(x=n) = %v, want ~0", got.AsFloat64())
	}
	sf0 := BinomialSF(0.3, 10, 0)
	if got := sf0.AsFloat64(); got < 0.9 {
		t.Fatalf("sf(x=0) = %v, want close to 1", got)
	}
}

func TestBinomialSFMonotoneDecreasingInX(t *testing.T) {
	n := uint64(20)
	p := 0.4
	prev := BinomialSF(p, n, 0).AsFloat64()
	for x := uint64(1); x < n; x++ {
		cur := BinomialSF(p, n, x).AsFloat64()
		if cur > prev+1e-9 {
			t.Fatalf("sf not monotone decreasing at x=%d: prev=%v cur=%v", x, prev, cur)
		}
		prev = cur
	}
}

func TestBinomialSFMonotoneInP(t *testing.T) {
	n, x := uint64(30), uint64(10)
	prev := BinomialSF(0.05, n, x).AsFloat64()
	for _, p := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
		cur := BinomialSF(p, n, x).AsFloat64()
		if cur < prev-1e-9 {
			t.Fatalf("sf not monotone increasing in p at p=%v: prev=%v cur=%v", p, prev, cur)
		}
		prev = cur
	}
}

func TestBinomialSFExtremeUnderflow(t *testing.T) {
	// A rare event deep in the tail of a large-n binomial: ordinary
	// float64 arithmetic underflows to 0 here, BigExpFloat should not.
	got := BinomialSF(1e-6, 100000, 500)
	if got.IsZero() {
		t.Fatal("expected a nonzero (if tiny) survival probability")
	}
}
