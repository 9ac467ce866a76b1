package musk

import "testing"

func TestGroupBitmapAddSequence(t *testing.T) {
	g := NewGroupBitmap(3, false)
	if err := g.AddSequence([]byte("ATGCTGA")); err != nil {
		t.Fatal(err)
	}
	// 5 overlapping 3-mers, all distinct per E1.
	if g.Len() != 5 {
		t.Fatalf("got %d distinct k-mers, want 5", g.Len())
	}
}

func TestGroupBitmapIntersection(t *testing.T) {
	a := NewGroupBitmap(2, false)
	b := NewGroupBitmap(2, false)
	_ = a.AddSequence([]byte("ACGTAC"))
	_ = b.AddSequence([]byte("ACGTTT"))
	if got := a.IntersectionLen(b); got == 0 {
		t.Fatal("expected nonzero intersection")
	}
}
