package musk

import "testing"

func TestComputeDistanceMatrixMatchesFormula(t *testing.T) {
	a := NewGroupBitmap(3, false)
	b := NewGroupBitmap(3, false)
	c := NewGroupBitmap(3, false)
	_ = a.AddSequence([]byte("ATGCTGA"))
	_ = b.AddSequence([]byte("ATGCAAA"))
	_ = c.AddSequence([]byte("TTTTTTT"))

	bitmaps := []*GroupBitmap{a, b, c}
	d, err := ComputeDistanceMatrix(bitmaps)
	if err != nil {
		t.Fatal(err)
	}
	for i := range bitmaps {
		for j := range bitmaps {
			inter := bitmaps[i].IntersectionLen(bitmaps[j])
			want := bitmaps[i].Len() + bitmaps[j].Len() - 2*inter
			if got := d.At(i, j); uint64(got) != want {
				t.Fatalf("D[%d][%d] = %d, want %d", i, j, got, want)
			}
		}
	}
}

func TestDistanceMatrixSymmetricAndZeroDiagonal(t *testing.T) {
	d := NewDistanceMatrix(4)
	d.set(2, 0, 5)
	d.set(3, 1, 7)
	if d.At(0, 2) != 5 || d.At(2, 0) != 5 {
		t.Fatal("expected symmetric access")
	}
	if d.At(1, 3) != 7 || d.At(3, 1) != 7 {
		t.Fatal("expected symmetric access")
	}
	for i := 0; i < 4; i++ {
		if d.At(i, i) != 0 {
			t.Fatalf("diagonal D[%d][%d] should be zero", i, i)
		}
	}
}

func TestDistanceMatrixDense(t *testing.T) {
	d := NewDistanceMatrix(3)
	d.set(1, 0, 4)
	d.set(2, 0, 6)
	d.set(2, 1, 2)
	sym := d.Dense()
	r, c := sym.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("got dims %d,%d want 3,3", r, c)
	}
	if sym.At(1, 0) != 4 || sym.At(0, 1) != 4 {
		t.Fatal("dense matrix not symmetric")
	}
}
