package musk

import (
	"reflect"
	"testing"
)

func buildRLE(values []uint64) *RunLengthEncoding {
	b := NewBuildRunLengthEncoding()
	for _, v := range values {
		b.Push(v)
	}
	return b.ToRLE()
}

func TestRLEFirstIsSet(t *testing.T) {
	values := []uint64{0, 8, 64, 65}
	rle := buildRLE(values)
	if got := rle.Iterate(); !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v want %v", got, values)
	}
}

func TestRLEFirstIsNotSet(t *testing.T) {
	values := []uint64{1, 36, 65}
	rle := buildRLE(values)
	if got := rle.Iterate(); !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v want %v", got, values)
	}
}

func TestRLEExactly15Zeros(t *testing.T) {
	values := []uint64{15, 16, 17, 18, 19}
	rle := buildRLE(values)
	if got := rle.Iterate(); !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v want %v", got, values)
	}
}

func TestRLEMaxRunBoundary(t *testing.T) {
	// 2^14-1 consecutive ones fit a single Ones run.
	n := int(maxRun)
	values := make([]uint64, n)
	for i := 0; i < n; i++ {
		values[i] = uint64(i)
	}
	rle := buildRLE(values)
	if got := rle.Iterate(); !reflect.DeepEqual(got, values) {
		t.Fatalf("mismatched round trip at maxRun boundary")
	}
}

func TestRLEMaxRunPlusOneBoundary(t *testing.T) {
	// 2^14 consecutive ones split across two Ones runs.
	n := int(maxRun) + 1
	values := make([]uint64, n)
	for i := 0; i < n; i++ {
		values[i] = uint64(i)
	}
	rle := buildRLE(values)
	got := rle.Iterate()
	if len(got) != n {
		t.Fatalf("got %d values, want %d", len(got), n)
	}
	for i, v := range got {
		if v != uint64(i) {
			t.Fatalf("mismatch at %d: got %d want %d", i, v, i)
		}
	}
}

func TestRLEArbitrarySubsetRoundTrips(t *testing.T) {
	values := []uint64{2, 3, 4, 9, 10, 11, 12, 13, 30, 31, 100}
	rle := buildRLE(values)
	if got := rle.Iterate(); !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v want %v", got, values)
	}
}

func TestRLEContains(t *testing.T) {
	rle := buildRLE([]uint64{0, 8, 64, 65})
	for _, v := range []uint64{0, 8, 64, 65} {
		if !rle.Contains(v) {
			t.Fatalf("expected %d to be contained", v)
		}
	}
	for _, v := range []uint64{1, 7, 9, 63, 66} {
		if rle.Contains(v) {
			t.Fatalf("did not expect %d to be contained", v)
		}
	}
}
