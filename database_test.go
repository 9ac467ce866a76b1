package musk

import (
	"bytes"
	"io"
	"testing"
)

func TestDatabaseRoundTrip(t *testing.T) {
	ordering := []uint32{1, 0, 2}
	groups := []GroupInfo{
		{Identifier: "genome_a", TaxID: 100},
		{Identifier: "genome_b", TaxID: 200},
		{Identifier: "genome_c", TaxID: 300},
	}
	density := []float64{0.1, 0.2, 0.3}

	columns := []*RunLengthEncoding{
		buildRLE([]uint64{0, 2}),
		buildRLE([]uint64{1}),
	}

	kmerCodes := []uint32{10, 20}

	var buf bytes.Buffer
	w := NewDatabaseWriter(&buf, 15, true, ordering, groups, density, kmerCodes)
	for _, col := range columns {
		if err := w.WriteColumn(col); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	r, err := NewDatabaseReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r.K != 15 || !r.Canonical || r.NumGroups != 3 || r.NumKmers != 2 {
		t.Fatalf("unexpected header: %+v", r.DatabaseHeader)
	}
	for i, want := range ordering {
		if r.Ordering[i] != want {
			t.Fatalf("ordering[%d] = %d, want %d", i, r.Ordering[i], want)
		}
	}
	for i, want := range groups {
		if r.Groups[i] != want {
			t.Fatalf("groups[%d] = %+v, want %+v", i, r.Groups[i], want)
		}
	}

	for i, want := range columns {
		got, err := r.ReadColumn()
		if err != nil {
			t.Fatal(err)
		}
		if gotIter, wantIter := got.Iterate(), want.Iterate(); len(gotIter) != len(wantIter) {
			t.Fatalf("column %d: got %v want %v", i, gotIter, wantIter)
		}
	}
	if _, err := r.ReadColumn(); err != io.EOF {
		t.Fatalf("expected io.EOF after last column, got %v", err)
	}
	for i, want := range kmerCodes {
		if r.KmerCodes[i] != want {
			t.Fatalf("kmerCodes[%d] = %d, want %d", i, r.KmerCodes[i], want)
		}
	}
}

func TestDatabaseWriterRejectsIncompleteFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewDatabaseWriter(&buf, 15, false, []uint32{0, 1}, []GroupInfo{{}, {}}, []float64{0, 0}, []uint32{5, 9})
	if err := w.WriteColumn(buildRLE([]uint64{0})); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != ErrUnfinishedDatabaseWrite {
		t.Fatalf("got %v, want ErrUnfinishedDatabaseWrite", err)
	}
}
