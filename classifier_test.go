package musk

import (
	"bytes"
	"testing"
)

// buildTinyDatabase constructs a small database directly (bypassing the
// build pipeline) for classifier unit tests: k=4, canonical=false, with
// every k-mer from a fixed query sequence hitting group 0 under a low
// background rate, and group 1 never hit.
func buildTinyDatabase(t *testing.T) *Database {
	t.Helper()
	ordering := []uint32{0, 1}
	groups := []GroupInfo{
		{Identifier: "group0", TaxID: 11},
		{Identifier: "group1", TaxID: 22},
	}
	density := []float64{0.01, 0.3}

	seqKmers := []uint32{}
	seq := []byte("ACGTACGTAC")
	it, err := NewKmerIterator(seq, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	for {
		code, ok := it.Next()
		if !ok {
			break
		}
		seqKmers = append(seqKmers, code)
	}

	kmerCodes := append([]uint32(nil), seqKmers...)
	columns := make([]*RunLengthEncoding, len(kmerCodes))
	for i := range kmerCodes {
		// Every queried k-mer hits group 0 (column bit 0); none hit group 1.
		columns[i] = buildRLE([]uint64{0})
	}

	var buf bytes.Buffer
	w := NewDatabaseWriter(&buf, 4, false, ordering, groups, density, kmerCodes)
	for _, col := range columns {
		if err := w.WriteColumn(col); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	db, err := LoadDatabase(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestClassifyMatchesDominantGroup(t *testing.T) {
	db := buildTinyDatabase(t)
	cutoff := BigExpFromFloat64(1e-3)
	result, err := db.Classify([]byte("ACGTACGTAC"), cutoff, 100)
	if err != nil {
		t.Fatal(err)
	}
	if result.Unclassified {
		t.Fatal("expected a classification, got unclassified")
	}
	if result.Group.Identifier != "group0" {
		t.Fatalf("got %q, want group0", result.Group.Identifier)
	}
}

func TestClassifyUnclassifiedWhenNoKmersMatch(t *testing.T) {
	db := buildTinyDatabase(t)
	cutoff := BigExpFromFloat64(1e-3)
	result, err := db.Classify([]byte("TTTTTTTTTTTTTTTT"), cutoff, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Unclassified {
		t.Fatalf("expected unclassified, got %+v", result)
	}
}

func TestClassifyUnclassifiedWhenCutoffTooStrict(t *testing.T) {
	db := buildTinyDatabase(t)
	cutoff := BigExpFromFloat64(1e-300)
	result, err := db.Classify([]byte("ACGTACGTAC"), cutoff, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Unclassified {
		t.Fatalf("expected unclassified under an extreme cutoff, got %+v", result)
	}
}
