package musk

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{"A", "ACGT", "TTTTTTTTTTTTTTTT", "GATTACA"}
	for _, s := range cases {
		code, err := Encode([]byte(s))
		if err != nil {
			t.Fatalf("Encode(%q): %v", s, err)
		}
		got := string(Decode(code, len(s)))
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestEncodeIllegalBase(t *testing.T) {
	if _, err := Encode([]byte("ACGN")); err != ErrIllegalBase {
		t.Fatalf("expected ErrIllegalBase, got %v", err)
	}
}

func TestEncodeKOverflow(t *testing.T) {
	if _, err := Encode(nil); err != ErrKOverflow {
		t.Fatalf("expected ErrKOverflow for empty kmer, got %v", err)
	}
}

func TestCanonicalIdempotence(t *testing.T) {
	k := 5
	for code := uint32(0); code < uint32(NumKmers(k)); code++ {
		c1 := Canonical(code, k)
		c2 := Canonical(c1, k)
		if c1 != c2 {
			t.Fatalf("canonical not idempotent for %d: %d != %d", code, c1, c2)
		}
		rc := RevComp(code, k)
		if Canonical(rc, k) != c1 {
			t.Fatalf("canonical(revcomp(x)) != canonical(x) for %d", code)
		}
	}
}

func TestRevCompInvolution(t *testing.T) {
	k := 8
	for code := uint32(0); code < 500; code++ {
		if RevComp(RevComp(code, k), k) != code {
			t.Fatalf("revcomp not an involution for %d", code)
		}
	}
}
