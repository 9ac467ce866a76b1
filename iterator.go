// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package musk

// KmerIterator lazily walks a nucleotide buffer and emits packed k-mer
// codes, skipping over any window that contains a base outside
// {A,C,G,T,a,c,g,t}. With Canonical set, each emitted code is
// min(code, revcomp(code)).
//
// The zero value is not usable; construct with NewKmerIterator.
type KmerIterator struct {
	seq       []byte
	k         int
	canonical bool
	mask      uint32

	pos int // index of the next byte to consume from seq

	w  uint32 // rolling forward word
	rw uint32 // rolling reverse-complement word
	v  int    // count of consecutive valid bases currently in the window
}

// NewKmerIterator returns an iterator over seq for the given k-mer length.
// k must be in 1..=MaxK.
func NewKmerIterator(seq []byte, k int, canonical bool) (*KmerIterator, error) {
	if k <= 0 || k > MaxK {
		return nil, ErrKOverflow
	}
	return &KmerIterator{
		seq:       seq,
		k:         k,
		canonical: canonical,
		mask:      uint32(1)<<uint(2*k) - 1,
	}, nil
}

// base2code maps an ASCII byte to its 2-bit code, with ok=false for any
// byte outside {A,C,G,T,a,c,g,t}.
func base2code(b byte) (code uint32, ok bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	default:
		return 0, false
	}
}

// Next returns the next k-mer code and true, or ok=false once the
// sequence is exhausted.
func (it *KmerIterator) Next() (code uint32, ok bool) {
	for it.pos < len(it.seq) {
		b := it.seq[it.pos]
		it.pos++

		c, valid := base2code(b)
		if !valid {
			it.w, it.rw, it.v = 0, 0, 0
			continue
		}

		it.w = ((it.w << 2) | c) & it.mask
		it.rw = (it.rw >> 2) | ((c ^ 3) << uint(2*(it.k-1)))
		if it.v < it.k {
			it.v++
		}

		if it.v >= it.k {
			if it.canonical {
				if it.rw < it.w {
					return it.rw, true
				}
				return it.w, true
			}
			return it.w, true
		}
	}
	return 0, false
}

// Reset rewinds the iterator to the start of its sequence.
func (it *KmerIterator) Reset() {
	it.pos, it.w, it.rw, it.v = 0, 0, 0, 0
}
