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

import (
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// GroupBitmap is the set of k-mers observed across a reference group's
// FASTA files, realized as a compressed bitmap during construction.
// It is the sparse, per-group counterpart of the dense per-k-mer RLE
// column the database eventually stores.
type GroupBitmap struct {
	K         int
	Canonical bool
	bits      *roaring.Bitmap
}

// NewGroupBitmap returns an empty bitmap for the given k-mer length.
func NewGroupBitmap(k int, canonical bool) *GroupBitmap {
	return &GroupBitmap{K: k, Canonical: canonical, bits: roaring.New()}
}

// AddSequence inserts every valid k-mer of seq into the bitmap.
func (g *GroupBitmap) AddSequence(s []byte) error {
	it, err := NewKmerIterator(s, g.K, g.Canonical)
	if err != nil {
		return err
	}
	for {
		code, ok := it.Next()
		if !ok {
			return nil
		}
		g.bits.Add(code)
	}
}

// BuildGroupBitmap reads every FASTA record from the given files and
// accumulates their k-mers into one bitmap. A missing or unreadable file
// is fatal (returned as an error); a mid-file parse error is reported to
// warn but the remaining records of that file are still processed.
func BuildGroupBitmap(files []string, k int, canonical bool, warn func(format string, args ...interface{})) (*GroupBitmap, error) {
	seq.ValidateSeq = false
	g := NewGroupBitmap(k, canonical)
	for _, file := range files {
		reader, err := fastx.NewDefaultReader(file)
		if err != nil {
			return nil, err
		}
		for {
			record, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				if warn != nil {
					warn("skipping record in %s: %v", file, err)
				}
				continue
			}
			if err := g.AddSequence(record.Seq.Seq); err != nil && warn != nil {
				warn("skipping record %s in %s: %v", record.ID, file, err)
			}
		}
	}
	return g, nil
}

// Len reports the number of distinct k-mers in the bitmap.
func (g *GroupBitmap) Len() uint64 {
	return g.bits.GetCardinality()
}

// IntersectionLen reports |g ∩ other|.
func (g *GroupBitmap) IntersectionLen(other *GroupBitmap) uint64 {
	return g.bits.AndCardinality(other.bits)
}

// ToSortedSlice returns the bitmap's members in ascending order.
func (g *GroupBitmap) ToSortedSlice() []uint32 {
	return g.bits.ToArray()
}

// Contains reports whether kmer is a member of the bitmap.
func (g *GroupBitmap) Contains(kmer uint32) bool {
	return g.bits.Contains(kmer)
}
