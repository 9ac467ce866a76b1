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

// IntersectIterator walks two ascending uint32 slices and yields values
// present in both, advancing whichever side lags behind.
type IntersectIterator struct {
	a, b   []uint32
	ia, ib int
}

// NewIntersectIterator returns an iterator over the intersection of two
// strictly ascending slices.
func NewIntersectIterator(a, b []uint32) *IntersectIterator {
	return &IntersectIterator{a: a, b: b}
}

// Next returns the next shared value, or ok=false once either side is
// exhausted.
func (it *IntersectIterator) Next() (value uint32, ok bool) {
	if it.ia >= len(it.a) || it.ib >= len(it.b) {
		return 0, false
	}
	va, vb := it.a[it.ia], it.b[it.ib]
	for {
		if va < vb {
			it.ia++
			if it.ia >= len(it.a) {
				return 0, false
			}
			va = it.a[it.ia]
		} else if vb < va {
			it.ib++
			if it.ib >= len(it.b) {
				return 0, false
			}
			vb = it.b[it.ib]
		} else {
			it.ia++
			it.ib++
			return va, true
		}
	}
}

// IntersectionSize counts the shared elements of two ascending slices.
func IntersectionSize(a, b []uint32) int {
	it := NewIntersectIterator(a, b)
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// UnionIterator merges any number of ascending uint32 slices, emitting
// each distinct value once.
type UnionIterator struct {
	sources [][]uint32
	idx     []int
}

// NewUnionIterator returns an iterator over the union of the given
// ascending slices.
func NewUnionIterator(sources ...[]uint32) *UnionIterator {
	return &UnionIterator{sources: sources, idx: make([]int, len(sources))}
}

// Next returns the next smallest not-yet-emitted value across all
// sources, skipping duplicates.
func (it *UnionIterator) Next() (value uint32, ok bool) {
	best := -1
	var bestVal uint32
	for i, s := range it.sources {
		if it.idx[i] >= len(s) {
			continue
		}
		v := s[it.idx[i]]
		if best == -1 || v < bestVal {
			best = i
			bestVal = v
		}
	}
	if best == -1 {
		return 0, false
	}
	for i, s := range it.sources {
		if it.idx[i] < len(s) && s[it.idx[i]] == bestVal {
			it.idx[i]++
		}
	}
	return bestVal, true
}

// DifferenceIterator yields elements of left that do not appear in any
// of the right-hand sources (left minus the union of the right sources).
type DifferenceIterator struct {
	left    []uint32
	il      int
	right   *UnionIterator
	rVal    uint32
	rOK     bool
	started bool
}

// NewDifferenceIterator returns an iterator over left \ (right[0] ∪ right[1] ∪ …).
func NewDifferenceIterator(left []uint32, right ...[]uint32) *DifferenceIterator {
	return &DifferenceIterator{left: left, right: NewUnionIterator(right...)}
}

// Next returns the next element of left absent from every right-hand
// source, or ok=false when left is exhausted.
func (it *DifferenceIterator) Next() (value uint32, ok bool) {
	if !it.started {
		it.rVal, it.rOK = it.right.Next()
		it.started = true
	}
	for it.il < len(it.left) {
		v := it.left[it.il]
		it.il++
		for it.rOK && it.rVal < v {
			it.rVal, it.rOK = it.right.Next()
		}
		if it.rOK && it.rVal == v {
			continue
		}
		return v, true
	}
	return 0, false
}
