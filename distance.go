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
	"github.com/grailbio/base/traverse"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix is the lower-triangular G×G Hamming-distance matrix
// over reference-group k-mer bitmaps, D[i][j] = |B_i|+|B_j|-2|B_i∩B_j|
// for i>j and D[i][i]=0.
type DistanceMatrix struct {
	g    int
	rows [][]uint32 // rows[i] has length i, holding D[i][0..i)
}

// NewDistanceMatrix allocates an empty lower-triangular matrix for g
// groups.
func NewDistanceMatrix(g int) *DistanceMatrix {
	rows := make([][]uint32, g)
	for i := range rows {
		rows[i] = make([]uint32, i)
	}
	return &DistanceMatrix{g: g, rows: rows}
}

// G returns the number of groups the matrix covers.
func (d *DistanceMatrix) G() int { return d.g }

// At returns D[i][j], valid for any i,j in [0,G); it is symmetric and
// zero on the diagonal.
func (d *DistanceMatrix) At(i, j int) uint32 {
	if i == j {
		return 0
	}
	if i < j {
		i, j = j, i
	}
	return d.rows[i][j]
}

func (d *DistanceMatrix) set(i, j int, v uint32) {
	if i < j {
		i, j = j, i
	}
	d.rows[i][j] = v
}

// ComputeDistanceMatrix computes the lower triangle of D in parallel
// over rows, using a work-stealing pool (one task per row i, each task
// computing D[i][j] for all j<i from the two groups' bitmaps). Results
// are collected directly into the preallocated matrix by row index, so
// no synchronization beyond each row's own slice is required.
func ComputeDistanceMatrix(bitmaps []*GroupBitmap) (*DistanceMatrix, error) {
	g := len(bitmaps)
	d := NewDistanceMatrix(g)
	err := traverse.Each(g, func(i int) error {
		bi := bitmaps[i]
		for j := 0; j < i; j++ {
			bj := bitmaps[j]
			inter := bi.IntersectionLen(bj)
			dist := bi.Len() + bj.Len() - 2*inter
			d.set(i, j, uint32(dist))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Dense realizes the stored lower triangle as a full symmetric matrix.
// GreedyOrdering and OrderingStatistics do not use it; they read the
// triangle directly through At.
func (d *DistanceMatrix) Dense() *mat.SymDense {
	data := make([]float64, d.g*d.g)
	sym := mat.NewSymDense(d.g, data)
	for i := 0; i < d.g; i++ {
		for j := 0; j <= i; j++ {
			sym.SetSym(i, j, float64(d.At(i, j)))
		}
	}
	return sym
}
