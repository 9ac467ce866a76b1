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

import "math"

// GreedyOrdering produces a permutation of [0,G) by repeatedly stepping
// to the nearest unvisited group, breaking ties by smallest index. It
// exploits no structure in D beyond symmetry; the result is the column
// order the database's RLE encoding is built against.
func GreedyOrdering(d *DistanceMatrix, start int) []int {
	g := d.G()
	visited := make([]bool, g)
	ordering := make([]int, 0, g)

	current := start
	visited[current] = true
	ordering = append(ordering, current)

	for len(ordering) < g {
		next := -1
		var best uint32 = math.MaxUint32
		for j := 0; j < g; j++ {
			if visited[j] {
				continue
			}
			dist := d.At(current, j)
			if dist < best {
				best = dist
				next = j
			}
		}
		visited[next] = true
		ordering = append(ordering, next)
		current = next
	}
	return ordering
}

// OrderingStatistics reports the total and average Hamming distance
// between adjacent groups in the ordering, used as a build-time
// diagnostic of how effective the RLE compression is likely to be.
func OrderingStatistics(ordering []int, d *DistanceMatrix) (avg float64, total uint64) {
	if len(ordering) < 2 {
		return 0, 0
	}
	for i := 0; i+1 < len(ordering); i++ {
		total += uint64(d.At(ordering[i], ordering[i+1]))
	}
	avg = float64(total) / float64(len(ordering)-1)
	return avg, total
}
