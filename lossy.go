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

import "fmt"

// lossyThreshold maps a compression level (1, 2 or 3) to the minimum
// zero-run length required on both sides of a single isolated one-bit
// before that bit is dropped. Thresholds decrease as the level rises, so
// higher levels drop more bits: a smaller database at the cost of a
// higher false-negative rate on rare k-mers.
func lossyThreshold(level int) uint64 {
	switch level {
	case 1:
		return 9
	case 2:
		return 6
	case 3:
		return 4
	default:
		panic(fmt.Sprintf("musk: lossy compression level must be 1, 2 or 3, got %d", level))
	}
}

// LossyCompressColumn drops isolated single-bit runs (support of exactly
// one group) from a column whenever they are flanked by at least
// threshold(level) zeros on both sides, then re-encodes the remaining
// positions. Runs of two or more consecutive ones are always kept. The
// column does not record how many positions follow its last set bit, so
// the trailing side of the last run always counts as long enough. This
// targets the rarest, least-informative hits first: a
// k-mer seen in only one group deep inside a long stretch where no
// neighboring group shares it contributes little statistical power but
// costs a full Ones/Zeros run pair in the column's encoding.
func LossyCompressColumn(rle *RunLengthEncoding, level int) *RunLengthEncoding {
	threshold := lossyThreshold(level)
	positions := rle.Iterate()
	if len(positions) == 0 {
		return RunLengthEncodingFromVector(nil)
	}

	type group struct{ start, end uint64 } // inclusive, consecutive integers
	var groups []group
	start := positions[0]
	prev := positions[0]
	for _, p := range positions[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		groups = append(groups, group{start, prev})
		start, prev = p, p
	}
	groups = append(groups, group{start, prev})

	kept := NewBuildRunLengthEncoding()
	for i, g := range groups {
		isIsolated := g.start == g.end
		if isIsolated {
			leadingOK := i == 0 || g.start-groups[i-1].end-1 >= threshold
			if i == 0 {
				leadingOK = g.start >= threshold
			}
			trailingOK := i == len(groups)-1 || groups[i+1].start-g.end-1 >= threshold
			if leadingOK && trailingOK {
				continue // drop this group's single bit
			}
		}
		for p := g.start; p <= g.end; p++ {
			kept.Push(p)
		}
	}
	return kept.ToRLE()
}

// ColumnDensity reports the fraction of set bits out of totalGroups
// positions in one column, i.e. the share of groups that contain that
// column's k-mer. It is a per-k-mer figure, not a group's density p_g.
func ColumnDensity(rle *RunLengthEncoding, totalGroups int) float64 {
	if totalGroups == 0 {
		return 0
	}
	return float64(len(rle.Iterate())) / float64(totalGroups)
}
