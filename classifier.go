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
	"sort"
)

// Database is a fully loaded, in-memory reference index: the header
// metadata plus every RLE column, indexed in parallel with KmerCodes.
type Database struct {
	DatabaseHeader
	Columns []*RunLengthEncoding // Columns[i] is the column for KmerCodes[i]

	colOfGroup []int // colOfGroup[origGroupIdx] = column index, the inverse of Ordering
}

// LoadDatabase reads a full database (header and every column) into
// memory, ready for repeated classification queries.
func LoadDatabase(r io.Reader) (*Database, error) {
	reader, err := NewDatabaseReader(r)
	if err != nil {
		return nil, err
	}
	db := &Database{DatabaseHeader: reader.DatabaseHeader}
	db.Columns = make([]*RunLengthEncoding, 0, reader.NumKmers)
	for {
		col, err := reader.ReadColumn()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		db.Columns = append(db.Columns, col)
	}
	db.colOfGroup = make([]int, db.NumGroups)
	for col, orig := range db.Ordering {
		db.colOfGroup[orig] = col
	}
	return db, nil
}

// columnIndex returns the index into Columns/KmerCodes for the given
// k-mer code, via binary search over the ascending KmerCodes slice.
func (db *Database) columnIndex(code uint32) (int, bool) {
	i := sort.Search(len(db.KmerCodes), func(i int) bool { return db.KmerCodes[i] >= code })
	if i < len(db.KmerCodes) && db.KmerCodes[i] == code {
		return i, true
	}
	return 0, false
}

// Classification is the outcome of scoring one read against a database:
// the winning group and its taxonomy ID, or Unclassified if no group's
// p-value cleared the significance threshold.
type Classification struct {
	Group        GroupInfo
	Unclassified bool
}

// Classify scores a read's k-mer content against every reference group
// and returns the most statistically surprising match, or Unclassified
// if none of the groups' binomial survival-function p-values fall
// below cutoff. At most maxQueries k-mers are sampled from the read, in
// iterator order, matching the reference implementation's "first N
// k-mers" down-sampling policy.
func (db *Database) Classify(seq []byte, cutoff BigExpFloat, maxQueries uint64) (Classification, error) {
	it, err := NewKmerIterator(seq, int(db.K), db.Canonical)
	if err != nil {
		return Classification{Unclassified: true}, err
	}

	hits := make([]uint64, db.NumGroups)
	seen := make(map[uint32]struct{})
	var n uint64
	for n < maxQueries {
		code, ok := it.Next()
		if !ok {
			break
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		n++
		colIdx, found := db.columnIndex(code)
		if !found {
			continue
		}
		cursor := NewRLECursor(db.Columns[colIdx])
		for {
			col, ok := cursor.Next()
			if !ok {
				break
			}
			hits[db.Ordering[col]]++
		}
	}

	if n == 0 {
		return Classification{Unclassified: true}, nil
	}

	best := -1
	var bestPValue BigExpFloat
	for g := 0; g < int(db.NumGroups); g++ {
		if hits[g] == 0 {
			continue
		}
		pValue := BinomialSF(db.Density[g], n, hits[g]-1)
		if best == -1 {
			best, bestPValue = g, pValue
			continue
		}
		cmp := compareBigExp(pValue, bestPValue)
		if cmp < 0 || (cmp == 0 && db.colOfGroup[g] < db.colOfGroup[best]) {
			best, bestPValue = g, pValue
		}
	}

	if best == -1 || compareBigExp(bestPValue, cutoff) >= 0 {
		return Classification{Unclassified: true}, nil
	}
	return Classification{Group: db.Groups[best]}, nil
}

// compareBigExp orders two BigExpFloat values, returning -1, 0 or 1.
// Both operands are assumed non-negative, which always holds for the
// p-values and cutoffs Classify compares.
func compareBigExp(a, b BigExpFloat) int {
	diff := a.Sub(b)
	if diff.IsZero() {
		return 0
	}
	if diff.float < 0 {
		return -1
	}
	return 1
}
