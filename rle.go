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

// runKind distinguishes the three shapes a 16-bit RLE word can take:
//
//	Zeros        0b00_<14-bit count>
//	Ones         0b01_<14-bit count>
//	Uncompressed 0b1_<15 raw bits>
type runKind int

const (
	runZeros runKind = iota
	runOnes
	runUncompressed
)

// maxRun is the largest run length a single 14-bit count field can hold.
const maxRun uint16 = (1 << 14) - 1

type run struct {
	kind  runKind
	value uint16 // count for Zeros/Ones, raw bits for Uncompressed
}

func (r run) encode() uint16 {
	switch r.kind {
	case runOnes:
		return r.value | (1 << 14)
	case runUncompressed:
		return r.value | (1 << 15)
	default:
		return r.value
	}
}

func decodeRun(word uint16) run {
	if word&0x8000 != 0 {
		return run{kind: runUncompressed, value: word & 0x7fff}
	}
	if word&0x4000 != 0 {
		return run{kind: runOnes, value: word & 0x3fff}
	}
	return run{kind: runZeros, value: word & 0x3fff}
}

// BuildRunLengthEncoding accumulates a strictly increasing sequence of
// set-bit positions into a naive, uncompressed run-length encoding: each
// stretch of consecutive values becomes one Ones run (split at maxRun),
// separated by Zeros runs for the gaps.
// Call ToRLE to fold adjacent short runs into 15-bit literals.
type BuildRunLengthEncoding struct {
	hasAny  bool
	highest uint64
	vector  []uint16
}

// NewBuildRunLengthEncoding returns an empty builder.
func NewBuildRunLengthEncoding() *BuildRunLengthEncoding {
	return &BuildRunLengthEncoding{}
}

// Push appends value to the encoding. value must be strictly greater
// than every value pushed so far; out-of-order or duplicate values are
// silently dropped, matching the builder's tolerant behavior during
// lossy down-sampling of a column's support.
func (b *BuildRunLengthEncoding) Push(value uint64) {
	pushZeros := func(n uint64) {
		for n > 0 {
			if n <= uint64(maxRun) {
				b.vector = append(b.vector, run{kind: runZeros, value: uint16(n)}.encode())
				return
			}
			b.vector = append(b.vector, run{kind: runZeros, value: maxRun}.encode())
			n -= uint64(maxRun)
		}
	}

	if !b.hasAny {
		if value == 0 {
			b.vector = append(b.vector, run{kind: runOnes, value: 1}.encode())
		} else {
			pushZeros(value)
			b.vector = append(b.vector, run{kind: runOnes, value: 1}.encode())
			b.highest = value
		}
		b.hasAny = true
		return
	}

	switch {
	case value <= b.highest:
		// Out of order or duplicate; the column is append-only.
	case value == b.highest+1:
		last := len(b.vector) - 1
		r := decodeRun(b.vector[last])
		if r.kind != runOnes {
			panic("musk: RLE builder invariant violated: expected a trailing run of ones")
		}
		if r.value == maxRun {
			b.vector = append(b.vector, run{kind: runOnes, value: 1}.encode())
		} else {
			b.vector[last] = run{kind: runOnes, value: r.value + 1}.encode()
		}
		b.highest++
	default:
		pushZeros(value - b.highest - 1)
		b.vector = append(b.vector, run{kind: runOnes, value: 1}.encode())
		b.highest = value
	}
}

// ToRLE finalizes the builder into a compressed RunLengthEncoding.
func (b *BuildRunLengthEncoding) ToRLE() *RunLengthEncoding {
	rle := &RunLengthEncoding{vector: append([]uint16(nil), b.vector...)}
	rle.compress()
	return rle
}

// RunLengthEncoding is one column of the reference database: the set of
// group indices (or k-mer positions, depending on orientation) for which
// a bit is set, stored as a compressed sequence of zero/one runs with
// short mixed runs folded into 15-bit uncompressed literals.
type RunLengthEncoding struct {
	vector []uint16
}

// Vector exposes the encoded words, primarily for serialization.
func (r *RunLengthEncoding) Vector() []uint16 { return r.vector }

// RunLengthEncodingFromVector wraps an already-encoded word slice, as
// read back from a database file.
func RunLengthEncodingFromVector(words []uint16) *RunLengthEncoding {
	return &RunLengthEncoding{vector: words}
}

// compress folds consecutive short runs into 15-bit uncompressed words
// whenever doing so would not exceed 15 bits, using a small sliding
// buffer of not-yet-emitted runs.
func (r *RunLengthEncoding) compress() {
	var compressed []run
	var buffer []run
	bufSize := 0

	flushAsLiteral := func() {
		compressed = append(compressed, run{kind: runUncompressed, value: decompressBuffer(buffer)})
		buffer = buffer[:0]
		bufSize = 0
	}

	for _, word := range r.vector {
		rn := decodeRun(word)
		if rn.kind == runUncompressed {
			panic("musk: tried to compress an already-compressed vector")
		}
		runSize := int(rn.value)

		switch {
		case bufSize+runSize < 15:
			buffer = append(buffer, rn)
			bufSize += runSize

		case bufSize+runSize == 15:
			if len(buffer) == 0 {
				compressed = append(compressed, rn)
			} else {
				buffer = append(buffer, rn)
				flushAsLiteral()
			}

		default:
			switch len(buffer) {
			case 0:
				compressed = append(compressed, rn)
			case 1:
				compressed = append(compressed, buffer...)
				buffer = buffer[:0]
				bufSize = 0
				if runSize < 15 {
					buffer = append(buffer, rn)
					bufSize = runSize
				} else {
					compressed = append(compressed, rn)
				}
			default:
				fillSize := uint16(15 - bufSize)
				leftoverSize := rn.value - fillSize
				var toPush, leftover run
				if rn.kind == runOnes {
					toPush = run{kind: runOnes, value: fillSize}
					leftover = run{kind: runOnes, value: leftoverSize}
				} else {
					toPush = run{kind: runZeros, value: fillSize}
					leftover = run{kind: runZeros, value: leftoverSize}
				}
				buffer = append(buffer, toPush)
				flushAsLiteral()
				if leftoverSize < 15 {
					buffer = append(buffer, leftover)
					bufSize += int(leftoverSize)
				} else {
					compressed = append(compressed, leftover)
				}
			}
		}
	}

	if len(buffer) <= 1 {
		compressed = append(compressed, buffer...)
	} else {
		compressed = append(compressed, run{kind: runUncompressed, value: decompressBuffer(buffer)})
	}

	words := make([]uint16, len(compressed))
	for i, rn := range compressed {
		words[i] = rn.encode()
	}
	r.vector = words
}

// decompressBuffer packs a short sequence of zero/one runs (total length
// at most 15) into a 15-bit literal bitfield, bit i set for a one at
// offset i.
func decompressBuffer(buffer []run) uint16 {
	var bits uint16
	var idx uint16
	for _, rn := range buffer {
		switch rn.kind {
		case runOnes:
			for i := idx; i < idx+rn.value; i++ {
				bits |= 1 << i
			}
			idx += rn.value
		case runZeros:
			idx += rn.value
		default:
			panic("musk: uncompressed run inside compression buffer")
		}
	}
	return bits
}

// RLECursor walks a RunLengthEncoding's set-bit positions in ascending
// order, carrying an explicit position cursor across Next calls so a
// single forward pass visits every set bit without re-scanning from the
// start of the column. Classify walks one fresh cursor over each
// looked-up k-mer's column.
type RLECursor struct {
	rle     *RunLengthEncoding
	wordIdx int

	pos uint64 // absolute bit position of the next unexamined bit

	inOnes   bool
	onesLeft uint16

	inLit   bool
	litBase uint64
	litBit  uint16
	litWord uint16
}

// NewRLECursor returns a cursor positioned before the first bit.
func NewRLECursor(rle *RunLengthEncoding) *RLECursor {
	return &RLECursor{rle: rle}
}

// Next returns the next set-bit position in ascending order.
func (c *RLECursor) Next() (uint64, bool) {
	for {
		if c.inOnes {
			if c.onesLeft > 0 {
				c.onesLeft--
				p := c.pos
				c.pos++
				return p, true
			}
			c.inOnes = false
		}
		if c.inLit {
			for c.litBit < 15 {
				bit := c.litBit
				c.litBit++
				if c.litWord&(1<<bit) != 0 {
					return c.litBase + uint64(bit), true
				}
			}
			c.inLit = false
		}
		if c.wordIdx >= len(c.rle.vector) {
			return 0, false
		}
		rn := decodeRun(c.rle.vector[c.wordIdx])
		c.wordIdx++
		switch rn.kind {
		case runZeros:
			c.pos += uint64(rn.value)
		case runOnes:
			c.inOnes = true
			c.onesLeft = rn.value
		case runUncompressed:
			c.litWord = rn.value
			c.litBit = 0
			c.litBase = c.pos
			c.pos += 15
			c.inLit = true
		}
	}
}

// Contains reports whether position i is set, scanning from the
// beginning of the column. Prefer RLECursor for sequential scans.
func (r *RunLengthEncoding) Contains(i uint64) bool {
	c := NewRLECursor(r)
	for {
		v, ok := c.Next()
		if !ok {
			return false
		}
		if v == i {
			return true
		}
		if v > i {
			return false
		}
	}
}

// Iterate returns every set-bit position in ascending order.
func (r *RunLengthEncoding) Iterate() []uint64 {
	var out []uint64
	c := NewRLECursor(r)
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// String is a debugging aid, rendering the run structure compactly.
func (r *RunLengthEncoding) String() string {
	return fmt.Sprintf("RunLengthEncoding(%d words)", len(r.vector))
}
