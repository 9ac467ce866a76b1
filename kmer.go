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

import "errors"

// ErrIllegalBase means a base outside {A,C,G,T,a,c,g,t} was encountered
// where an unambiguous k-mer was required.
var ErrIllegalBase = errors.New("musk: illegal base")

// ErrKOverflow means k is outside the supported range 1..=16 for a
// 32-bit k-mer word.
var ErrKOverflow = errors.New("musk: k (1-16) overflow")

// MaxK is the largest k-mer length representable in a uint32 word.
const MaxK = 16

// Encode packs a strict-ACGT k-mer into the low 2k bits of a uint32,
// A=00, C=01, G=10, T=11, MSB-first along the sequence.
func Encode(kmer []byte) (code uint32, err error) {
	k := len(kmer)
	if k == 0 || k > MaxK {
		return 0, ErrKOverflow
	}
	for _, b := range kmer {
		code <<= 2
		switch b {
		case 'A', 'a':
			// code |= 0
		case 'C', 'c':
			code |= 1
		case 'G', 'g':
			code |= 2
		case 'T', 't':
			code |= 3
		default:
			return 0, ErrIllegalBase
		}
	}
	return code, nil
}

var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// Decode converts a k-mer code back into its base sequence.
func Decode(code uint32, k int) []byte {
	if k <= 0 || k > MaxK {
		panic(ErrKOverflow)
	}
	kmer := make([]byte, k)
	for i := 0; i < k; i++ {
		kmer[k-1-i] = bit2base[code&3]
		code >>= 2
	}
	return kmer
}

// RevComp returns the code of the reverse complement of a k-mer.
func RevComp(code uint32, k int) (c uint32) {
	if k <= 0 || k > MaxK {
		panic(ErrKOverflow)
	}
	for i := 0; i < k; i++ {
		c <<= 2
		c |= (code & 3) ^ 3
		code >>= 2
	}
	return
}

// Canonical returns the lexicographically smaller of code and its reverse
// complement.
func Canonical(code uint32, k int) uint32 {
	rc := RevComp(code, k)
	if rc < code {
		return rc
	}
	return code
}

// NumKmers returns 4^k, the size of the k-mer space for the given k.
func NumKmers(k int) uint64 {
	return uint64(1) << uint(2*k)
}
