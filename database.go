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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DatabaseVersion is the version of the database wire format.
const DatabaseVersion uint8 = 1

// DatabaseMagic identifies a musk database file.
var DatabaseMagic = [8]byte{'m', 'u', 's', 'k', 'd', 'b', '\x00', '\x01'}

var (
	// ErrInvalidDatabaseFormat means the magic number did not match.
	ErrInvalidDatabaseFormat = errors.New("musk: invalid database file format")
	// ErrDatabaseVersionMismatch means the file was written by an
	// incompatible version of the format.
	ErrDatabaseVersionMismatch = errors.New("musk: database format version mismatch")
	// ErrTruncatedDatabase means fewer columns were read than the
	// header promised.
	ErrTruncatedDatabase = errors.New("musk: truncated database file")
	// ErrUnfinishedDatabaseWrite means Flush was called before every
	// promised column had been written.
	ErrUnfinishedDatabaseWrite = errors.New("musk: database not finished writing")
)

var le = binary.LittleEndian

// GroupInfo is one reference group's identifying metadata: the display
// identifier (accession, genome name, ...) and its associated taxonomy
// ID. DatabaseHeader.Groups holds one per group, indexed by original
// group index (not by column position); Ordering maps a column back to
// that index.
type GroupInfo struct {
	Identifier string
	TaxID      uint32
}

// DatabaseHeader is the metadata written before a database's RLE
// columns: k-mer length, canonicalization flag, the group count and
// ordering, per-group metadata, and per-group hit probabilities used
// directly by the classifier's binomial scoring.
type DatabaseHeader struct {
	Version   uint8
	K         uint8
	Canonical bool
	NumGroups uint32
	NumKmers  uint64

	Ordering  []uint32    // length NumGroups; Ordering[col] = original group index
	Groups    []GroupInfo // length NumGroups; indexed by original group index
	Density   []float64   // length NumGroups; per-group p_g indexed by original group index
	KmerCodes []uint32    // length NumKmers, strictly ascending; KmerCodes[i] pairs with column i
}

func (h DatabaseHeader) String() string {
	return fmt.Sprintf("musk database v%d: k=%d canonical=%v groups=%d kmers=%d",
		h.Version, h.K, h.Canonical, h.NumGroups, h.NumKmers)
}

// DatabaseReader streams a database's RLE columns in storage order
// (i.e. in the order they were written — the i-th ReadColumn call
// returns the column for KmerCodes[i]).
type DatabaseReader struct {
	DatabaseHeader
	r     io.Reader
	count uint64
}

// NewDatabaseReader reads and validates the header, returning a reader
// positioned at the first RLE column.
func NewDatabaseReader(r io.Reader) (*DatabaseReader, error) {
	reader := &DatabaseReader{r: r}
	if err := reader.readHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

func (reader *DatabaseReader) readHeader() error {
	var magic [8]byte
	if err := binary.Read(reader.r, le, &magic); err != nil {
		return err
	}
	if magic != DatabaseMagic {
		return ErrInvalidDatabaseFormat
	}

	var meta [2]uint8
	if err := binary.Read(reader.r, le, &meta); err != nil {
		return err
	}
	if meta[0] != DatabaseVersion {
		return ErrDatabaseVersionMismatch
	}
	reader.Version = meta[0]
	reader.K = meta[1]

	var canonical uint8
	if err := binary.Read(reader.r, le, &canonical); err != nil {
		return err
	}
	reader.Canonical = canonical != 0

	if err := binary.Read(reader.r, le, &reader.NumGroups); err != nil {
		return err
	}
	if err := binary.Read(reader.r, le, &reader.NumKmers); err != nil {
		return err
	}

	reader.Ordering = make([]uint32, reader.NumGroups)
	if err := binary.Read(reader.r, le, &reader.Ordering); err != nil {
		return err
	}

	reader.Groups = make([]GroupInfo, reader.NumGroups)
	for i := range reader.Groups {
		var idLen uint32
		if err := binary.Read(reader.r, le, &idLen); err != nil {
			return err
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(reader.r, idBytes); err != nil {
			return err
		}
		var taxID uint64
		if err := binary.Read(reader.r, le, &taxID); err != nil {
			return err
		}
		reader.Groups[i] = GroupInfo{Identifier: string(idBytes), TaxID: uint32(taxID)}
	}

	reader.Density = make([]float64, reader.NumGroups)
	for i := range reader.Density {
		var mantissa float32
		if err := binary.Read(reader.r, le, &mantissa); err != nil {
			return err
		}
		var exponent int32
		if err := binary.Read(reader.r, le, &exponent); err != nil {
			return err
		}
		reader.Density[i] = BigExpFloat{float: mantissa, exp: exponent}.AsFloat64()
	}

	reader.KmerCodes = make([]uint32, reader.NumKmers)
	if err := binary.Read(reader.r, le, &reader.KmerCodes); err != nil {
		return err
	}

	return nil
}

// ReadColumn reads the next RLE column, or io.EOF once NumKmers columns
// have all been consumed.
func (reader *DatabaseReader) ReadColumn() (*RunLengthEncoding, error) {
	if reader.count >= reader.NumKmers {
		return nil, io.EOF
	}
	var n uint32
	if err := binary.Read(reader.r, le, &n); err != nil {
		if err == io.EOF {
			return nil, ErrTruncatedDatabase
		}
		return nil, err
	}
	words := make([]uint16, n)
	if err := binary.Read(reader.r, le, &words); err != nil {
		return nil, err
	}
	reader.count++
	return RunLengthEncodingFromVector(words), nil
}

// DatabaseWriter writes a database file: a header followed by exactly
// NumKmers RLE columns.
type DatabaseWriter struct {
	DatabaseHeader
	w           io.Writer
	wroteHeader bool
	count       uint64
}

// NewDatabaseWriter prepares a writer for a database with the given
// shape; the header is written lazily on the first WriteColumn call.
func NewDatabaseWriter(w io.Writer, k int, canonical bool, ordering []uint32, groups []GroupInfo, density []float64, kmerCodes []uint32) *DatabaseWriter {
	return &DatabaseWriter{
		DatabaseHeader: DatabaseHeader{
			Version:   DatabaseVersion,
			K:         uint8(k),
			Canonical: canonical,
			NumGroups: uint32(len(ordering)),
			NumKmers:  uint64(len(kmerCodes)),
			Ordering:  ordering,
			Groups:    groups,
			Density:   density,
			KmerCodes: kmerCodes,
		},
		w: w,
	}
}

// WriteHeader writes the file header. Calling it more than once is a
// no-op.
func (writer *DatabaseWriter) WriteHeader() error {
	if writer.wroteHeader {
		return nil
	}
	w := writer.w

	if err := binary.Write(w, le, DatabaseMagic); err != nil {
		return err
	}

	var canonical uint8
	if writer.Canonical {
		canonical = 1
	}
	if err := binary.Write(w, le, [2]uint8{writer.Version, writer.K}); err != nil {
		return err
	}
	if err := binary.Write(w, le, canonical); err != nil {
		return err
	}
	if err := binary.Write(w, le, writer.NumGroups); err != nil {
		return err
	}
	if err := binary.Write(w, le, writer.NumKmers); err != nil {
		return err
	}
	if err := binary.Write(w, le, writer.Ordering); err != nil {
		return err
	}
	for _, g := range writer.Groups {
		idBytes := []byte(g.Identifier)
		if err := binary.Write(w, le, uint32(len(idBytes))); err != nil {
			return err
		}
		if _, err := w.Write(idBytes); err != nil {
			return err
		}
		if err := binary.Write(w, le, uint64(g.TaxID)); err != nil {
			return err
		}
	}
	for _, p := range writer.Density {
		d := BigExpFromFloat64(p)
		if err := binary.Write(w, le, d.float); err != nil {
			return err
		}
		if err := binary.Write(w, le, d.exp); err != nil {
			return err
		}
	}
	if err := binary.Write(w, le, writer.KmerCodes); err != nil {
		return err
	}

	writer.wroteHeader = true
	return nil
}

// WriteColumn appends one RLE column, lazily writing the header first.
func (writer *DatabaseWriter) WriteColumn(rle *RunLengthEncoding) error {
	if !writer.wroteHeader {
		if err := writer.WriteHeader(); err != nil {
			return err
		}
	}
	words := rle.Vector()
	if err := binary.Write(writer.w, le, uint32(len(words))); err != nil {
		return err
	}
	if err := binary.Write(writer.w, le, words); err != nil {
		return err
	}
	writer.count++
	return nil
}

// Flush writes the header if no column has triggered it yet, and
// reports an error if fewer than NumKmers columns were written.
func (writer *DatabaseWriter) Flush() error {
	if !writer.wroteHeader {
		if err := writer.WriteHeader(); err != nil {
			return err
		}
	}
	if writer.count != writer.NumKmers {
		return ErrUnfinishedDatabaseWrite
	}
	return nil
}
