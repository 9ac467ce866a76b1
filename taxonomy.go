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
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/breader"
)

// FileTaxID is one line of a file2taxid table: a reference FASTA file
// and the taxonomy ID assigned to it.
type FileTaxID struct {
	File  string
	TaxID uint32
}

// LoadFile2TaxID reads a TSV file of "<path>\t<taxid>" lines, the
// format a file2taxid table is stored in.
func LoadFile2TaxID(file string) ([]FileTaxID, error) {
	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t")
		if len(items) < 2 {
			return nil, false, nil
		}
		taxid, err := strconv.Atoi(items[1])
		if err != nil {
			return nil, false, err
		}
		return FileTaxID{File: items[0], TaxID: uint32(taxid)}, true, nil
	}

	reader, err := breader.NewBufferedReader(file, 8, 100, parseFunc)
	if err != nil {
		return nil, fmt.Errorf("musk: %s", err)
	}

	var entries []FileTaxID
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("musk: %s", chunk.Err)
		}
		for _, data := range chunk.Data {
			entries = append(entries, data.(FileTaxID))
		}
	}
	return entries, nil
}

// GroupFileList is one reference group assembled from a file2taxid
// table: every file sharing a taxonomy ID, merged into a single group
// whose identifier is the '$'-joined list of its member files.
type GroupFileList struct {
	Identifier string
	TaxID      uint32
	Files      []string
}

// GroupFilesByTaxID merges file2taxid entries that share a taxonomy ID
// into one group per ID, preserving the taxid's first-seen order.
func GroupFilesByTaxID(entries []FileTaxID) []GroupFileList {
	order := make([]uint32, 0)
	byTaxID := make(map[uint32][]string)
	for _, e := range entries {
		if _, ok := byTaxID[e.TaxID]; !ok {
			order = append(order, e.TaxID)
		}
		byTaxID[e.TaxID] = append(byTaxID[e.TaxID], e.File)
	}

	groups := make([]GroupFileList, len(order))
	for i, taxid := range order {
		files := byTaxID[taxid]
		groups[i] = GroupFileList{
			Identifier: strings.Join(files, "$"),
			TaxID:      taxid,
			Files:      files,
		}
	}
	return groups
}
