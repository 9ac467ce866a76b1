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

package cmd

import (
	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
	"github.com/shenwei356/musk"
	"github.com/spf13/cobra"
)

// loadGroupsAndBitmaps loads a file2taxid group list and builds one
// k-mer bitmap per group, in parallel. Shared by "build", "order" and
// "pairwise-distances", each of which needs the same per-group k-mer
// sets before doing something different with the resulting distances.
func loadGroupsAndBitmaps(cmd *cobra.Command, opt *Options, k int, canonical bool) ([]musk.GroupFileList, []*musk.GroupBitmap) {
	file2taxid := getFlagString(cmd, "file2taxid")
	checkFiles(file2taxid)

	entries, err := musk.LoadFile2TaxID(file2taxid)
	checkError(errors.Wrapf(err, "loading file2taxid: %s", file2taxid))
	groups := musk.GroupFilesByTaxID(entries)
	if len(groups) == 0 {
		checkError(errors.Errorf("no groups found in file2taxid: %s", file2taxid))
	}
	for _, g := range groups {
		checkFiles(g.Files...)
	}

	warn := func(format string, args ...interface{}) { log.Warningf(format, args...) }

	bitmaps := make([]*musk.GroupBitmap, len(groups))
	err = traverse.Each(len(groups), func(i int) error {
		bm, err := musk.BuildGroupBitmap(groups[i].Files, k, canonical, warn)
		if err != nil {
			return errors.Wrapf(err, "building bitmap for group %s", groups[i].Identifier)
		}
		bitmaps[i] = bm
		return nil
	})
	checkError(err)
	return groups, bitmaps
}
