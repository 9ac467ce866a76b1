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
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/musk"
	"github.com/spf13/cobra"
)

var pairwiseDistancesCmd = &cobra.Command{
	Use:     "pairwise-distances",
	Aliases: []string{"pairwise-distance"},
	Short:   "print the full pairwise group Hamming-distance matrix",
	Long: `print the full pairwise group Hamming-distance matrix

Standalone counterpart of the distance computation "build" and "order"
run internally: prints D[i][j] = |B_i|+|B_j|-2|B_i ∩ B_j| for every pair
of groups as a symmetric G x G table, tab-separated. The first line is a
header of group identifiers; each following line starts with its
group's identifier.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		k := getFlagPositiveInt(cmd, "kmer-length")
		canonical := getFlagBool(cmd, "canonical")
		outFile := getFlagString(cmd, "output-location")

		groups, bitmaps := loadGroupsAndBitmaps(cmd, opt, k, canonical)

		d, err := musk.ComputeDistanceMatrix(bitmaps)
		checkError(errors.Wrap(err, "computing pairwise distance matrix"))

		outfh, err := outStream(outFile)
		checkError(errors.Wrapf(err, "writing output: %s", outFile))
		defer outfh.Close()

		header := make([]string, 0, len(groups)+1)
		header = append(header, "group")
		for _, g := range groups {
			header = append(header, g.Identifier)
		}
		outfh.WriteString(strings.Join(header, "\t") + "\n")

		row := make([]string, 0, len(groups)+1)
		for i, gi := range groups {
			row = row[:0]
			row = append(row, gi.Identifier)
			for j := 0; j < d.G(); j++ {
				row = append(row, strconv.FormatUint(uint64(d.At(i, j)), 10))
			}
			outfh.WriteString(strings.Join(row, "\t") + "\n")
		}
	},
}

func init() {
	RootCmd.AddCommand(pairwiseDistancesCmd)

	pairwiseDistancesCmd.Flags().IntP("kmer-length", "k", 14, "k-mer length (<=16)")
	pairwiseDistancesCmd.Flags().BoolP("canonical", "C", false, "use canonical k-mers (min of a k-mer and its reverse complement)")
	pairwiseDistancesCmd.Flags().StringP("file2taxid", "f", "", `two-column "file<TAB>taxid" group list`)
	pairwiseDistancesCmd.Flags().StringP("output-location", "o", "-", "output file, or '-' for stdout")
}
