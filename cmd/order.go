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
	"fmt"
	"runtime"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/musk"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "compute the greedy nearest-unvisited group ordering",
	Long: `compute the greedy nearest-unvisited group ordering

Standalone counterpart of the ordering step "build" runs internally:
prints the column order "build" would choose and its tour-length
statistics, without writing a database. Useful for comparing --start
choices before committing to a full build ("build" always starts the
tour at group 0).

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		k := getFlagPositiveInt(cmd, "kmer-length")
		canonical := getFlagBool(cmd, "canonical")
		start := getFlagNonNegativeInt(cmd, "start")

		groups, bitmaps := loadGroupsAndBitmaps(cmd, opt, k, canonical)
		if start >= len(groups) {
			checkError(fmt.Errorf("--start (%d) out of range for %d groups", start, len(groups)))
		}

		d, err := musk.ComputeDistanceMatrix(bitmaps)
		checkError(errors.Wrap(err, "computing pairwise distance matrix"))

		ordering := musk.GreedyOrdering(d, start)
		avg, total := musk.OrderingStatistics(ordering, d)

		style := &stable.TableStyle{
			Name:      "plain",
			HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			Padding:   "",
		}
		columns := []stable.Column{
			{Header: "column"},
			{Header: "group"},
			{Header: "taxid", Align: stable.AlignRight},
			{Header: "dist-to-prev", Align: stable.AlignRight},
		}
		tbl := stable.New()
		tbl.HeaderWithFormat(columns)
		for col, origGroup := range ordering {
			var distToPrev interface{} = "-"
			if col > 0 {
				distToPrev = d.At(ordering[col-1], origGroup)
			}
			tbl.AddRow([]interface{}{col, groups[origGroup].Identifier, groups[origGroup].TaxID, distToPrev})
		}
		fmt.Print(string(tbl.Render(style)))
		fmt.Printf("\ntotal adjacent distance: %s, average: %.2f\n", humanize.Comma(int64(total)), avg)
	},
}

func init() {
	RootCmd.AddCommand(orderCmd)

	orderCmd.Flags().IntP("kmer-length", "k", 14, "k-mer length (<=16)")
	orderCmd.Flags().BoolP("canonical", "C", false, "use canonical k-mers (min of a k-mer and its reverse complement)")
	orderCmd.Flags().StringP("file2taxid", "f", "", `two-column "file<TAB>taxid" group list`)
	orderCmd.Flags().IntP("start", "s", 0, "index of the group to start the tour from")
}
