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
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/musk"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build a binary k-mer index from a file2taxid group list",
	Long: `build a binary k-mer index from a file2taxid group list

Reads FASTA files, grouped into reference groups by a two-column
"<file>\t<taxid>" file2taxid list, enumerates k-mers per group, orders
the groups to maximize adjacent similarity and writes a run-length
encoded database.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		k := getFlagPositiveInt(cmd, "kmer-length")
		if k > musk.MaxK {
			checkError(fmt.Errorf("-k/--kmer-length (%d) exceeds the maximum supported k-mer length (%d)", k, musk.MaxK))
		}
		canonical := getFlagBool(cmd, "canonical")
		file2taxid := getFlagString(cmd, "file2taxid")
		checkFiles(file2taxid)
		lossyLevel := getFlagNonNegativeInt(cmd, "lossy-level")
		if lossyLevel > 3 {
			checkError(fmt.Errorf("--lossy-level should be 0 (disabled), 1, 2 or 3"))
		}
		dryRun := getFlagBool(cmd, "dry-run")
		outFile := getFlagString(cmd, "output-location")
		if !dryRun && outFile == "" {
			checkError(fmt.Errorf("-o/--output-location is required unless --dry-run is given"))
		}

		groups, bitmaps := loadGroupsAndBitmaps(cmd, opt, k, canonical)
		if opt.Verbose {
			log.Infof("%d reference group(s) loaded from %s", len(groups), file2taxid)
		}

		if opt.Verbose {
			for i, bm := range bitmaps {
				log.Infof("group %s: %s distinct %d-mers", groups[i].Identifier, humanize.Comma(int64(bm.Len())), k)
			}
		}

		d, err := musk.ComputeDistanceMatrix(bitmaps)
		checkError(errors.Wrap(err, "computing pairwise distance matrix"))

		orderingInt := musk.GreedyOrdering(d, 0)
		avg, total := musk.OrderingStatistics(orderingInt, d)
		log.Infof("greedy group ordering: total adjacent distance %s, average %.2f", humanize.Comma(int64(total)), avg)

		ordering := make([]uint32, len(orderingInt))
		for i, g := range orderingInt {
			ordering[i] = uint32(g)
		}

		if dryRun {
			printDryRunTable(groups, bitmaps, ordering)
			return
		}

		if !isStdout(outFile) && !strings.HasSuffix(outFile, extDataFile) {
			outFile += extDataFile
		}

		groupInfos := make([]musk.GroupInfo, len(groups))
		for i, g := range groups {
			groupInfos[i] = musk.GroupInfo{Identifier: g.Identifier, TaxID: g.TaxID}
		}

		codeSources := make([][]uint32, len(bitmaps))
		for i, bm := range bitmaps {
			codeSources[i] = bm.ToSortedSlice()
		}
		union := musk.NewUnionIterator(codeSources...)

		var kmerCodes []uint32
		var columns []*musk.RunLengthEncoding
		counts := make([]uint64, len(groups))

		for {
			code, ok := union.Next()
			if !ok {
				break
			}
			b := musk.NewBuildRunLengthEncoding()
			for col, origGroup := range ordering {
				if bitmaps[origGroup].Contains(code) {
					b.Push(uint64(col))
				}
			}
			col := b.ToRLE()
			if lossyLevel > 0 {
				col = musk.LossyCompressColumn(col, lossyLevel)
			}
			for _, pos := range col.Iterate() {
				counts[ordering[pos]]++
			}
			kmerCodes = append(kmerCodes, code)
			columns = append(columns, col)
		}

		density := make([]float64, len(groups))
		for g := range density {
			if len(kmerCodes) > 0 {
				density[g] = float64(counts[g]) / float64(len(kmerCodes))
			}
		}

		outfh, err := outStream(outFile)
		checkError(errors.Wrapf(err, "writing database: %s", outFile))
		defer outfh.Close()

		w := musk.NewDatabaseWriter(outfh, k, canonical, ordering, groupInfos, density, kmerCodes)
		for _, col := range columns {
			checkError(w.WriteColumn(col))
		}
		checkError(w.Flush())

		log.Infof("wrote database with %d groups and %s k-mers to %s", len(groups), humanize.Comma(int64(len(kmerCodes))), outFile)
	},
}

func printDryRunTable(groups []musk.GroupFileList, bitmaps []*musk.GroupBitmap, ordering []uint32) {
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
		{Header: "kmers", Align: stable.AlignRight},
	}
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)
	for col, origGroup := range ordering {
		g := groups[origGroup]
		tbl.AddRow([]interface{}{col, g.Identifier, g.TaxID, humanize.Comma(int64(bitmaps[origGroup].Len()))})
	}
	fmt.Print(string(tbl.Render(style)))
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().IntP("kmer-length", "k", 14, "k-mer length (<=16)")
	buildCmd.Flags().BoolP("canonical", "C", false, "use canonical k-mers (min of a k-mer and its reverse complement)")
	buildCmd.Flags().StringP("file2taxid", "f", "", `two-column "file<TAB>taxid" group list`)
	buildCmd.Flags().StringP("output-location", "o", "", "output database path")
	buildCmd.Flags().IntP("lossy-level", "l", 0, "lossy compression level: 0 (disabled), 1, 2 or 3")
	buildCmd.Flags().BoolP("dry-run", "", false, "print the planned group ordering and sizes without writing the database")
}
