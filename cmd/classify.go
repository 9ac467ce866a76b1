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
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/musk"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "classify reads against a binary k-mer index",
	Long: `classify reads against a binary k-mer index

Each read's k-mers are looked up in the database and scored per group with
a binomial survival-function p-value; the group with the smallest p-value
wins if that p-value is below 10^-e (e given by --exp-cutoff), otherwise
the read is reported unclassified.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		seq.ValidateSeq = false

		dbFile := getFlagString(cmd, "database")
		checkFiles(dbFile)
		cutoff := musk.BigExpFromFloat64(math.Pow(10, -getFlagFloat64(cmd, "exp-cutoff")))
		maxQueries := getFlagUint64(cmd, "max-queries")
		outFile := getFlagString(cmd, "output-location")
		if !isStdout(outFile) && !strings.HasSuffix(outFile, extR2FFile) {
			outFile += extR2FFile
		}

		dbfh, err := inStream(dbFile)
		checkError(errors.Wrapf(err, "opening database: %s", dbFile))
		defer dbfh.Close()

		db, err := musk.LoadDatabase(dbfh)
		checkError(errors.Wrapf(err, "loading database: %s", dbFile))
		if opt.Verbose {
			log.Infof("loaded database: %s", db.DatabaseHeader.String())
		}

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)

		outfh, err := outStream(outFile)
		checkError(errors.Wrapf(err, "writing output: %s", outFile))
		defer outfh.Close()

		outfh.WriteString("read\tgroup\ttaxid\n")

		for _, file := range files {
			reader, err := fastx.NewDefaultReader(file)
			checkError(errors.Wrapf(err, "reading: %s", file))

			var ids []string
			var seqs [][]byte
			for {
				record, err := reader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					log.Warningf("skipping rest of %s: %v", file, err)
					break
				}
				ids = append(ids, string(record.ID))
				seqs = append(seqs, append([]byte(nil), record.Seq.Seq...))
			}

			results := make([]musk.Classification, len(seqs))
			err = traverse.Each(len(seqs), func(i int) error {
				result, err := db.Classify(seqs[i], cutoff, maxQueries)
				if err != nil {
					return err
				}
				results[i] = result
				return nil
			})
			checkError(errors.Wrapf(err, "classifying reads in %s", file))

			for i, id := range ids {
				r := results[i]
				if r.Unclassified {
					outfh.WriteString(fmt.Sprintf("%s\tU\t0\n", id))
					continue
				}
				outfh.WriteString(fmt.Sprintf("%s\t%s\t%d\n", id, r.Group.Identifier, r.Group.TaxID))
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("database", "d", "", "database file built by 'musk build'")
	classifyCmd.Flags().Float64P("exp-cutoff", "e", 6, "classification p-value cutoff exponent; accept p-values below 10^-e")
	classifyCmd.Flags().Uint64P("max-queries", "m", 100, "maximum number of unique k-mers sampled per read")
	classifyCmd.Flags().StringP("output-location", "o", "-", "output file (\".musk.r2f\" is appended if missing), or '-' for stdout")
}
