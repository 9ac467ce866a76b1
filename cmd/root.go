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
	"os"
	"runtime"

	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

// VERSION is the current tool version.
const VERSION = "0.1.0"

var log = logging.MustGetLogger("musk")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "musk",
	Short: "Metagenomic classification via k-mer binary indices",
	Long: fmt.Sprintf(`musk - Metagenomic classification via k-mer binary indices

A command-line toolkit for building a per-k-mer binary index over a set of
reference genome groups and classifying reads against it: k-mers are
enumerated and canonicalized (k <= 16), membership across groups is packed
into run-length-encoded columns ordered to maximize run length, and reads
are scored per group with a binomial survival-function p-value.

Version: %s

Author: Wei Shen <shenwei356@gmail.com>

`, VERSION),
}

// Execute adds all child commands to the root command and parses flags.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	defaultThreads := runtime.NumCPU()
	if defaultThreads > 2 {
		defaultThreads = 2
	}

	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads, "number of CPUs to use. (default value: 1 for single-CPU PC, 2 for others)")
	RootCmd.PersistentFlags().BoolP("verbose", "", false, "print verbose information")
	RootCmd.PersistentFlags().StringP("infile-list", "i", "", "file of input files list (one file per line), if given, files from cli arguments are ignored")
}
