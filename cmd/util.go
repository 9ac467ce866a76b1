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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

// extDataFile is the suffix expected/added on musk's own binary outputs.
const extDataFile = ".musk.db"

// extR2FFile is the suffix used for a computed read-to-group assignment
// report.
const extR2FFile = ".musk.r2f"

// Options contains the global flags shared by every subcommand.
type Options struct {
	NumCPUs int
	Verbose bool
}

func getOptions(cmd *cobra.Command) *Options {
	return &Options{
		NumCPUs: getFlagPositiveInt(cmd, "threads"),
		Verbose: getFlagBool(cmd, "verbose"),
	}
}

// checkError prints err and exits the process if err is non-nil.
func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	value := getFlagInt(cmd, flag)
	if value <= 0 {
		checkError(fmt.Errorf("value of --%s should be a positive integer", flag))
	}
	return value
}

func getFlagNonNegativeInt(cmd *cobra.Command, flag string) int {
	value := getFlagInt(cmd, flag)
	if value < 0 {
		checkError(fmt.Errorf("value of --%s should not be negative", flag))
	}
	return value
}

func getFlagUint64(cmd *cobra.Command, flag string) uint64 {
	value, err := cmd.Flags().GetUint64(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	value, err := cmd.Flags().GetFloat64(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

func getFlagStringSlice(cmd *cobra.Command, flag string) []string {
	value, err := cmd.Flags().GetStringSlice(flag)
	checkError(errors.Wrapf(err, "flag --%s", flag))
	return value
}

// isStdin reports whether file names standard input ("-").
func isStdin(file string) bool {
	return file == "-"
}

// isStdout reports whether file names standard output ("-").
func isStdout(file string) bool {
	return file == "-"
}

// checkFiles errors out if any non-stdin file in files does not exist.
func checkFiles(files ...string) {
	for _, file := range files {
		if isStdin(file) {
			continue
		}
		ok, err := pathutil.Exists(file)
		checkError(errors.Wrapf(err, "checking file: %s", file))
		if !ok {
			checkError(fmt.Errorf("file does not exist: %s", file))
		}
	}
}

// getFileList resolves the positional arguments into a file list,
// defaulting to stdin ("-") when args is empty.
func getFileList(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// getFileListFromArgsAndFile resolves an input file list either from an
// "--infile-list" file (one path per line) or from the command's
// positional arguments, falling back to stdin when neither is given and
// allowStdin is true.
func getFileListFromArgsAndFile(cmd *cobra.Command, args []string, checkFile bool, listFlag string, allowStdin bool) []string {
	listFile := getFlagString(cmd, listFlag)

	var files []string
	if listFile != "" {
		fh, err := os.Open(listFile)
		checkError(errors.Wrapf(err, "reading file list: %s", listFile))
		defer fh.Close()

		scanner := bufio.NewScanner(fh)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			files = append(files, line)
		}
		checkError(scanner.Err())
	} else {
		files = args
	}

	if len(files) == 0 {
		if !allowStdin {
			checkError(fmt.Errorf("no input files given"))
		}
		files = []string{"-"}
	}

	if checkFile {
		checkFiles(files...)
	}
	return files
}
