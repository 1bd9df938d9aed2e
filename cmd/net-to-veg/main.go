package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2016, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/motifs/cmd"
	"github.com/timtadh/motifs/types/network"
)

func init() {
	cmd.UsageMessage = "net-to-veg --help"
	cmd.ExtendedMessage = `
net-to-veg -l <loader> -i net.txt -o net.veg
cat net.dot | net-to-veg -l dot > out.veg
net-to-veg -l int -i net.int > out.veg
cat net.txt | net-to-veg -o net.veg.gz

Loaders: matrix (default), int, veg, dot
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hl:i:o:",
		[]string{
			"help",
			"loader=",
			"input=",
			"output=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "trailing args: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	loaderName := "matrix"
	inputPath := ""
	outputPath := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-l", "--loader":
			loaderName = oa.Arg()
		case "-i", "--input":
			inputPath = cmd.AssertFileOrDirExists(oa.Arg())
		case "-o", "--output":
			outputPath = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	loader, has := cmd.Loaders[loaderName]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", loaderName)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	var input network.Input
	if inputPath != "" {
		input, err = cmd.Slurp(inputPath)
		if err != nil {
			errors.Logf("ERROR", "could not read %v : %v", inputPath, err)
			return 1
		}
	} else {
		inputPath = "<stdin>"
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			errors.Logf("ERROR", "could not read %v : %v", inputPath, err)
			return 1
		}
		input = func() (io.Reader, func()) {
			return strings.NewReader(string(data)), func() {}
		}
	}

	var output io.Writer
	if outputPath != "" {
		outputf, err := os.Create(outputPath)
		if err != nil {
			errors.Logf("ERROR", "could not open %v : %v", outputPath, err)
			return 1
		}
		defer outputf.Close()
		if strings.HasSuffix(outputPath, ".gz") {
			z := gzip.NewWriter(outputf)
			defer z.Close()
			output = z
		} else {
			output = outputf
		}
	} else {
		outputPath = "<stdout>"
		output = os.Stdout
	}

	errors.Logf("INFO", "converting %v writing to %v", inputPath, outputPath)
	net, err := loader.Load(input)
	if err != nil {
		errors.Logf("ERROR", "error loading %v: %v", inputPath, err)
		return 1
	}
	if err := net.FormatVeg(output); err != nil {
		errors.Logf("ERROR", "error writing veg %v", err)
		return 1
	}
	return 0
}
