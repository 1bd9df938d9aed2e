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
	"fmt"
	"os"
)

import (
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/motifs/cmd"
	"github.com/timtadh/motifs/motif"
)

func init() {
	cmd.UsageMessage = "motif-dot --help"
	cmd.ExtendedMessage = `
motif-dot -k <int> [--base=<int>] <id>...

Prints the graphviz diagram of each motif id as written by the dot reporter
of motifs. The ids must have been counted with the same size and base. The
size is at most 5 with base 4, 6 with base 3 and 8 with base 2.

$ motif-dot -k 3 <id> | neato -n -Tpng > <id>.dot.png
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hk:",
		[]string{
			"help",
			"size=",
			"base=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	k := 0
	base := motif.DefaultBase
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-k", "--size":
			k = cmd.ParseInt(oa.Arg())
		case "--base":
			base = cmd.ParseInt(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if k <= 0 {
		fmt.Fprintf(os.Stderr, "You must supply the motif size (-k)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "You must supply at least one motif id\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	encoding := motif.Encoding{Base: uint64(base)}
	for _, arg := range args {
		net, err := encoding.Decode(k, cmd.ParseId(arg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not decode %v\n", arg)
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Println(net.Dot())
	}
	return 0
}
