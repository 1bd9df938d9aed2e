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
	"bufio"
	"fmt"
	"os"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/motifs/cmd"
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/types/network"
)

func init() {
	cmd.UsageMessage = "list-instances --help"
	cmd.ExtendedMessage = `
list-instances -k <int> [--base=<int>] [-l <loader>] (-i <id>)... <network>
list-instances -k <int> -n <ids-file> <network>

Prints the node labels of every k node subset of the network that is an
instance of one of the motifs, one subset per line prefixed by the motif id.
An ids file has one motif id per line (the first column of stats.csv).
`
}

func main() {
	os.Exit(run())
}

func loadIds(path string) (ids []motif.Id, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ids = make([]motif.Id, 0, 10)
	seen := make(map[string]bool)
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(strings.SplitN(s.Text(), ",", 2)[0])
		if line == "" || line == "MotifId" {
			continue
		}
		if _, has := seen[line]; !has {
			seen[line] = true
			ids = append(ids, cmd.ParseId(line))
		}
	}
	return ids, s.Err()
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hk:l:i:n:",
		[]string{
			"help",
			"size=",
			"base=",
			"loader=",
			"id=",
			"ids=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	k := 0
	base := motif.DefaultBase
	loaderName := "matrix"
	ids := make([]motif.Id, 0, 10)
	idsPath := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-k", "--size":
			k = cmd.ParseInt(oa.Arg())
		case "--base":
			base = cmd.ParseInt(oa.Arg())
		case "-l", "--loader":
			loaderName = oa.Arg()
		case "-i", "--id":
			ids = append(ids, cmd.ParseId(oa.Arg()))
		case "-n", "--ids":
			idsPath = cmd.AssertFileOrDirExists(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if idsPath != "" && len(ids) > 0 {
		fmt.Fprintf(os.Stderr, "You cannot supply ids with both (-i) and (-n)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if len(ids) == 0 && idsPath == "" {
		fmt.Fprintf(os.Stderr, "You must supply a motif id (-i, -n)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly one network\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	loader, has := cmd.Loaders[loaderName]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", loaderName)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if idsPath != "" {
		var err error
		ids, err = loadIds(idsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "There was error loading the ids file\n")
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	}

	counter := motif.NewCounter(k)
	counter.Encoding = motif.Encoding{Base: uint64(base)}
	if err := counter.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	net, err := cmd.Load(loader, cmd.AssertFileOrDirExists(args[0]))()
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	errors.Logf("INFO", "looking for instances of %v motifs", len(ids))
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	counts := make(map[motif.Id]int, len(ids))
	err = counter.Find(net, ids, func(id motif.Id, nodes []int) error {
		counts[id]++
		_, err := fmt.Fprintf(out, "%d %v\n", uint64(id), labels(net, nodes))
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the search\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, id := range ids {
		errors.Logf("INFO", "motif %v: %v instances", id, counts[id])
	}
	return 0
}

func labels(net *network.Network, nodes []int) string {
	names := make([]string, 0, len(nodes))
	for _, v := range nodes {
		names = append(names, net.Node(v).Label)
	}
	return strings.Join(names, " ")
}
