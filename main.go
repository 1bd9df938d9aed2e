package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
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
	"log"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/motifs/cmd"
	"github.com/timtadh/motifs/config"
)

func init() {
	cmd.UsageMessage = "motifs --help"
	cmd.ExtendedMessage = `
motifs - count network motifs and compare them against an ensemble

$ motifs -o <path> [Global Options] <network-path> \
    [<reporter> [Reporter Options]]

Note: You may either supply the <network-path> as a regular file, a gzipped
      file or a directory whose files are concatenated. If supplying a gzip
      file the file extension must be '.gz'.

Note: Every -e path names ensemble networks in the same format as the
      original. A directory supplies one ensemble member per regular file.

Note: If you don't supply a reporter by default it will use
      'chain log csv endchain'. See the documentation for Reporters for
      details.


Global Options
    -h, --help                view this message
    --loaders                 show the available loaders
    --enumerators             show the available enumerators
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional)
                              NB: will overwrite contents of dir
    -k, --size=<int>          number of nodes in a motif (default 3)
                              NB: motif ids are 64 bit so k is at most 5
                              with base 4, 6 with base 3 and 8 with base 2
    --base=<int>              base of the motif ids, edge weights must be
                              smaller than it (default 4)
    -l, --loader=<name>       the format of the networks (default matrix)
    --enumerator=<name>       how connected subsets are enumerated
                              (default extension)
    --check=<name>            count the original network a second time with
                              this enumerator and fail when they disagree
    -e, --ensemble=<path>     an ensemble network or a directory of them.
                              may be given many times.
    -p, --parallelism=<int>   number of worker goroutines. -1 means one per
                              cpu (default 1)
    --skip-failed             leave ensemble networks which fail to load or
                              count out of the report instead of aborting
    --skip-log=<level>        don't output the given log level.
    --cpu-profile=<path>      write a cpu-profile to this file.

Loaders
    matrix                    whitespace separated n*n adjacency matrix with
                              entries 0, 1, 2 and -1 (weights 0, 1, 2, 3)
    int                       'v <id> <label>' and 'e <src> <targ> <weight>'
                              lines
    veg                       'vertex' and 'edge' lines with json attributes,
                              the edge label is the weight
    dot                       graphviz digraphs. weights come from the weight
                              attribute or the arrowhead written by the dot
                              reporter

Enumerators
    extension                 extends each root with larger neighbors
    edges                     grows subsets one adjacent edge at a time
    brute                     tests every k subset for connectivity (slow)

Reporters
    log                       log every motif with its z-score
    csv                       write the counts to a csv file
    dot                       write each motif as a graphviz file
    html                      write a table of the interesting motifs, most
                              frequent first
    count                     write the number of motifs
    chain                     a chain of reporters all run on the report
    interesting               only report motifs which close a cycle
    significant               only report over represented motifs
    frequent                  only report motifs occurring often enough in the
                              original network

    Reporters form a tree: chain takes the reporters up to 'endchain' and the
    filters (interesting, significant, frequent) take exactly one reporter.

    log Options
        -l, level=<level>     the log level to log at (default INFO)
        -p, prefix=<string>   a prefix to put before the log line

    csv Options
        -f, filename=<name>   the file in the output directory (default
                              stats.csv)

    count Options
        -f, filename=<name>   the file in the output directory (default count)

    dot and html Options
        -d, dir-name=<name>   the directory in the output directory to write
                              the motifs to (default graphs)
        -f, filename=<name>   (html only) the name of the page (default
                              <network-name>.html)

    significant Options
        -z, min-z=<float>     the least z-score to report (default 2)
        -a, max-above=<float> the largest fraction of ensemble members which
                              may contain the motif at least as often as the
                              original (default 0.05)

    frequent Options
        -m, min=<int>         the least count in the original (default 1)

    Examples

        $ motifs -o /tmp/motifs -k 3 -e ./random/ ./regulatory.txt

        $ motifs -o /tmp/motifs -k 4 -p -1 -l int -e ./random/ ./net.int \
            chain \
                log \
                csv \
                interesting chain dot html endchain \
            endchain

        $ motifs -o /tmp/motifs --check=edges ./regulatory.txt \
            significant --min-z=3 log -p significant
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:k:l:e:p:",
		[]string{
			"help",
			"output=", "cache=",
			"loaders", "enumerators", "reporters",
			"size=",
			"base=",
			"loader=",
			"enumerator=",
			"check=",
			"ensemble=",
			"parallelism=",
			"skip-failed",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	output := ""
	cache := ""
	k := 3
	base := 4
	parallelism := 1
	skipFailed := false
	cpuProfile := ""
	opts := &cmd.Options{
		Loader:     "matrix",
		Enumerator: "extension",
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = cmd.EmptyDir(oa.Arg())
		case "-c", "--cache":
			cache = cmd.EmptyDir(oa.Arg())
		case "-k", "--size":
			k = cmd.ParseInt(oa.Arg())
		case "--base":
			base = cmd.ParseInt(oa.Arg())
		case "-l", "--loader":
			opts.Loader = oa.Arg()
		case "--enumerator":
			opts.Enumerator = oa.Arg()
		case "--check":
			opts.Check = oa.Arg()
		case "-e", "--ensemble":
			opts.Ensemble = append(opts.Ensemble, cmd.AssertFileOrDirExists(oa.Arg()))
		case "-p", "--parallelism":
			parallelism = cmd.ParseInt(oa.Arg())
		case "--skip-failed":
			skipFailed = true
		case "--loaders":
			fmt.Fprintln(os.Stderr, "Loaders:")
			for k := range cmd.Loaders {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--enumerators":
			fmt.Fprintln(os.Stderr, "Enumerators:")
			for k := range cmd.Enumerators {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if k <= 0 {
		fmt.Fprintf(os.Stderr, "Size <= 0, must be > 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if base < 2 || base > 256 {
		fmt.Fprintf(os.Stderr, "Base must be in [2, 256]\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if parallelism == 0 || parallelism < -1 {
		fmt.Fprintf(os.Stderr, "Parallelism must be -1 or > 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	conf := &config.Config{
		Cache:       cache,
		Output:      output,
		K:           k,
		Base:        uint64(base),
		Parallelism: parallelism,
		SkipFailed:  skipFailed,
	}
	return cmd.Main(args, conf, opts)
}
