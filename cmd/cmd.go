package cmd

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
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/ensemble"
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/reporters"
	"github.com/timtadh/motifs/stats"
	"github.com/timtadh/motifs/types/network"
)

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	if urandom, err := os.Open("/dev/urandom"); err != nil {
		panic(err)
	} else {
		seed := make([]byte, 8)
		if _, err := urandom.Read(seed); err == nil {
			rand.Seed(int64(binary.BigEndian.Uint64(seed)))
		}
		urandom.Close()
	}
}

var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"version":  2,
	"opts":     3,
	"badint":   5,
	"badfloat": 6,
	"baddir":   6,
	"badfile":  7,
	"badid":    8,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

// Input opens a file (gunzipping it when the name ends in .gz) or the
// concatenation of the regular files in a directory.
func Input(inputPath string) (reader io.Reader, closeall func(), err error) {
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if stat.IsDir() {
		return InputDir(inputPath)
	}
	return InputFile(inputPath)
}

func InputFile(inputPath string) (reader io.Reader, closeall func(), err error) {
	freader, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(inputPath, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			freader.Close()
			return nil, nil, err
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}, nil
	}
	return freader, func() {
		freader.Close()
	}, nil
}

func InputDir(inputDir string) (reader io.Reader, closeall func(), err error) {
	var readers []io.Reader
	var closers []func()
	closeall = func() {
		for _, closer := range closers {
			closer()
		}
	}
	files, err := Members(inputDir)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range files {
		creader, closer, err := InputFile(name)
		if err != nil {
			closeall()
			return nil, nil, err
		}
		readers = append(readers, creader)
		closers = append(closers, closer)
	}
	return io.MultiReader(readers...), closeall, nil
}

// Slurp reads a whole input into memory so the loaders can read it as many
// times as they need.
func Slurp(inputPath string) (network.Input, error) {
	reader, closer, err := Input(inputPath)
	if err != nil {
		return nil, err
	}
	defer closer()
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, errors.Errorf("could not read %v: %v", inputPath, err)
	}
	return func() (io.Reader, func()) {
		return bytes.NewReader(data), func() {}
	}, nil
}

// Members lists the regular files of a directory by name, or just the path
// itself when it names a file.
func Members(memberPath string) ([]string, error) {
	stat, err := os.Stat(memberPath)
	if err != nil {
		return nil, err
	} else if !stat.IsDir() {
		return []string{memberPath}, nil
	}
	dir, err := ioutil.ReadDir(memberPath)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(dir))
	for _, info := range dir {
		if info.Mode().IsRegular() {
			files = append(files, filepath.Join(memberPath, info.Name()))
		}
	}
	return files, nil
}

// Name is the file name of a network path without directories or
// extensions.
func Name(networkPath string) string {
	name := filepath.Base(path.Clean(networkPath))
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

func ParseId(str string) motif.Id {
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a motif id\n", str)
		Usage(ErrorCodes["badid"])
	}
	return motif.Id(id)
}

func EmptyDir(dir string) string {
	dir = path.Clean(dir)
	_, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	} else {
		// something already exists lets delete it
		err := os.RemoveAll(dir)
		if err != nil {
			log.Fatal(err)
		}
		err = os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

var Loaders map[string]network.Loader = map[string]network.Loader{
	"matrix": network.MatrixLoader{},
	"int":    network.IntLoader{},
	"veg":    network.VegLoader{},
	"dot":    network.DotLoader{},
}

var Enumerators map[string]motif.Enumerator = map[string]motif.Enumerator{
	"extension": motif.Extension{},
	"edges":     motif.EdgeGrowth{},
	"brute":     motif.BruteForce{},
}

// Setup is what the reporters need to know about the run they report on.
type Setup struct {
	Config   *config.Config
	Encoding motif.Encoding
	Network  string
}

type Reporter func(map[string]Reporter, []string, *Setup) (reporters.Reporter, []string)

func logReporter(rptrs map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:p:",
		[]string{
			"help",
			"level=",
			"prefix=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	level := "INFO"
	prefix := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--level":
			level = oa.Arg()
		case "-p", "--prefix":
			prefix = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewLog(level, prefix), args
}

func fileOpt(argv []string, def string) (string, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"filename=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	filename := def
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--filename":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return filename, args
}

func csvReporter(rptrs map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	filename, args := fileOpt(argv, "stats.csv")
	r, err := reporters.NewCSV(setup.Config, filename)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func countReporter(rptrs map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	filename, args := fileOpt(argv, "count")
	r, err := reporters.NewCount(setup.Config, filename)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	return r, args
}

func graphsOpts(argv []string, setup *Setup) (dir, filename string, args []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hd:f:",
		[]string{
			"help",
			"dir-name=",
			"filename=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	dir = "graphs"
	filename = setup.Network + ".html"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-d", "--dir-name":
			dir = oa.Arg()
		case "-f", "--filename":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return dir, filename, args
}

func dotReporter(rptrs map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	dir, _, args := graphsOpts(argv, setup)
	r, err := reporters.NewDot(setup.Config, setup.Encoding, dir)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func htmlReporter(rptrs map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	dir, filename, args := graphsOpts(argv, setup)
	r, err := reporters.NewHTML(setup.Config, setup.Encoding, dir, filename)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func chainReporter(reports map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptrs := make([]reporters.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		var rptr reporters.Reporter
		rptr, args = next(reports, args, setup)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log csv")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

// next builds the reporter named by args[0] from the arguments following
// it.
func next(reports map[string]Reporter, args []string, setup *Setup) (reporters.Reporter, []string) {
	if len(args) == 0 {
		errors.Logf("ERROR", "You must supply a reporter")
		fmt.Fprintln(os.Stderr, "try: chain log csv endchain")
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		errors.Logf("ERROR", "Unknown reporter '%v'", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range reports {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	return reports[args[0]](reports, args[1:], setup)
}

func interestingReporter(reports map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := next(reports, args, setup)
	return reporters.NewInteresting(setup.Encoding, rptr), args
}

func significantReporter(reports map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hz:a:",
		[]string{
			"help",
			"min-z=",
			"max-above=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	minZ := 2.0
	maxAbove := 0.05
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-z", "--min-z":
			minZ = ParseFloat(oa.Arg())
		case "-a", "--max-above":
			maxAbove = ParseFloat(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := next(reports, args, setup)
	return reporters.NewSignificant(minZ, maxAbove, rptr), args
}

func frequentReporter(reports map[string]Reporter, argv []string, setup *Setup) (reporters.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hm:",
		[]string{
			"help",
			"min=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	min := 1
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-m", "--min":
			min = ParseInt(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := next(reports, args, setup)
	return reporters.NewFrequent(min, rptr), args
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":         logReporter,
	"csv":         csvReporter,
	"count":       countReporter,
	"dot":         dotReporter,
	"html":        htmlReporter,
	"chain":       chainReporter,
	"interesting": interestingReporter,
	"significant": significantReporter,
	"frequent":    frequentReporter,
}

// Options are the choices of the motifs command that are not part of the
// config.
type Options struct {
	Loader     string
	Enumerator string
	Check      string
	Ensemble   []string
}

func Main(args []string, conf *config.Config, opts *Options) int {
	loader, has := Loaders[opts.Loader]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", opts.Loader)
		fmt.Fprintln(os.Stderr, "Loaders:")
		for k := range Loaders {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	enumerator, has := Enumerators[opts.Enumerator]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown enumerator '%v'\n", opts.Enumerator)
		Usage(ErrorCodes["opts"])
	}
	if _, has := Enumerators[opts.Check]; opts.Check != "" && !has {
		fmt.Fprintf(os.Stderr, "Unknown enumerator to check against '%v'\n", opts.Check)
		Usage(ErrorCodes["opts"])
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	inputPath := AssertFileOrDirExists(args[0])
	args = args[1:]

	counter := &motif.Counter{
		K:          conf.K,
		Encoding:   motif.Encoding{Base: conf.Base},
		Enumerator: enumerator,
		Workers:    conf.Workers(),
	}
	if err := counter.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		Usage(ErrorCodes["opts"])
	}

	setup := &Setup{
		Config:   conf,
		Encoding: counter.Encoding,
		Network:  Name(inputPath),
	}
	var rptr reporters.Reporter
	if len(args) == 0 {
		rptr, _ = Reporters["chain"](Reporters, []string{"log", "csv", "endchain"}, setup)
	} else {
		rptr, args = next(Reporters, args, setup)
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(args, " "))
		Usage(ErrorCodes["opts"])
	}

	sources := make([]ensemble.Source, 0, 100)
	for _, p := range opts.Ensemble {
		files, err := Members(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			Usage(ErrorCodes["badfile"])
		}
		for _, f := range files {
			sources = append(sources, Load(loader, f))
		}
	}

	errors.Logf("INFO", "Got configuration about to load network %v", inputPath)
	net, err := Load(loader, inputPath)()
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "loaded network with %v nodes and %v edges", net.Order(), net.Size())

	if opts.Check != "" {
		if err := CrossCheck(counter, Enumerators[opts.Check], net); err != nil {
			fmt.Fprintf(os.Stderr, "The enumerators disagree\n")
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		errors.Logf("INFO", "%v agrees with %v", opts.Enumerator, opts.Check)
	}

	errors.Logf("INFO", "counting motifs of size %v in the network and %v ensemble members", conf.K, len(sources))
	report, runErr := ensemble.NewRunner(conf, counter).Run(net, sources)
	if runErr == nil {
		runErr = rptr.Report(report)
	}

	code := 0
	if e := rptr.Close(); e != nil {
		errors.Logf("ERROR", "error closing %v", e)
		code++
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "There was error during the counting process\n")
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		code++
	} else {
		errors.Logf("INFO", "Done!")
	}
	return code
}

// Load reads the network at a path once it is asked for.
func Load(loader network.Loader, networkPath string) ensemble.Source {
	return func() (*network.Network, error) {
		input, err := Slurp(networkPath)
		if err != nil {
			return nil, err
		}
		net, err := loader.Load(input)
		if err != nil {
			return nil, errors.Errorf("loading %v failed: %v", networkPath, err)
		}
		return net, nil
	}
}

// CrossCheck counts the motifs of net with the counter and again, on a
// randomly renumbered copy of net, with the other enumerator. It fails when
// the tables differ.
func CrossCheck(counter *motif.Counter, other motif.Enumerator, net *network.Network) error {
	expected, err := counter.Count(net)
	if err != nil {
		return err
	}
	renumbered, err := net.Subnet(stats.RandomPermutation(net.Order()))
	if err != nil {
		return err
	}
	check := *counter
	check.Enumerator = other
	check.Workers = 1
	got, err := check.Count(renumbered)
	if err != nil {
		return err
	}
	if !expected.Equals(got) {
		return errors.Errorf("%v motifs with %v subsets versus %v motifs with %v subsets", len(expected), expected.Total(), len(got), got.Total())
	}
	return nil
}
