package cmd

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/reporters"
	"github.com/timtadh/motifs/types/network"
)

const fflMatrix = `0 1 1 0
0 0 1 0
0 0 0 1
0 0 0 0
`

const cycleMatrix = `0 1 0 0
0 0 1 0
1 0 0 1
0 0 0 0
`

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "motifs-cmd")
	if err != nil {
		t.Fatal(err)
	}
	return dir, func() { os.RemoveAll(dir) }
}

func write(t *testing.T, path, content string) string {
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gz") {
		z := gzip.NewWriter(f)
		defer z.Close()
		_, err = z.Write([]byte(content))
	} else {
		_, err = f.Write([]byte(content))
	}
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestName(x *testing.T) {
	t := assert.New(x)
	t.Equal("net", Name("/a/b/net.txt.gz"))
	t.Equal("regulatory", Name("regulatory.txt"))
	t.Equal("graph", Name("./graph"))
}

func TestMembersAndSlurp(x *testing.T) {
	t := assert.New(x)
	dir, clean := tempDir(x)
	defer clean()
	a := write(x, filepath.Join(dir, "a.txt"), fflMatrix)
	b := write(x, filepath.Join(dir, "b.txt.gz"), cycleMatrix)
	t.Nil(os.Mkdir(filepath.Join(dir, "sub"), 0775))

	files, err := Members(dir)
	t.Nil(err)
	t.Equal([]string{a, b}, files)
	files, err = Members(a)
	t.Nil(err)
	t.Equal([]string{a}, files)
	_, err = Members(filepath.Join(dir, "missing"))
	t.NotNil(err)

	input, err := Slurp(b)
	t.Nil(err)
	for i := 0; i < 2; i++ {
		net, err := network.MatrixLoader{}.Load(input)
		t.Nil(err)
		t.Equal(4, net.Order())
		t.Equal(4, net.Size())
	}

	reader, closer, err := Input(dir)
	t.Nil(err)
	all, err := ioutil.ReadAll(reader)
	closer()
	t.Nil(err)
	t.Equal(fflMatrix+cycleMatrix, string(all))
}

func TestLoad(x *testing.T) {
	t := assert.New(x)
	dir, clean := tempDir(x)
	defer clean()
	path := write(x, filepath.Join(dir, "net.txt"), fflMatrix)
	net, err := Load(network.MatrixLoader{}, path)()
	t.Nil(err)
	t.Equal(4, net.Size())
	_, err = Load(network.MatrixLoader{}, filepath.Join(dir, "missing"))()
	t.NotNil(err)
	bad := write(x, filepath.Join(dir, "bad.txt"), "0 1 x\n")
	_, err = Load(network.MatrixLoader{}, bad)()
	t.NotNil(err)
}

type missesRoots struct{}

func (missesRoots) Enumerate(net *network.Network, k int, visit func([]int) error) error {
	return motif.Extension{}.ExtendRoot(net, k, 0, visit)
}

func TestCrossCheck(x *testing.T) {
	t := assert.New(x)
	dir, clean := tempDir(x)
	defer clean()
	net, err := Load(network.MatrixLoader{}, write(x, filepath.Join(dir, "net.txt"), fflMatrix))()
	t.Nil(err)
	counter := motif.NewCounter(3)
	counter.Workers = 2
	t.Nil(CrossCheck(counter, motif.EdgeGrowth{}, net))
	t.Nil(CrossCheck(counter, motif.BruteForce{}, net))
	for i := 0; i < 10; i++ {
		t.Nil(CrossCheck(motif.NewCounter(2), motif.Extension{}, net))
	}
	t.NotNil(CrossCheck(counter, missesRoots{}, net))
	t.NotNil(CrossCheck(motif.NewCounter(0), motif.EdgeGrowth{}, net))
}

func TestReporterArgs(x *testing.T) {
	t := assert.New(x)
	dir, clean := tempDir(x)
	defer clean()
	setup := &Setup{Config: &config.Config{Output: dir}, Network: "net"}
	rptr, args := next(Reporters, []string{
		"chain",
		"log", "-p", "original",
		"csv", "-f", "counts.csv",
		"interesting", "chain", "dot", "html", "endchain",
		"endchain",
		"count",
	}, setup)
	t.Equal([]string{"count"}, args)
	chain, ok := rptr.(*reporters.Chain)
	t.True(ok)
	t.Equal(3, len(chain.Reporters))
	_, ok = chain.Reporters[0].(*reporters.Log)
	t.True(ok)
	_, ok = chain.Reporters[1].(*reporters.CSV)
	t.True(ok)
	interesting, ok := chain.Reporters[2].(*reporters.Interesting)
	t.True(ok)
	t.Equal(2, len(interesting.Reporter.(*reporters.Chain).Reporters))

	rptr, args = next(Reporters, []string{"significant", "-z", "3", "frequent", "--min=2", "log"}, setup)
	t.Equal(0, len(args))
	significant := rptr.(*reporters.Significant)
	t.Equal(3.0, significant.MinZ)
	t.Equal(0.05, significant.MaxAbove)
	t.Equal(2, significant.Reporter.(*reporters.Frequent).Min)
	t.Nil(rptr.Close())
	t.Nil(chain.Close())
}

func TestMainCountsEnsemble(x *testing.T) {
	t := assert.New(x)
	dir, clean := tempDir(x)
	defer clean()
	out := filepath.Join(dir, "out")
	t.Nil(os.Mkdir(out, 0775))
	members := filepath.Join(dir, "random")
	t.Nil(os.Mkdir(members, 0775))
	original := write(x, filepath.Join(dir, "regulatory.txt"), fflMatrix)
	write(x, filepath.Join(members, "r1.txt"), cycleMatrix)
	write(x, filepath.Join(members, "r2.txt.gz"), fflMatrix)
	extra := write(x, filepath.Join(dir, "extra.txt"), cycleMatrix)

	conf := &config.Config{Output: out, K: 3, Parallelism: 2}
	opts := &Options{
		Loader:     "matrix",
		Enumerator: "extension",
		Check:      "edges",
		Ensemble:   []string{members, extra},
	}
	t.Equal(0, Main([]string{original, "chain", "csv", "html", "endchain"}, conf, opts))

	bytes, err := ioutil.ReadFile(filepath.Join(out, "stats.csv"))
	t.Nil(err)
	lines := strings.Split(strings.TrimSpace(string(bytes)), "\n")
	t.Equal("MotifId,Original,R1,R2,R3", lines[0])
	t.Equal(3, len(lines))
	html, err := ioutil.ReadFile(filepath.Join(out, "graphs", "regulatory.html"))
	t.Nil(err)
	t.True(strings.HasPrefix(string(html), "<html><body><table><tr>"))
}
