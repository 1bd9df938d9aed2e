package motif

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"sort"
)

import (
	"github.com/timtadh/motifs/canon"
)

func identify(x *testing.T, c *Counter, n int, edges [][2]int) Id {
	net := build(x, n, edges)
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	id, err := c.Identify(net, nodes)
	assert.Nil(x, err)
	return id
}

func sortedCounts(f Frequencies) []int {
	counts := make([]int, 0, len(f))
	for _, c := range f {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}

func TestFanFeedForward(x *testing.T) {
	t := assert.New(x)
	c := NewCounter(3)
	freqs, err := c.Count(fan(x))
	t.Nil(err)
	ffl := identify(x, c, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	outFan := identify(x, c, 3, [][2]int{{0, 1}, {0, 2}})
	inFan := identify(x, c, 3, [][2]int{{1, 0}, {2, 0}})
	t.Equal(10, freqs.Count(ffl))
	t.Equal(45, freqs.Count(outFan))
	t.Equal(45, freqs.Count(inFan))
	t.Equal(3, len(freqs))
	t.Equal(100, freqs.Total())
}

func TestRegulatoryTriads(x *testing.T) {
	t := assert.New(x)
	c := NewCounter(3)
	freqs, err := c.Count(build(x, 16, regulatory))
	t.Nil(err)
	t.Equal(4, len(freqs))
	t.Equal(5, freqs.Count(identify(x, c, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})))
	t.Equal(10, freqs.Count(identify(x, c, 3, [][2]int{{0, 1}, {1, 2}})))
	t.Equal(3, freqs.Count(identify(x, c, 3, [][2]int{{0, 1}, {0, 2}})))
	t.Equal(3, freqs.Count(identify(x, c, 3, [][2]int{{1, 0}, {2, 0}})))
}

func TestRegulatoryTetrads(x *testing.T) {
	t := assert.New(x)
	freqs, err := NewCounter(4).Count(build(x, 16, regulatory))
	t.Nil(err)
	t.Equal(9, len(freqs))
	t.Equal([]int{1, 1, 1, 2, 2, 3, 4, 5, 5}, sortedCounts(freqs))
}

func TestCountMatchesBruteForce(x *testing.T) {
	t := assert.New(x)
	for trial := 0; trial < 10; trial++ {
		net := randomNetwork(x, int64(trial), 12, 20, 3)
		for k := 2; k <= 4; k++ {
			c := NewCounter(k)
			expected, err := (&Counter{K: k, Enumerator: BruteForce{}}).Count(net)
			t.Nil(err)
			got, err := c.Count(net)
			t.Nil(err)
			t.True(expected.Equals(got), "k=%v %v %v", k, expected, got)
			edges, err := (&Counter{K: k, Enumerator: EdgeGrowth{}}).Count(net)
			t.Nil(err)
			t.True(expected.Equals(edges))
			total := 0
			t.Nil(BruteForce{}.Enumerate(net, k, func([]int) error {
				total++
				return nil
			}))
			t.Equal(total, got.Total())
		}
	}
}

func TestRandomNetworksEncode(x *testing.T) {
	t := assert.New(x)
	for seed := int64(0); seed < 20; seed++ {
		net := randomNetwork(x, seed, 12, 20, 3)
		t.Equal(20, net.Size())
		pairs := make(map[[2]int]bool)
		for _, e := range net.Edges() {
			t.False(pairs[[2]int{e.Src, e.Targ}], "seed %v %v->%v", seed, e.Src, e.Targ)
			pairs[[2]int{e.Src, e.Targ}] = true
		}
		t.Equal(net.E, randomNetwork(x, seed, 12, 20, 3).E)
		_, err := NewCounter(4).Count(net)
		t.Nil(err, "seed %v", seed)
	}
	t.Equal(4, randomNetwork(x, 1, 2, 10, 1).Size())
}

func TestCountDeterministic(x *testing.T) {
	t := assert.New(x)
	net := randomNetwork(x, 90, 40, 90, 3)
	serial, err := NewCounter(4).Count(net)
	t.Nil(err)
	again, err := NewCounter(4).Count(net)
	t.Nil(err)
	t.True(serial.Equals(again))
	for _, workers := range []int{2, 3, 8} {
		c := NewCounter(4)
		c.Workers = workers
		parallel, err := c.Count(net)
		t.Nil(err)
		t.True(serial.Equals(parallel), "workers %v", workers)
	}
}

func TestCountIdsDecodeToCanonicalForms(x *testing.T) {
	t := assert.New(x)
	c := NewCounter(3)
	freqs, err := c.Count(build(x, 16, regulatory))
	t.Nil(err)
	for _, id := range freqs.Ids() {
		motif, err := c.Encoding.Decode(3, id)
		t.Nil(err)
		canonical, err := Canonicalize(motif, canon.Labeler{})
		t.Nil(err)
		again, err := c.Encoding.Encode(canonical)
		t.Nil(err)
		t.Equal(id, again)
		t.True(motif.Connected([]int{0, 1, 2}))
	}
}

type failingLabeler struct{}

func (failingLabeler) CanonicalLabeling(n int, arcs []canon.Arc) ([]int, error) {
	return nil, errTest("no labeling")
}

func TestCountErrors(x *testing.T) {
	t := assert.New(x)
	net := fan(x)
	for _, c := range []*Counter{
		{K: 0},
		{K: 6},
		{K: 9, Encoding: Encoding{Base: 2}},
		{K: 3, Encoding: Encoding{Base: 1}},
	} {
		_, err := c.Count(net)
		t.NotNil(err, "%v", c.K)
	}
	_, err := (&Counter{K: 8, Encoding: Encoding{Base: 2}}).Count(build(x, 3, nil))
	t.Nil(err)

	_, err = (&Counter{K: 3, Labeler: failingLabeler{}}).Count(net)
	t.Equal(errTest("no labeling"), err)
	_, err = (&Counter{K: 3, Labeler: failingLabeler{}, Workers: 4}).Count(net)
	t.NotNil(err)

	heavy := build(x, 2, nil)
	t.Nil(heavy.AddEdge(0, 1, 7))
	_, err = NewCounter(2).Count(heavy)
	t.NotNil(err)
}

func TestFrequencies(x *testing.T) {
	t := assert.New(x)
	f := NewFrequencies()
	f.Add(5)
	f.Add(2)
	f.Add(5)
	t.Equal([]Id{2, 5}, f.Ids())
	t.Equal(2, f.Count(5))
	t.Equal(0, f.Count(7))
	t.Equal(3, f.Total())
	g := Frequencies{5: 1, 7: 1}
	f.Merge(g)
	t.Equal(Frequencies{2: 1, 5: 3, 7: 1}, f)
	t.True(f.Equals(Frequencies{2: 1, 5: 3, 7: 1}))
	t.False(f.Equals(g))
	t.False(f.Equals(Frequencies{2: 1, 5: 3, 8: 1}))
}

func TestFind(x *testing.T) {
	t := assert.New(x)
	c := NewCounter(3)
	net := fan(x)
	ffl := identify(x, c, 3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	outFan := identify(x, c, 3, [][2]int{{0, 1}, {0, 2}})
	found := make(map[Id]int)
	err := c.Find(net, []Id{ffl}, func(id Id, nodes []int) error {
		found[id]++
		sorted := append([]int(nil), nodes...)
		sort.Ints(sorted)
		t.Equal(0, sorted[0])
		t.Equal(11, sorted[2])
		return nil
	})
	t.Nil(err)
	t.Equal(map[Id]int{ffl: 10}, found)

	found = make(map[Id]int)
	t.Nil(c.Find(net, []Id{ffl, outFan}, func(id Id, nodes []int) error {
		found[id]++
		return nil
	}))
	t.Equal(map[Id]int{ffl: 10, outFan: 45}, found)

	t.Equal(errTest("stop"), c.Find(net, []Id{ffl}, func(Id, []int) error {
		return errTest("stop")
	}))
	t.NotNil((&Counter{K: 0}).Find(net, []Id{ffl}, func(Id, []int) error { return nil }))
}
