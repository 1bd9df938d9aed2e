// Package canon computes canonical labelings of small directed graphs whose
// arcs carry colors. Two graphs get the same canonical labeling (up to
// relabeling) exactly when they are isomorphic with colors preserved.
//
// The search is the usual individualization/refinement tree. Every node of the
// tree is an ordered partition of the vertices made equitable by refinement.
// Its children individualize each vertex of the first smallest non-singleton
// cell. Leaves are discrete partitions, ie. orderings of the vertices, and the
// canonical ordering is the leaf with the least (trace, certificate). Subtrees
// whose trace already compares greater than the best leaf are skipped, as are
// children that lie in the same orbit as an explored sibling under the
// automorphisms found so far.
package canon

import (
	"bytes"
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// MAXN is the largest graph the labeler accepts.
const MAXN = 32

var ErrTooLarge = errors.Errorf("canon: graphs are limited to %v vertices", MAXN)

type Arc struct {
	Src, Targ int
	Color     uint8
}

// Map is a graph prepared for canonical labeling. Parallel arcs are merged
// by summing their colors.
type Map struct {
	n        int
	adj      []uint8
	colorIdx map[uint8]int
	lab      []int
	cert     []byte
	auts     [][]int
}

func NewMap(V int, arcs []Arc) (*Map, error) {
	if V < 0 {
		return nil, errors.Errorf("canon: negative vertex count %v", V)
	} else if V > MAXN {
		return nil, ErrTooLarge
	}
	sums := make([]int, V*V)
	for _, a := range arcs {
		if a.Src < 0 || a.Src >= V || a.Targ < 0 || a.Targ >= V {
			return nil, errors.Errorf("canon: arc %v out of range for %v vertices", a, V)
		} else if a.Color == 0 {
			return nil, errors.Errorf("canon: arc %v has color 0", a)
		}
		sums[a.Src*V+a.Targ] += int(a.Color)
	}
	m := &Map{
		n:        V,
		adj:      make([]uint8, V*V),
		colorIdx: make(map[uint8]int),
	}
	colors := make([]int, 0, 4)
	for i, s := range sums {
		if s > 255 {
			return nil, errors.Errorf("canon: parallel arcs %v->%v sum to color %v", i/V, i%V, s)
		}
		m.adj[i] = uint8(s)
		if s != 0 {
			if _, has := m.colorIdx[uint8(s)]; !has {
				m.colorIdx[uint8(s)] = 0
				colors = append(colors, s)
			}
		}
	}
	sort.Ints(colors)
	for i, c := range colors {
		m.colorIdx[uint8(c)] = i
	}
	return m, nil
}

func (m *Map) Order() int {
	return m.n
}

// CanonicalLabeling gives lab where lab[i] is the vertex placed at canonical
// position i.
func (m *Map) CanonicalLabeling() []int {
	m.search()
	lab := make([]int, len(m.lab))
	copy(lab, m.lab)
	return lab
}

type leaf struct {
	trace [][]int
	lab   []int
	cert  []byte
}

type searcher struct {
	m    *Map
	best *leaf
	auts [][]int
}

func (m *Map) search() {
	if m.lab != nil {
		return
	}
	s := &searcher{m: m}
	unit := make([]int, m.n)
	for i := range unit {
		unit[i] = i
	}
	var cells [][]int
	if m.n > 0 {
		cells = [][]int{unit}
	}
	s.visit(m.refine(cells), nil, nil)
	if s.best == nil {
		m.lab = []int{}
		m.cert = []byte{}
	} else {
		m.lab = s.best.lab
		m.cert = s.best.cert
	}
	m.auts = s.auts
}

func (s *searcher) visit(cells [][]int, prefix []int, trace [][]int) {
	trace = append(trace[:len(trace):len(trace)], cellSizes(cells))
	if s.best != nil && compareTraces(trace, s.best.trace) > 0 {
		return
	}
	t := targetCell(cells)
	if t < 0 {
		s.leaf(cells, trace)
		return
	}
	children := make([]int, len(cells[t]))
	copy(children, cells[t])
	sort.Ints(children)
	explored := make([]int, 0, len(children))
	for _, v := range children {
		if s.sameOrbit(prefix, explored, v) {
			continue
		}
		explored = append(explored, v)
		next := append(prefix[:len(prefix):len(prefix)], v)
		s.visit(s.m.refine(individualize(cells, t, v)), next, trace)
	}
}

func (s *searcher) leaf(cells [][]int, trace [][]int) {
	lab := make([]int, 0, s.m.n)
	for _, cell := range cells {
		lab = append(lab, cell[0])
	}
	cert := s.m.certificate(lab)
	if s.best == nil {
		s.best = &leaf{trace: trace, lab: lab, cert: cert}
		return
	}
	c := compareTraces(trace, s.best.trace)
	if c == 0 {
		c = bytes.Compare(cert, s.best.cert)
	}
	if c < 0 {
		s.best = &leaf{trace: trace, lab: lab, cert: cert}
	} else if c == 0 {
		aut := make([]int, s.m.n)
		for i, v := range s.best.lab {
			aut[v] = lab[i]
		}
		s.auts = append(s.auts, aut)
	}
}

// sameOrbit reports whether v is in the orbit of an explored vertex under the
// group generated by the known automorphisms fixing prefix pointwise.
func (s *searcher) sameOrbit(prefix, explored []int, v int) bool {
	if len(explored) == 0 || len(s.auts) == 0 {
		return false
	}
	parent := make([]int, s.m.n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
outer:
	for _, aut := range s.auts {
		for _, p := range prefix {
			if aut[p] != p {
				continue outer
			}
		}
		for i, j := range aut {
			a, b := find(i), find(j)
			if a != b {
				parent[a] = b
			}
		}
	}
	root := find(v)
	for _, w := range explored {
		if find(w) == root {
			return true
		}
	}
	return false
}

func (m *Map) certificate(lab []int) []byte {
	cert := make([]byte, m.n*m.n)
	for i, u := range lab {
		for j, v := range lab {
			cert[i*m.n+j] = m.adj[u*m.n+v]
		}
	}
	return cert
}

func targetCell(cells [][]int) int {
	t := -1
	for i, cell := range cells {
		if len(cell) > 1 && (t < 0 || len(cell) < len(cells[t])) {
			t = i
		}
	}
	return t
}

func individualize(cells [][]int, t, v int) [][]int {
	next := make([][]int, 0, len(cells)+1)
	next = append(next, cells[:t]...)
	rest := make([]int, 0, len(cells[t])-1)
	for _, u := range cells[t] {
		if u != v {
			rest = append(rest, u)
		}
	}
	next = append(next, []int{v}, rest)
	next = append(next, cells[t+1:]...)
	return next
}

func cellSizes(cells [][]int) []int {
	sizes := make([]int, len(cells))
	for i, cell := range cells {
		sizes[i] = len(cell)
	}
	return sizes
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	if len(a) < len(b) {
		return -1
	} else if len(a) > len(b) {
		return 1
	}
	return 0
}

// compareTraces compares trace against the prefix of other of the same depth.
func compareTraces(trace, other [][]int) int {
	for i := 0; i < len(trace) && i < len(other); i++ {
		if c := compareInts(trace[i], other[i]); c != 0 {
			return c
		}
	}
	return 0
}
