package network

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Weight is the kind of an edge. 0 means "no edge" and is never stored.
type Weight uint8

type Node struct {
	Idx   int
	Label string
}

type Edge struct {
	Src, Targ int
	Weight    Weight
}

// Network is a directed multigraph with densely indexed nodes. Node labels
// are for display only. Once built a Network is not mutated: Subnet always
// returns an independent copy with freshly assigned indices.
type Network struct {
	V       []Node
	E       []Edge
	Kids    [][]int // edge indices by source
	Parents [][]int // edge indices by target
}

func New(V, E int) *Network {
	return &Network{
		V:       make([]Node, 0, V),
		E:       make([]Edge, 0, E),
		Kids:    make([][]int, 0, V),
		Parents: make([][]int, 0, V),
	}
}

// FromMatrix builds an n node network from a weight function over ordered
// pairs. Node i is labeled i+1. Pairs of weight 0 are not edges.
func FromMatrix(n int, weight func(i, j int) Weight) (*Network, error) {
	if n < 0 {
		return nil, errors.Errorf("negative node count %v", n)
	}
	net := New(n, n*2)
	for i := 0; i < n; i++ {
		net.AddNode(fmt.Sprintf("%d", i+1))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if w := weight(i, j); w != 0 {
				net.addEdge(Edge{Src: i, Targ: j, Weight: w})
			}
		}
	}
	return net, nil
}

func (n *Network) AddNode(label string) int {
	idx := len(n.V)
	n.V = append(n.V, Node{Idx: idx, Label: label})
	n.Kids = append(n.Kids, make([]int, 0, 5))
	n.Parents = append(n.Parents, make([]int, 0, 5))
	return idx
}

func (n *Network) AddEdge(src, targ int, w Weight) error {
	if !n.has(src) {
		return errors.Errorf("unknown src %v (order %v)", src, len(n.V))
	} else if !n.has(targ) {
		return errors.Errorf("unknown targ %v (order %v)", targ, len(n.V))
	} else if w == 0 {
		return errors.Errorf("edge %v->%v has weight 0", src, targ)
	} else if n.HasEdge(src, targ) {
		return errors.Errorf("duplicate edge %v->%v", src, targ)
	}
	n.addEdge(Edge{Src: src, Targ: targ, Weight: w})
	return nil
}

func (n *Network) addEdge(e Edge) {
	idx := len(n.E)
	n.E = append(n.E, e)
	n.Kids[e.Src] = append(n.Kids[e.Src], idx)
	n.Parents[e.Targ] = append(n.Parents[e.Targ], idx)
}

func (n *Network) has(idx int) bool {
	return idx >= 0 && idx < len(n.V)
}

func (n *Network) Node(idx int) Node {
	return n.V[idx]
}

// Edges lists the edges in the order they were added. The slice is shared
// with the network.
func (n *Network) Edges() []Edge {
	return n.E
}

// Order is the number of nodes.
func (n *Network) Order() int {
	return len(n.V)
}

// Size is the number of edges.
func (n *Network) Size() int {
	return len(n.E)
}

// Weight of the src->targ edge, 0 when there is none.
func (n *Network) Weight(src, targ int) Weight {
	for _, e := range n.Kids[src] {
		if n.E[e].Targ == targ {
			return n.E[e].Weight
		}
	}
	return 0
}

func (n *Network) HasEdge(src, targ int) bool {
	return n.Weight(src, targ) != 0
}

// Neighbors are the targets of v's outgoing edges, ascending.
func (n *Network) Neighbors(v int) []int {
	seen := make(map[int]bool, len(n.Kids[v]))
	for _, e := range n.Kids[v] {
		seen[n.E[e].Targ] = true
	}
	return sortedKeys(seen)
}

// UndirectedNeighbors are the nodes joined to v by an edge in either
// direction, ascending. v itself is never included: a self loop does not
// connect anything.
func (n *Network) UndirectedNeighbors(v int) []int {
	seen := make(map[int]bool, len(n.Kids[v])+len(n.Parents[v]))
	for _, e := range n.Kids[v] {
		seen[n.E[e].Targ] = true
	}
	for _, e := range n.Parents[v] {
		seen[n.E[e].Src] = true
	}
	delete(seen, v)
	return sortedKeys(seen)
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Subnet is the subnetwork induced by nodes. The i'th entry of nodes becomes
// node i of the result. Edges are ordered by (Src, Targ, Weight) so that two
// subnets with the same structure have identical edge lists.
func (n *Network) Subnet(nodes []int) (*Network, error) {
	pos := make(map[int]int, len(nodes))
	for i, u := range nodes {
		if !n.has(u) {
			return nil, errors.Errorf("node %v out of range [0, %v)", u, len(n.V))
		} else if _, has := pos[u]; has {
			return nil, errors.Errorf("node %v appears twice in %v", u, nodes)
		}
		pos[u] = i
	}
	edges := make([]Edge, 0, len(nodes)*2)
	for _, u := range nodes {
		for _, e := range n.Kids[u] {
			edge := &n.E[e]
			src, has := pos[edge.Src]
			if !has {
				panic(errors.Errorf("edge %v of %v has a source outside of %v", edge, u, nodes))
			}
			targ, has := pos[edge.Targ]
			if !has {
				continue
			}
			edges = append(edges, Edge{Src: src, Targ: targ, Weight: edge.Weight})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := &edges[i], &edges[j]
		if a.Src != b.Src {
			return a.Src < b.Src
		} else if a.Targ != b.Targ {
			return a.Targ < b.Targ
		}
		return a.Weight < b.Weight
	})
	sub := New(len(nodes), len(edges))
	for _, u := range nodes {
		sub.AddNode(n.V[u].Label)
	}
	for _, e := range edges {
		sub.addEdge(e)
	}
	return sub, nil
}

// Connected reports whether the nodes (a subset of n) induce a connected
// subnetwork when edge direction is ignored.
func (n *Network) Connected(nodes []int) bool {
	if len(nodes) == 0 {
		return true
	}
	member := make(map[int]bool, len(nodes))
	for _, u := range nodes {
		member[u] = true
	}
	seen := map[int]bool{nodes[0]: true}
	stack := []int{nodes[0]}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range n.UndirectedNeighbors(u) {
			if member[v] && !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}
	return len(seen) == len(member)
}

// Interesting is true for networks with more adjacencies than a tree on the
// same nodes, ie. the ones that close at least one cycle (ignoring direction).
func (n *Network) Interesting() bool {
	total := 0
	for i := range n.V {
		total += len(n.UndirectedNeighbors(i))
	}
	return total > 2*(len(n.V)-1)
}

func (n *Network) String() string {
	V := make([]string, 0, len(n.V))
	E := make([]string, 0, len(n.E))
	for _, v := range n.V {
		V = append(V, fmt.Sprintf("(%v:%v)", v.Idx, v.Label))
	}
	for _, e := range n.E {
		E = append(E, fmt.Sprintf("[%v->%v:%v]", e.Src, e.Targ, e.Weight))
	}
	return fmt.Sprintf("{%v:%v}%v%v", len(n.E), len(n.V), strings.Join(V, ""), strings.Join(E, ""))
}
