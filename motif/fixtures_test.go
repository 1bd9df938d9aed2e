package motif

import "testing"

import (
	"math/rand"
)

import (
	"github.com/timtadh/motifs/types/network"
)

// regulatory is a 16 node network with 5 feed-forward loops, 10 chains, 3
// out-fans and 3 in-fans among its connected 3 node subsets.
var regulatory = [][2]int{
	{2, 12}, {3, 2}, {4, 13}, {5, 9}, {5, 11}, {6, 13}, {7, 0}, {7, 6}, {7, 12},
	{8, 5}, {8, 9}, {8, 11}, {9, 10}, {10, 0}, {11, 1}, {11, 9}, {12, 6},
}

func build(t testing.TB, n int, edges [][2]int) *network.Network {
	net, err := network.FromMatrix(n, func(i, j int) network.Weight { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range edges {
		if err := net.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	return net
}

// fan is a source feeding 10 intermediates which all feed one sink, plus a
// direct edge from the source to the sink.
func fan(t testing.TB) *network.Network {
	edges := [][2]int{{0, 11}}
	for i := 1; i <= 10; i++ {
		edges = append(edges, [2]int{0, i}, [2]int{i, 11})
	}
	return build(t, 12, edges)
}

// randomNetwork has E distinct edges (fewer when V*V < E) drawn from a
// generator seeded with seed.
func randomNetwork(t testing.TB, seed int64, V, E int, weights int) *network.Network {
	net, err := network.FromMatrix(V, func(i, j int) network.Weight { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	for net.Size() < E && net.Size() < V*V {
		src, targ := rng.Intn(V), rng.Intn(V)
		if net.HasEdge(src, targ) {
			continue
		}
		w := network.Weight(rng.Intn(weights) + 1)
		if err := net.AddEdge(src, targ, w); err != nil {
			t.Fatal(err)
		}
	}
	return net
}

// permutations calls do with every permutation of [0, size), in lexicographic
// order, until do returns true.
func permutations(size int, do func(perm []int) bool) {
	perm := make([]int, 0, size)
	used := make([]bool, size)
	var next func() bool
	next = func() bool {
		if len(perm) == size {
			return do(append([]int(nil), perm...))
		}
		for v := 0; v < size; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			perm = append(perm, v)
			stop := next()
			perm = perm[:len(perm)-1]
			used[v] = false
			if stop {
				return true
			}
		}
		return false
	}
	next()
}
