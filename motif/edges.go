package motif

import (
	"encoding/binary"
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/motifs/types/network"
)

// EdgeGrowth seeds a subset from every edge and grows it one undirected
// neighbor at a time. Every subset reached is recorded in a ledger that lives
// for one Enumerate call, and a subset already in the ledger is not grown
// again. Only subsets of at least two nodes can be reached this way.
type EdgeGrowth struct{}

type ledger struct {
	seen *hashtable.LinearHash
}

func newLedger() *ledger {
	return &ledger{seen: hashtable.NewLinearHash()}
}

func subsetKey(nodes []int) types.ByteSlice {
	sorted := make([]int, len(nodes))
	copy(sorted, nodes)
	sort.Ints(sorted)
	key := make([]byte, 4*len(sorted))
	for i, u := range sorted {
		binary.BigEndian.PutUint32(key[4*i:], uint32(u))
	}
	return types.ByteSlice(key)
}

// mark records nodes and reports whether they were new.
func (l *ledger) mark(nodes []int) (bool, error) {
	key := subsetKey(nodes)
	if l.seen.Has(key) {
		return false, nil
	}
	return true, l.seen.Put(key, nil)
}

func (g EdgeGrowth) Enumerate(net *network.Network, k int, visit func(nodes []int) error) error {
	if k < 2 {
		return errors.Errorf("edge growth needs subsets of at least 2 nodes, got %v", k)
	}
	l := newLedger()
	for _, e := range net.E {
		seed := []int{e.Src}
		if e.Targ != e.Src {
			seed = append(seed, e.Targ)
		}
		if fresh, err := l.mark(seed); err != nil {
			return err
		} else if !fresh {
			continue
		}
		if err := g.grow(net, k, seed, l, visit); err != nil {
			return err
		}
	}
	return nil
}

func (g EdgeGrowth) grow(net *network.Network, k int, sub []int, l *ledger, visit func([]int) error) error {
	if len(sub) == k {
		nodes := make([]int, len(sub))
		copy(nodes, sub)
		sort.Ints(nodes)
		return visit(nodes)
	}
	member := make(map[int]bool, len(sub))
	for _, u := range sub {
		member[u] = true
	}
	for _, u := range sub {
		for _, v := range net.UndirectedNeighbors(u) {
			if member[v] {
				continue
			}
			next := append(sub[:len(sub):len(sub)], v)
			if fresh, err := l.mark(next); err != nil {
				return err
			} else if !fresh {
				continue
			}
			if err := g.grow(net, k, next, l, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
