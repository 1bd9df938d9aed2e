package motif

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/motifs/types/network"
)

// Enumerator visits every connected, node induced k node subset of a network
// exactly once. The slice handed to visit belongs to visit.
type Enumerator interface {
	Enumerate(net *network.Network, k int, visit func(nodes []int) error) error
}

// Extension is the root anchored enumeration (ESU). A subset is only grown
// from its least node, the root, and only by nodes greater than the root that
// are exclusive neighbors of the newest member, so no subset is reached twice.
type Extension struct{}

func (x Extension) Enumerate(net *network.Network, k int, visit func(nodes []int) error) error {
	if k < 1 {
		return errors.Errorf("subset size %v is less than 1", k)
	}
	for v := 0; v < net.Order(); v++ {
		if err := x.ExtendRoot(net, k, v, visit); err != nil {
			return err
		}
	}
	return nil
}

// ExtendRoot visits the subsets whose least node is v.
func (x Extension) ExtendRoot(net *network.Network, k, v int, visit func(nodes []int) error) error {
	if k < 1 {
		return errors.Errorf("subset size %v is less than 1", k)
	}
	ext := set.NewSortedSet(10)
	nbhd := set.NewSortedSet(10)
	if err := nbhd.Add(types.Int(v)); err != nil {
		return err
	}
	for _, u := range net.UndirectedNeighbors(v) {
		if err := nbhd.Add(types.Int(u)); err != nil {
			return err
		}
		if u > v {
			if err := ext.Add(types.Int(u)); err != nil {
				return err
			}
		}
	}
	return extend(net, k, v, []int{v}, ext, nbhd, visit)
}

// extend consumes ext. Each recursive call gets its own copies of the
// extension and of the closed neighborhood of the subset.
func extend(net *network.Network, k, root int, sub []int, ext, nbhd *set.SortedSet, visit func([]int) error) error {
	if len(sub) == k {
		nodes := make([]int, len(sub))
		copy(nodes, sub)
		return visit(nodes)
	}
	for ext.Size() > 0 {
		item, _ := ext.Items()()
		if err := ext.Delete(item); err != nil {
			return err
		}
		w := int(item.(types.Int))
		nextExt := ext.Copy()
		nextNbhd := nbhd.Copy()
		for _, u := range net.UndirectedNeighbors(w) {
			if nbhd.Has(types.Int(u)) {
				continue
			}
			if err := nextNbhd.Add(types.Int(u)); err != nil {
				return err
			}
			if u > root {
				if err := nextExt.Add(types.Int(u)); err != nil {
					return err
				}
			}
		}
		next := append(sub[:len(sub):len(sub)], w)
		if err := extend(net, k, root, next, nextExt, nextNbhd, visit); err != nil {
			return err
		}
	}
	return nil
}
