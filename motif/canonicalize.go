package motif

import (
	"github.com/timtadh/motifs/canon"
	"github.com/timtadh/motifs/types/network"
)

// Labeler computes a canonical labeling of an n node graph given its arcs.
// lab[i] is the node placed at canonical position i.
type Labeler interface {
	CanonicalLabeling(n int, arcs []canon.Arc) ([]int, error)
}

// Canonicalize reorders the nodes of net into canonical order. Isomorphic
// networks (with edge weights preserved) come back with identical edge lists.
func Canonicalize(net *network.Network, labeler Labeler) (*network.Network, error) {
	arcs := make([]canon.Arc, 0, net.Size())
	for _, e := range net.Edges() {
		arcs = append(arcs, canon.Arc{Src: e.Src, Targ: e.Targ, Color: uint8(e.Weight)})
	}
	lab, err := labeler.CanonicalLabeling(net.Order(), arcs)
	if err != nil {
		return nil, err
	}
	return net.Subnet(lab)
}
