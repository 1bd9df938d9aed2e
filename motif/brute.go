package motif

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/types/network"
)

// BruteForce tries every k node subset and keeps the connected ones. It is
// only practical for small networks and serves as a reference.
type BruteForce struct{}

func (b BruteForce) Enumerate(net *network.Network, k int, visit func(nodes []int) error) error {
	if k < 1 {
		return errors.Errorf("subset size %v is less than 1", k)
	}
	n := net.Order()
	if k > n {
		return nil
	}
	comb := make([]int, k)
	for i := range comb {
		comb[i] = i
	}
	for {
		if net.Connected(comb) {
			nodes := make([]int, k)
			copy(nodes, comb)
			if err := visit(nodes); err != nil {
				return err
			}
		}
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}
