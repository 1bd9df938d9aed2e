package motif

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/canon"
	"github.com/timtadh/motifs/types/network"
)

// Counter tallies the canonical motifs of the k node connected subsets of a
// network. Zero fields take defaults: canon.Labeler, DefaultBase, Extension
// and one worker.
type Counter struct {
	K          int
	Labeler    Labeler
	Encoding   Encoding
	Enumerator Enumerator
	Workers    int
}

func NewCounter(k int) *Counter {
	return &Counter{
		K:          k,
		Labeler:    canon.Labeler{},
		Encoding:   Encoding{Base: DefaultBase},
		Enumerator: Extension{},
		Workers:    1,
	}
}

func (c *Counter) labeler() Labeler {
	if c.Labeler == nil {
		return canon.Labeler{}
	}
	return c.Labeler
}

func (c *Counter) enumerator() Enumerator {
	if c.Enumerator == nil {
		return Extension{}
	}
	return c.Enumerator
}

// Check validates the configuration before any counting is done.
func (c *Counter) Check() error {
	if err := c.Encoding.valid(); err != nil {
		return err
	}
	if c.K < 1 {
		return errors.Errorf("motif size %v is less than 1", c.K)
	} else if c.K > c.Encoding.MaxNodes() {
		return errors.Errorf("motif size %v exceeds %v, the most nodes base %v ids can hold", c.K, c.Encoding.MaxNodes(), c.Encoding.base())
	} else if c.K > canon.MAXN {
		return errors.Errorf("motif size %v exceeds the labeler limit %v", c.K, canon.MAXN)
	}
	return nil
}

// Identify gives the motif Id of the subnetwork induced by nodes.
func (c *Counter) Identify(net *network.Network, nodes []int) (Id, error) {
	sub, err := net.Subnet(nodes)
	if err != nil {
		return 0, err
	}
	canonical, err := Canonicalize(sub, c.labeler())
	if err != nil {
		return 0, err
	}
	return c.Encoding.Encode(canonical)
}

func (c *Counter) Count(net *network.Network) (Frequencies, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	if ext, ok := c.enumerator().(Extension); ok && c.Workers > 1 {
		return c.countRoots(net, ext)
	}
	freqs := NewFrequencies()
	err := c.enumerator().Enumerate(net, c.K, func(nodes []int) error {
		id, err := c.Identify(net, nodes)
		if err != nil {
			return err
		}
		freqs.Add(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return freqs, nil
}

// countRoots splits the roots of the extension search over the workers.
// Each worker fills its own table and the tables are merged at the end.
func (c *Counter) countRoots(net *network.Network, ext Extension) (Frequencies, error) {
	roots := make(chan int)
	go func() {
		for v := 0; v < net.Order(); v++ {
			roots <- v
		}
		close(roots)
	}()
	partials := make([]Frequencies, c.Workers)
	errs := make([]error, c.Workers)
	var wg sync.WaitGroup
	wg.Add(c.Workers)
	for x := 0; x < c.Workers; x++ {
		go func(tid int) {
			defer wg.Done()
			freqs := NewFrequencies()
			partials[tid] = freqs
			for v := range roots {
				if errs[tid] != nil {
					continue
				}
				errs[tid] = ext.ExtendRoot(net, c.K, v, func(nodes []int) error {
					id, err := c.Identify(net, nodes)
					if err != nil {
						return err
					}
					freqs.Add(id)
					return nil
				})
			}
		}(x)
	}
	wg.Wait()
	var failed *errors.Error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if failed == nil {
			failed = errors.Errorf("counting motifs of size %v failed: %v", c.K, err).(*errors.Error)
		} else {
			failed.Chain(err)
		}
	}
	if failed != nil {
		return nil, failed
	}
	freqs := NewFrequencies()
	for _, p := range partials {
		freqs.Merge(p)
	}
	return freqs, nil
}

// Find visits every k node subset of net that is an instance of one of the
// given motifs, with the motif it is an instance of.
func (c *Counter) Find(net *network.Network, ids []Id, visit func(id Id, nodes []int) error) error {
	if err := c.Check(); err != nil {
		return err
	}
	wanted := make(map[Id]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return c.enumerator().Enumerate(net, c.K, func(nodes []int) error {
		id, err := c.Identify(net, nodes)
		if err != nil {
			return err
		} else if !wanted[id] {
			return nil
		}
		return visit(id, nodes)
	})
}
