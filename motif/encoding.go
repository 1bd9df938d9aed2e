package motif

import (
	"math/bits"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/types/network"
)

// Id identifies a canonical motif among the motifs with the same number of
// nodes. Ids of motifs of different sizes are not comparable.
type Id uint64

// DefaultBase admits edge weights 1 through 3.
const DefaultBase = 4

// Encoding maps an n node network onto the number whose base B digit at
// position n*src+targ is the weight of the edge src->targ. The zero value
// uses DefaultBase.
type Encoding struct {
	Base uint64
}

func (e Encoding) base() uint64 {
	if e.Base == 0 {
		return DefaultBase
	}
	return e.Base
}

func (e Encoding) valid() error {
	if e.base() < 2 {
		return errors.Errorf("encoding base %v is less than 2", e.Base)
	} else if e.base() > 256 {
		return errors.Errorf("encoding base %v exceeds the weight range", e.Base)
	}
	return nil
}

// MaxNodes is the largest n for which every n node network has an Id, ie.
// the largest n with B^(n*n) <= 2^64.
func (e Encoding) MaxNodes() int {
	if e.valid() != nil {
		return 0
	}
	n := 0
	for e.fits(n + 1) {
		n++
	}
	return n
}

func (e Encoding) fits(n int) bool {
	B := e.base()
	var p uint64 = 1
	for i := 0; i < n*n; i++ {
		hi, lo := bits.Mul64(p, B)
		if hi != 0 {
			return hi == 1 && lo == 0 && i == n*n-1
		}
		p = lo
	}
	return true
}

func (e Encoding) Encode(net *network.Network) (Id, error) {
	if err := e.valid(); err != nil {
		return 0, err
	}
	B := e.base()
	n := net.Order()
	if !e.fits(n) {
		return 0, errors.Errorf("a %v node network does not fit in a 64 bit id with base %v", n, B)
	}
	digits := make([]uint64, n*n)
	for _, edge := range net.E {
		p := n*edge.Src + edge.Targ
		digits[p] += uint64(edge.Weight)
		if digits[p] >= B {
			return 0, errors.Errorf("weight %v of %v->%v does not fit in base %v", digits[p], edge.Src, edge.Targ, B)
		}
	}
	var id uint64
	for p := len(digits) - 1; p >= 0; p-- {
		id = id*B + digits[p]
	}
	return Id(id), nil
}

// Decode builds the n node network with the given id. Digits above position
// n*n are ignored. Edges come out ordered by (Src, Targ).
func (e Encoding) Decode(n int, id Id) (*network.Network, error) {
	if err := e.valid(); err != nil {
		return nil, err
	}
	B := e.base()
	if n < 0 {
		return nil, errors.Errorf("negative node count %v", n)
	} else if !e.fits(n) {
		return nil, errors.Errorf("a %v node network does not fit in a 64 bit id with base %v", n, B)
	}
	digits := make([]network.Weight, n*n)
	rest := uint64(id)
	for p := range digits {
		digits[p] = network.Weight(rest % B)
		rest /= B
	}
	return network.FromMatrix(n, func(i, j int) network.Weight {
		return digits[i*n+j]
	})
}
