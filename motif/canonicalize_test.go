package motif

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
)

import (
	"github.com/timtadh/motifs/canon"
)

func TestCanonicalizeInvariance(x *testing.T) {
	t := assert.New(x)
	for trial := 0; trial < 20; trial++ {
		net := randomNetwork(x, int64(trial), 5, 9, 3)
		expected, err := Canonicalize(net, canon.Labeler{})
		t.Nil(err)
		permutations(5, func(perm []int) bool {
			permuted, err := net.Subnet(perm)
			t.Nil(err)
			got, err := Canonicalize(permuted, canon.Labeler{})
			t.Nil(err)
			t.Equal(expected.E, got.E)
			return false
		})
	}
}

func TestCanonicalizeRandomPermutations(x *testing.T) {
	t := assert.New(x)
	for trial := 0; trial < 20; trial++ {
		net := randomNetwork(x, int64(100+trial), 12, 30, 2)
		expected, err := Canonicalize(net, canon.Labeler{})
		t.Nil(err)
		for i := 0; i < 10; i++ {
			permuted, err := net.Subnet(rand.Perm(12))
			t.Nil(err)
			got, err := Canonicalize(permuted, canon.Labeler{})
			t.Nil(err)
			t.Equal(expected.E, got.E)
		}
	}
}

func TestCanonicalizeKeepsWeights(x *testing.T) {
	t := assert.New(x)
	a := build(x, 3, nil)
	t.Nil(a.AddEdge(0, 1, 1))
	t.Nil(a.AddEdge(1, 2, 3))
	b := build(x, 3, nil)
	t.Nil(b.AddEdge(2, 0, 1))
	t.Nil(b.AddEdge(0, 1, 3))
	c := build(x, 3, nil)
	t.Nil(c.AddEdge(0, 1, 3))
	t.Nil(c.AddEdge(1, 2, 1))
	ca, err := Canonicalize(a, canon.Labeler{})
	t.Nil(err)
	cb, err := Canonicalize(b, canon.Labeler{})
	t.Nil(err)
	cc, err := Canonicalize(c, canon.Labeler{})
	t.Nil(err)
	t.Equal(ca.E, cb.E)
	t.NotEqual(ca.E, cc.E)
}

func TestCanonicalizeTooLarge(x *testing.T) {
	t := assert.New(x)
	_, err := Canonicalize(build(x, canon.MAXN+1, nil), canon.Labeler{})
	t.Equal(canon.ErrTooLarge, err)
}
