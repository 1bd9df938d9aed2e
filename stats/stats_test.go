package stats

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math"
	"sort"
)

func TestSample(x *testing.T) {
	t := assert.New(x)
	for i := 0; i < 20; i++ {
		s := Sample(5, 10)
		t.Equal(5, len(s))
		seen := make(map[int]bool)
		for _, j := range s {
			t.True(j >= 0 && j < 10)
			t.False(seen[j])
			seen[j] = true
		}
	}
	t.Equal(3, len(Sample(5, 3)))
	perm := RandomPermutation(6)
	sort.Ints(perm)
	t.Equal(Srange(6), perm)
}

func TestSummary(x *testing.T) {
	t := assert.New(x)
	list := Floats([]int{2, 4, 4, 4, 5, 5, 7, 9})
	t.Equal(5.0, Mean(list))
	t.Equal(2.0, StdDev(list))
	t.Equal(1.5, ZScore(8, list))
	t.Equal(0.0, Mean(nil))
	t.Equal(0.0, StdDev(nil))
	t.True(math.IsInf(ZScore(3, []float64{1, 1}), 1))
	t.True(math.IsInf(ZScore(0, []float64{1, 1}), -1))
	t.Equal(0.0, ZScore(1, []float64{1, 1}))
	t.Equal(1.23, Round(1.2345, 2))
	t.Equal(-1.13, Round(-1.126, 2))
}
