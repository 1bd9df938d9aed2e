package motif

import (
	"sort"
)

// Frequencies counts occurrences per motif Id.
type Frequencies map[Id]int

func NewFrequencies() Frequencies {
	return make(Frequencies)
}

func (f Frequencies) Add(id Id) {
	f[id]++
}

func (f Frequencies) Count(id Id) int {
	return f[id]
}

// Ids in ascending order.
func (f Frequencies) Ids() []Id {
	ids := make([]Id, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total number of subsets counted.
func (f Frequencies) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

func (f Frequencies) Merge(other Frequencies) {
	for id, c := range other {
		f[id] += c
	}
}

func (f Frequencies) Equals(other Frequencies) bool {
	if len(f) != len(other) {
		return false
	}
	for id, c := range f {
		if other[id] != c {
			return false
		}
	}
	return true
}
