package canon

import (
	"sort"
)

// refine splits cells until the partition is equitable: every two vertices
// of a cell have, for each cell and each color, the same number of out arcs
// into it and in arcs from it. Split cells are ordered by those counts so the
// result depends only on the structure of the graph and the input partition.
func (m *Map) refine(cells [][]int) [][]int {
	cellOf := make([]int, m.n)
	for {
		for c, cell := range cells {
			for _, v := range cell {
				cellOf[v] = c
			}
		}
		next := make([][]int, 0, m.n)
		split := false
		for _, cell := range cells {
			if len(cell) == 1 {
				next = append(next, cell)
				continue
			}
			sigs := make(map[int][]int, len(cell))
			for _, v := range cell {
				sigs[v] = m.signature(v, cellOf, len(cells))
			}
			sorted := make([]int, len(cell))
			copy(sorted, cell)
			sort.SliceStable(sorted, func(i, j int) bool {
				return compareInts(sigs[sorted[i]], sigs[sorted[j]]) < 0
			})
			start := 0
			for i := 1; i <= len(sorted); i++ {
				if i == len(sorted) || compareInts(sigs[sorted[i-1]], sigs[sorted[i]]) != 0 {
					next = append(next, sorted[start:i])
					start = i
				}
			}
			if len(next) > 0 && len(next[len(next)-1]) < len(cell) {
				split = true
			}
		}
		cells = next
		if !split {
			return cells
		}
	}
}

func (m *Map) signature(v int, cellOf []int, cells int) []int {
	colors := len(m.colorIdx)
	sig := make([]int, 2*cells*colors)
	for u := 0; u < m.n; u++ {
		if c := m.adj[v*m.n+u]; c != 0 {
			sig[2*(cellOf[u]*colors+m.colorIdx[c])]++
		}
		if c := m.adj[u*m.n+v]; c != 0 {
			sig[2*(cellOf[u]*colors+m.colorIdx[c])+1]++
		}
	}
	return sig
}
