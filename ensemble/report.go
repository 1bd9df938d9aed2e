package ensemble

import (
	"sort"
)

import (
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/stats"
)

// Report compares the motif frequencies of an original network against the
// members of an ensemble. Rows are ordered by ascending Id and only cover
// motifs that occur in the original.
type Report struct {
	K        int
	Networks int
	Rows     []Row
}

type Row struct {
	Id       motif.Id
	Original int
	Ensemble []int
}

func (r *Row) Mean() float64 {
	return stats.Mean(stats.Floats(r.Ensemble))
}

func (r *Row) StdDev() float64 {
	return stats.StdDev(stats.Floats(r.Ensemble))
}

// ZScore is the distance of the original count from the ensemble mean in
// ensemble standard deviations.
func (r *Row) ZScore() float64 {
	return stats.ZScore(float64(r.Original), stats.Floats(r.Ensemble))
}

// Above is the fraction of ensemble members in which the motif occurs at
// least as often as in the original.
func (r *Row) Above() float64 {
	if len(r.Ensemble) == 0 {
		return 0
	}
	above := 0
	for _, c := range r.Ensemble {
		if c >= r.Original {
			above++
		}
	}
	return float64(above) / float64(len(r.Ensemble))
}

// Row finds the row of id, nil when the original has no such motif.
func (r *Report) Row(id motif.Id) *Row {
	i := sort.Search(len(r.Rows), func(i int) bool { return r.Rows[i].Id >= id })
	if i < len(r.Rows) && r.Rows[i].Id == id {
		return &r.Rows[i]
	}
	return nil
}
