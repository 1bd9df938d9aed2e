package ensemble

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/stores/id_tally"
	"github.com/timtadh/motifs/types/network"
)

// Source produces one ensemble member. It is called at most once.
type Source func() (*network.Network, error)

func Networks(nets ...*network.Network) []Source {
	sources := make([]Source, 0, len(nets))
	for _, net := range nets {
		net := net
		sources = append(sources, func() (*network.Network, error) {
			return net, nil
		})
	}
	return sources
}

type Runner struct {
	Config  *config.Config
	Counter *motif.Counter
}

func NewRunner(conf *config.Config, counter *motif.Counter) *Runner {
	return &Runner{
		Config:  conf,
		Counter: counter,
	}
}

// Run counts the motifs of original and of every ensemble member and
// assembles the comparison once all of them are done. Members are counted in
// parallel on Config.Workers() goroutines, which share the Counter's workers
// between them. A member that fails aborts the run
// unless Config.SkipFailed is set, in which case it is left out of the report.
func (r *Runner) Run(original *network.Network, ensemble []Source) (*Report, error) {
	if err := r.Counter.Check(); err != nil {
		return nil, err
	}
	tallies, err := r.Config.IdTallyMultiMap("ensemble-tallies")
	if err != nil {
		return nil, err
	}
	defer tallies.Delete()

	freqs, err := r.Counter.Count(original)
	if err != nil {
		return nil, errors.Errorf("counting the original network failed: %v", err)
	}
	if err := store(tallies, 0, freqs); err != nil {
		return nil, err
	}
	errors.Logf("INFO", "original network: %v motifs of size %v in %v subsets", len(freqs), r.Counter.K, freqs.Total())

	var mutex sync.Mutex
	failed := make(map[int]error)
	done := 0
	counter := r.memberCounter()
	pool := newWorkers(r.Config.Workers())
	for i, src := range ensemble {
		i, src := i, src
		pool.Do(func() {
			err := member(counter, tallies, int32(i+1), src)
			mutex.Lock()
			defer mutex.Unlock()
			done++
			if err != nil {
				failed[i] = err
				errors.Logf("ERROR", "ensemble member %v failed: %v", i+1, err)
			} else if done%10 == 0 || done == len(ensemble) {
				errors.Logf("INFO", "counted %v/%v ensemble members", done, len(ensemble))
			}
		})
	}
	pool.Stop()

	if len(failed) > 0 && !r.Config.SkipFailed {
		var e *errors.Error
		for i := range ensemble {
			if err, has := failed[i]; !has {
				continue
			} else if e == nil {
				e = errors.Errorf("%v of %v ensemble members failed, member %v: %v", len(failed), len(ensemble), i+1, err).(*errors.Error)
			} else {
				e.Chain(err)
			}
		}
		return nil, e
	}
	columns := make(map[int32]int, len(ensemble))
	for i := range ensemble {
		if _, has := failed[i]; !has {
			columns[int32(i+1)] = len(columns)
		}
	}
	return assemble(r.Counter.K, tallies, columns)
}

// memberCounter is the Counter used for ensemble members. Each of the
// Config.Workers() members counted at once gets an equal share of
// Counter.Workers, and at least one.
func (r *Runner) memberCounter() *motif.Counter {
	c := *r.Counter
	if c.Workers > 1 {
		c.Workers /= r.Config.Workers()
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return &c
}

func member(counter *motif.Counter, tallies id_tally.MultiMap, net int32, src Source) error {
	g, err := src()
	if err != nil {
		return err
	}
	freqs, err := counter.Count(g)
	if err != nil {
		return err
	}
	return store(tallies, net, freqs)
}

func store(tallies id_tally.MultiMap, net int32, freqs motif.Frequencies) error {
	for _, id := range freqs.Ids() {
		err := tallies.Add(uint64(id), id_tally.Tally{Net: net, Count: int32(freqs.Count(id))})
		if err != nil {
			return err
		}
	}
	return nil
}

// assemble walks the tallies in id order building one row per id seen in the
// original (net 0). Tallies of nets without a column are ignored.
func assemble(k int, tallies id_tally.MultiMap, columns map[int32]int) (*Report, error) {
	report := &Report{
		K:        k,
		Networks: len(columns),
		Rows:     make([]Row, 0, 100),
	}
	errors.Logf("DEBUG", "assembling %v tallies into %v columns", tallies.Size(), len(columns))
	var cur *Row
	inOriginal := false
	flush := func() {
		if cur != nil && inOriginal {
			report.Rows = append(report.Rows, *cur)
		}
		cur = nil
		inOriginal = false
	}
	err := tallies.DoIterate(func(id uint64, t id_tally.Tally) error {
		if cur == nil || uint64(cur.Id) != id {
			flush()
			cur = &Row{Id: motif.Id(id), Ensemble: make([]int, len(columns))}
		}
		if t.Net == 0 {
			cur.Original = int(t.Count)
			inOriginal = true
		} else if col, has := columns[t.Net]; has {
			cur.Ensemble[col] = int(t.Count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	flush()
	return report, nil
}
