package ensemble

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io/ioutil"
	"math"
	"os"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/motifs/config"
	"github.com/timtadh/motifs/motif"
	"github.com/timtadh/motifs/types/network"
)

func build(t testing.TB, n int, edges ...[2]int) *network.Network {
	net, err := network.FromMatrix(n, func(i, j int) network.Weight { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range edges {
		if err := net.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatal(err)
		}
	}
	return net
}

func ffl(t testing.TB) *network.Network {
	return build(t, 3, [2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2})
}

func chain(t testing.TB) *network.Network {
	return build(t, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3})
}

func cycle(t testing.TB) *network.Network {
	return build(t, 3, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0})
}

func identify(t testing.TB, c *motif.Counter, net *network.Network) motif.Id {
	id, err := c.Identify(net, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func failing(msg string) Source {
	return func() (*network.Network, error) {
		return nil, errors.Errorf("%v", msg)
	}
}

func TestRun(x *testing.T) {
	t := assert.New(x)
	counter := motif.NewCounter(3)
	r := NewRunner(&config.Config{Parallelism: 3}, counter)
	original := build(x, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2}, [2]int{2, 3})
	report, err := r.Run(original, Networks(ffl(x), chain(x), cycle(x), original))
	t.Nil(err)
	t.Equal(3, report.K)
	t.Equal(4, report.Networks)

	fflId := identify(x, counter, ffl(x))
	chainId := identify(x, counter, chain(x))
	cycleId := identify(x, counter, cycle(x))
	t.Nil(report.Row(cycleId))

	row := report.Row(fflId)
	t.NotNil(row)
	t.Equal(1, row.Original)
	t.Equal([]int{1, 0, 0, 1}, row.Ensemble)
	row = report.Row(chainId)
	t.NotNil(row)
	t.Equal(2, row.Original)
	t.Equal([]int{0, 2, 0, 2}, row.Ensemble)
	t.Equal(1.0, row.Mean())
	t.Equal(1.0, row.StdDev())
	t.Equal(1.0, row.ZScore())
	t.Equal(0.5, row.Above())

	for i := 1; i < len(report.Rows); i++ {
		t.True(report.Rows[i-1].Id < report.Rows[i].Id)
	}
	total := 0
	for _, row := range report.Rows {
		t.Equal(4, len(row.Ensemble))
		total += row.Original
	}
	freqs, err := counter.Count(original)
	t.Nil(err)
	t.Equal(freqs.Total(), total)
}

func TestRunIsDeterministic(x *testing.T) {
	t := assert.New(x)
	original := chain(x)
	members := Networks(ffl(x), chain(x), cycle(x), chain(x), ffl(x))
	serial, err := NewRunner(&config.Config{}, motif.NewCounter(3)).Run(original, members)
	t.Nil(err)
	parallel, err := NewRunner(&config.Config{Parallelism: 4}, motif.NewCounter(3)).Run(original, members)
	t.Nil(err)
	t.Equal(serial, parallel)
}

func TestRunFileBackedTallies(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "motifs-ensemble")
	t.Nil(err)
	defer os.RemoveAll(dir)
	report, err := NewRunner(&config.Config{Cache: dir}, motif.NewCounter(3)).Run(chain(x), Networks(chain(x)))
	t.Nil(err)
	t.Equal(1, len(report.Rows))
	t.Equal([]int{2}, report.Rows[0].Ensemble)
	left, err := ioutil.ReadDir(dir)
	t.Nil(err)
	t.Equal(0, len(left))
}

func TestRunFailures(x *testing.T) {
	t := assert.New(x)
	members := []Source{Networks(ffl(x))[0], failing("bad member"), Networks(cycle(x))[0]}
	_, err := NewRunner(&config.Config{}, motif.NewCounter(3)).Run(ffl(x), members)
	t.NotNil(err)
	t.Contains(err.Error(), "bad member")

	counter := motif.NewCounter(3)
	report, err := NewRunner(&config.Config{SkipFailed: true, Parallelism: 2}, counter).Run(ffl(x), members)
	t.Nil(err)
	t.Equal(2, report.Networks)
	t.Equal(1, len(report.Rows))
	t.Equal([]int{1, 0}, report.Row(identify(x, counter, ffl(x))).Ensemble)

	_, err = NewRunner(&config.Config{SkipFailed: true}, motif.NewCounter(0)).Run(ffl(x), nil)
	t.NotNil(err)
	_, err = NewRunner(&config.Config{SkipFailed: true}, motif.NewCounter(3)).Run(build(x, 3, [2]int{0, 1}), []Source{failing("x")})
	t.Nil(err)
}

func TestSourcesCalledOnce(x *testing.T) {
	t := assert.New(x)
	var mutex sync.Mutex
	calls := make(map[int]int)
	members := make([]Source, 0, 20)
	for i := 0; i < 20; i++ {
		i := i
		members = append(members, func() (*network.Network, error) {
			mutex.Lock()
			calls[i]++
			mutex.Unlock()
			return chain(x), nil
		})
	}
	report, err := NewRunner(&config.Config{Parallelism: 5}, motif.NewCounter(2)).Run(chain(x), members)
	t.Nil(err)
	t.Equal(20, report.Networks)
	t.Equal(20, len(calls))
	for _, c := range calls {
		t.Equal(1, c)
	}
}

func TestMemberCounterSharesWorkers(x *testing.T) {
	t := assert.New(x)
	counter := motif.NewCounter(3)
	counter.Workers = 8
	for _, c := range []struct {
		parallelism int
		workers     int
	}{
		{0, 8},
		{1, 8},
		{2, 4},
		{3, 2},
		{8, 1},
		{16, 1},
	} {
		r := NewRunner(&config.Config{Parallelism: c.parallelism}, counter)
		t.Equal(c.workers, r.memberCounter().Workers, "parallelism %v", c.parallelism)
		t.Equal(8, r.Counter.Workers)
	}
	serial := motif.NewCounter(3)
	serial.Workers = 0
	t.Equal(1, NewRunner(&config.Config{Parallelism: 4}, serial).memberCounter().Workers)

	original := chain(x)
	members := Networks(ffl(x), chain(x), cycle(x), chain(x))
	shared, err := NewRunner(&config.Config{Parallelism: 3}, counter).Run(original, members)
	t.Nil(err)
	plain, err := NewRunner(&config.Config{}, motif.NewCounter(3)).Run(original, members)
	t.Nil(err)
	t.Equal(plain, shared)
}

func TestRowStatistics(x *testing.T) {
	t := assert.New(x)
	row := &Row{Original: 9, Ensemble: []int{2, 4, 4, 4, 5, 5, 7, 9}}
	t.Equal(5.0, row.Mean())
	t.Equal(2.0, row.StdDev())
	t.Equal(2.0, row.ZScore())
	t.Equal(0.125, row.Above())
	empty := &Row{Original: 1}
	t.Equal(0.0, empty.Above())
	t.True(math.IsInf(empty.ZScore(), 1))
}
