package ensemble

import (
	"math/rand"
	"sync"
)

// workers runs submitted functions on a fixed set of goroutines. Stop waits
// for everything submitted before it to finish.
type workers struct {
	workers []*worker
	wg      sync.WaitGroup
}

func newWorkers(n int) *workers {
	if n < 1 {
		n = 1
	}
	wkrs := &workers{
		workers: make([]*worker, 0, n),
	}
	wkrs.wg.Add(n)
	for i := 0; i < n; i++ {
		w := &worker{
			in: make(chan func()),
			wg: &wkrs.wg,
		}
		go w.work()
		wkrs.workers = append(wkrs.workers, w)
	}
	return wkrs
}

func (w *workers) Stop() {
	workers := w.workers
	w.workers = nil
	for _, wrkr := range workers {
		close(wrkr.in)
	}
	w.wg.Wait()
}

// Do hands f to the first idle worker, starting the search at a random
// worker. When all are busy it waits on that first one.
func (w *workers) Do(f func()) {
	workers := w.workers
	offset := rand.Intn(len(workers))
	for i := 0; i < len(workers); i++ {
		j := (offset + i) % len(workers)
		select {
		case workers[j].in <- f:
			return
		default:
		}
	}
	workers[offset].in <- f
}

type worker struct {
	in chan func()
	wg *sync.WaitGroup
}

func (w *worker) work() {
	defer w.wg.Done()
	for f := range w.in {
		f()
	}
}
