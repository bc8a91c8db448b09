// Package parallel runs row-band work for the adjustment engine on a
// persistent set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines that execute batches of work items.
//
// Each worker has its own queue and steals from the others when idle, so
// a slow band does not hold up the rest of the batch.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool

	// mu is held for reading while a batch is being queued and for
	// writing while Close stops the workers, so no item is queued after
	// the workers have drained their queues.
	mu sync.RWMutex
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

func (p *Pool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *Pool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin across workers and waits for all
// of it to finish. On a closed pool the work runs on the calling goroutine.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))

	for i, fn := range work {
		p.workQueues[i%p.workers] <- func() {
			defer completion.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	completion.Wait()
}

// ForEachBand splits the half-open row range [0, rows) into at most
// Workers()*bandsPerWorker contiguous bands and calls fn(start, end) for
// each of them in parallel. It returns when every band is done.
func (p *Pool) ForEachBand(rows, bandsPerWorker int, fn func(start, end int)) {
	bands := Bands(rows, p.workers*max(bandsPerWorker, 1))
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b.Start, b.End) }
	}
	p.ExecuteAll(work)
}

// Close stops accepting work, waits for queued work and stops the workers.
// A batch that is being queued when Close is called is queued in full and
// runs to completion; later batches run on the caller's goroutine.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
