// Package parallel splits per-frame pixel passes across goroutines.
//
// A frame is an independent run of pixels, so a pass can be cut into
// contiguous ranges and each range handed to a worker. The only ordering
// guarantee is that Run returns after every range has been processed.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MinChunk is the smallest range worth handing to a worker. Shorter frames
// are processed on the calling goroutine.
const MinChunk = 256

// WorkerPool is a fixed set of goroutines that execute pixel-range work.
//
// Each worker has its own queue and steals from the others when idle, which
// keeps all workers busy when ranges finish at different times.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	sendMu     sync.RWMutex // held shared while dispatching, exclusively by Close
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
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

func (p *WorkerPool) worker(id int) {
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

func (p *WorkerPool) drainQueue(queue chan func()) {
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
func (p *WorkerPool) steal(myID int) func() {
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

// ExecuteAll distributes work across workers and waits for all of it.
// On a closed pool the items run on the calling goroutine.
//
// Close cannot complete while items are being queued, so every queued item
// is either run by a worker or drained before the workers exit.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))

	p.sendMu.RLock()
	closed := !p.running.Load()
	for i, fn := range work {
		wrapped := func() {
			defer completion.Done()
			fn()
		}
		if closed {
			wrapped()
			continue
		}
		p.workQueues[i%p.workers] <- wrapped
	}
	p.sendMu.RUnlock()

	completion.Wait()
}

// Run calls fn over [0,n) split into contiguous ranges, one or more per
// worker, and returns when every range is done.
//
// A nil pool, a single-worker pool, or n below 2*MinChunk runs fn(0, n)
// directly.
func (p *WorkerPool) Run(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.workers < 2 || n < 2*MinChunk {
		fn(0, n)
		return
	}

	ranges := Split(n, p.workers, MinChunk)
	work := make([]func(), len(ranges))
	for i, r := range ranges {
		work[i] = func() { fn(r[0], r[1]) }
	}
	p.ExecuteAll(work)
}

// Split cuts [0,n) into at most parts contiguous ranges of at least
// minChunk elements (except when n itself is smaller). The ranges cover
// [0,n) exactly, in order.
func Split(n, parts, minChunk int) [][2]int {
	if n <= 0 {
		return nil
	}
	parts = max(parts, 1)
	minChunk = max(minChunk, 1)
	if maxParts := n / minChunk; parts > maxParts {
		parts = max(maxParts, 1)
	}

	ranges := make([][2]int, parts)
	size, extra := n/parts, n%parts
	lo := 0
	for i := range parts {
		hi := lo + size
		if i < extra {
			hi++
		}
		ranges[i] = [2]int{lo, hi}
		lo = hi
	}
	return ranges
}

// Close stops the workers after draining queued work.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.sendMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.sendMu.Unlock()
		return
	}
	close(p.done)
	p.sendMu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still dispatches to workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
