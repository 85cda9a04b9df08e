package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs submitted jobs on a fixed set of goroutines.
//
// Jobs are pulled from one buffered queue in submission order. Pool is
// safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// mu orders Submit against Close so no job is queued after the
	// workers have drained.
	mu      sync.RWMutex
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case fn := <-p.queue:
			fn()
		case <-p.done:
			// Finish what was accepted before Close.
			for {
				select {
				case fn := <-p.queue:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Submit queues fn. It blocks while the queue is full and reports false
// without running fn once the pool is closed.
func (p *Pool) Submit(fn func()) bool {
	if fn == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return false
	}
	p.queue <- fn
	return true
}

// Close stops accepting work, runs every queued job and waits for the
// workers to exit. Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	closing := p.running.CompareAndSwap(true, false)
	p.mu.Unlock()
	if !closing {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Running reports whether the pool accepts work.
func (p *Pool) Running() bool { return p.running.Load() }
