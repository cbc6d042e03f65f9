// Package worker implements a generic priority task pool backed by
// long-lived goroutines. One worker instance is bound to one goroutine for
// the pool's whole lifetime, so workers may carry per-thread scratch state.
package worker

import (
	"container/heap"
	"runtime"
	"sync"
)

// Worker is a long-lived unit of work execution. Run is called from a single
// goroutine at a time for a given instance.
type Worker[I, O any] interface {
	Run(input I) O
}

// Task pairs an input with its scheduling priority. Higher priorities are
// served first; ties are broken arbitrarily.
type Task[I any] struct {
	Input    I
	Priority int
}

// Pool schedules tasks across a fixed set of workers. Handles are shared by
// pointer; all methods are safe for concurrent use.
type Pool[I, O any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   taskHeap[I]
	stopped bool

	resultsMu sync.Mutex
	results   []O

	serial Worker[I, O]
	wg     sync.WaitGroup
}

// Start spawns one goroutine per worker and returns the pool handle.
func Start[I, O any](workers ...Worker[I, O]) *Pool[I, O] {
	if len(workers) == 0 {
		panic("worker: Start requires at least one worker")
	}
	p := newPool[I, O]()
	for _, w := range workers {
		p.wg.Add(1)
		go p.drain(w)
	}
	return p
}

// StartSerial returns a pool with no background goroutines: each
// FetchResults call executes at most one pending task synchronously on the
// caller's goroutine. This keeps calling code identical on platforms where
// background threads are not worth their cost.
func StartSerial[I, O any](w Worker[I, O]) *Pool[I, O] {
	p := newPool[I, O]()
	p.serial = w
	return p
}

func newPool[I, O any]() *Pool[I, O] {
	p := &Pool[I, O]{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// DefaultWorkerCount sizes a pool from the hardware parallelism: half the
// CPUs, capped at 8. It returns 0 when parallelism is too low to be worth
// background goroutines, in which case callers should use StartSerial.
func DefaultWorkerCount() int {
	n := runtime.NumCPU()
	if n <= 2 {
		return 0
	}
	return min(n/2, 8)
}

// Submit queues one task and wakes a single waiting worker.
func (p *Pool[I, O]) Submit(input I, priority int) {
	p.mu.Lock()
	heap.Push(&p.tasks, Task[I]{Input: input, Priority: priority})
	p.mu.Unlock()
	p.cond.Signal()
}

// SubmitBatch queues several tasks under one lock acquisition and wakes all
// waiting workers.
func (p *Pool[I, O]) SubmitBatch(tasks []Task[I]) {
	p.mu.Lock()
	for _, t := range tasks {
		heap.Push(&p.tasks, t)
	}
	p.mu.Unlock()
	p.cond.Broadcast()
}

// TaskCount returns the number of queued tasks. Tasks already claimed by a
// worker are not counted.
func (p *Pool[I, O]) TaskCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks.Len()
}

// FetchResults drains every completed result without blocking. Results are
// in completion order, not submission order. In serial mode it first runs
// the single highest-priority pending task on the calling goroutine.
func (p *Pool[I, O]) FetchResults() []O {
	if p.serial != nil {
		if input, ok := p.take(); ok {
			p.pushResult(p.serial.Run(input))
		}
	}

	p.resultsMu.Lock()
	out := p.results
	p.results = nil
	p.resultsMu.Unlock()
	return out
}

// Close stops all workers and waits for them to exit. A worker that already
// claimed a task finishes it first; unclaimed tasks are abandoned. The
// result of an in-flight task is still delivered to the next FetchResults.
func (p *Pool[I, O]) Close() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

// take pops the highest-priority task without waiting.
func (p *Pool[I, O]) take() (I, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tasks.Len() == 0 || p.stopped {
		var zero I
		return zero, false
	}
	return heap.Pop(&p.tasks).(Task[I]).Input, true
}

// next blocks until a task is available or the pool is stopped.
func (p *Pool[I, O]) next() (I, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.stopped {
			var zero I
			return zero, false
		}
		if p.tasks.Len() > 0 {
			return heap.Pop(&p.tasks).(Task[I]).Input, true
		}
		p.cond.Wait()
	}
}

func (p *Pool[I, O]) pushResult(out O) {
	p.resultsMu.Lock()
	p.results = append(p.results, out)
	p.resultsMu.Unlock()
}

func (p *Pool[I, O]) drain(w Worker[I, O]) {
	defer p.wg.Done()
	for {
		input, ok := p.next()
		if !ok {
			return
		}
		p.pushResult(w.Run(input))
	}
}

// taskHeap is a max-heap over task priority.
type taskHeap[I any] []Task[I]

func (h taskHeap[I]) Len() int           { return len(h) }
func (h taskHeap[I]) Less(i, j int) bool { return h[i].Priority > h[j].Priority }
func (h taskHeap[I]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *taskHeap[I]) Push(x any)        { *h = append(*h, x.(Task[I])) }
func (h *taskHeap[I]) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
