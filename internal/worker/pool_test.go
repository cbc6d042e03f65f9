package worker

import (
	"sync"
	"testing"
	"time"
)

// funcWorker adapts a function to the Worker interface for tests.
type funcWorker[I, O any] struct {
	f func(I) O
}

func (w funcWorker[I, O]) Run(input I) O { return w.f(input) }

func TestSerialPriorityOrder(t *testing.T) {
	p := StartSerial[int, int](funcWorker[int, int]{f: func(v int) int { return v }})

	p.Submit(1, 1)
	p.Submit(5, 5)
	p.Submit(3, 3)

	var got []int
	for i := 0; i < 3; i++ {
		out := p.FetchResults()
		if len(out) != 1 {
			t.Fatalf("serial FetchResults ran %d tasks, want exactly 1", len(out))
		}
		got = append(got, out[0])
	}
	want := []int{5, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("results %v, want %v", got, want)
		}
	}

	if out := p.FetchResults(); len(out) != 0 {
		t.Fatalf("expected no further results, got %v", out)
	}
}

func TestSingleWorkerPriorityOrder(t *testing.T) {
	gate := make(chan struct{})
	p := Start[int, int](funcWorker[int, int]{f: func(v int) int {
		if v == 0 {
			<-gate
		}
		return v
	}})
	defer p.Close()

	// Block the only worker, then queue the real tasks so they are all
	// pending when the worker comes back for more.
	p.Submit(0, 100)
	p.Submit(1, 1)
	p.Submit(5, 5)
	p.Submit(3, 3)
	close(gate)

	var got []int
	deadline := time.After(5 * time.Second)
	for len(got) < 4 {
		select {
		case <-deadline:
			t.Fatalf("timed out with results %v", got)
		default:
			got = append(got, p.FetchResults()...)
		}
	}

	want := []int{0, 5, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("results %v, want %v", got, want)
		}
	}
}

func TestSubmitBatchAndTaskCount(t *testing.T) {
	p := StartSerial[int, int](funcWorker[int, int]{f: func(v int) int { return v * 2 }})

	p.SubmitBatch([]Task[int]{
		{Input: 1, Priority: 1},
		{Input: 2, Priority: 2},
		{Input: 3, Priority: 3},
	})
	if n := p.TaskCount(); n != 3 {
		t.Fatalf("TaskCount = %d, want 3", n)
	}

	if out := p.FetchResults(); len(out) != 1 || out[0] != 6 {
		t.Fatalf("first serial result = %v, want [6]", out)
	}
	if n := p.TaskCount(); n != 2 {
		t.Fatalf("TaskCount after one fetch = %d, want 2", n)
	}
}

func TestFetchResultsNeverBlocks(t *testing.T) {
	p := Start[int, int](funcWorker[int, int]{f: func(v int) int { return v }})
	defer p.Close()

	done := make(chan struct{})
	go func() {
		p.FetchResults() // empty pool, must return immediately
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("FetchResults blocked on an empty pool")
	}
}

func TestManyWorkersDeliverEachResultOnce(t *testing.T) {
	const tasks = 500
	p := Start[int, int](
		funcWorker[int, int]{f: func(v int) int { return v }},
		funcWorker[int, int]{f: func(v int) int { return v }},
		funcWorker[int, int]{f: func(v int) int { return v }},
		funcWorker[int, int]{f: func(v int) int { return v }},
	)
	defer p.Close()

	batch := make([]Task[int], tasks)
	for i := range batch {
		batch[i] = Task[int]{Input: i, Priority: i % 7}
	}
	p.SubmitBatch(batch)

	seen := make(map[int]int)
	deadline := time.After(10 * time.Second)
	for len(seen) < tasks {
		select {
		case <-deadline:
			t.Fatalf("timed out after %d of %d results", len(seen), tasks)
		default:
			for _, v := range p.FetchResults() {
				seen[v]++
			}
		}
	}
	for v, n := range seen {
		if n != 1 {
			t.Fatalf("result %d delivered %d times", v, n)
		}
	}
}

func TestCloseWithPendingTasksDoesNotHang(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	p := Start[int, int](funcWorker[int, int]{f: func(v int) int {
		started <- struct{}{}
		<-release
		return v
	}})

	// One in-flight task plus a backlog that will never be claimed.
	for i := 0; i < 50; i++ {
		p.Submit(i, i)
	}
	<-started
	close(release)

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close hung with pending tasks")
	}

	// The in-flight task ran to completion and its result is preserved.
	if out := p.FetchResults(); len(out) == 0 {
		t.Fatal("in-flight result was lost on shutdown")
	}
}

func TestConcurrentSubmitters(t *testing.T) {
	p := Start[int, int](
		funcWorker[int, int]{f: func(v int) int { return v }},
		funcWorker[int, int]{f: func(v int) int { return v }},
	)
	defer p.Close()

	var wg sync.WaitGroup
	const perSubmitter = 100
	for s := 0; s < 4; s++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				p.Submit(base+i, i)
			}
		}(s * perSubmitter)
	}
	wg.Wait()

	seen := make(map[int]bool)
	deadline := time.After(10 * time.Second)
	for len(seen) < 4*perSubmitter {
		select {
		case <-deadline:
			t.Fatalf("timed out after %d results", len(seen))
		default:
			for _, v := range p.FetchResults() {
				seen[v] = true
			}
		}
	}
}
