// Package world maintains the live set of generated chunks around a moving
// center: it streams chunk generation through a background worker pool,
// installs finished chunks, and evicts chunks and memoized generator state
// that fall out of range.
package world

import (
	"log/slog"
	"sync"

	"voxelgen/internal/config"
	"voxelgen/internal/core"
	"voxelgen/internal/profiling"
	"voxelgen/internal/worker"
	"voxelgen/internal/worldgen"
)

// genResult is one finished generation job.
type genResult struct {
	pos   core.ChunkPos
	chunk *core.Chunk
}

// genWorker adapts the generator to the worker pool. The generator is safe
// for concurrent use, so every worker shares one instance.
type genWorker struct {
	gen *worldgen.Generator
}

func (w genWorker) Run(pos core.ChunkPos) genResult {
	return genResult{pos: pos, chunk: w.gen.Generate(pos)}
}

// World is the live chunk set of one running world. All methods are safe
// for concurrent use.
type World struct {
	cfg config.Config
	gen *worldgen.Generator
	log *slog.Logger

	pool *worker.Pool[core.ChunkPos, genResult]

	mu     sync.RWMutex
	chunks map[core.ChunkPos]*core.Chunk

	pendingMu sync.Mutex
	pending   map[core.ChunkPos]struct{}
}

// New creates a world from its configuration. Worker count follows the
// config: positive is explicit, zero sizes from the CPU count, negative
// forces serial generation on the caller's goroutine.
func New(cfg config.Config, log *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := worldgen.NewWithOptions(cfg.Seed, worldgen.Options{
		MinChunkY: cfg.MinChunkY,
		MaxChunkY: cfg.MaxChunkY,
	})
	if err != nil {
		return nil, err
	}

	w := &World{
		cfg:     cfg,
		gen:     gen,
		log:     log,
		chunks:  make(map[core.ChunkPos]*core.Chunk),
		pending: make(map[core.ChunkPos]struct{}),
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = worker.DefaultWorkerCount()
	}
	if workers <= 0 {
		w.pool = worker.StartSerial[core.ChunkPos, genResult](genWorker{gen: gen})
		log.Info("world generation running serially", "seed", cfg.Seed)
	} else {
		ws := make([]worker.Worker[core.ChunkPos, genResult], workers)
		for i := range ws {
			ws[i] = genWorker{gen: gen}
		}
		w.pool = worker.Start(ws...)
		log.Info("world generation workers started", "seed", cfg.Seed, "workers", workers)
	}
	return w, nil
}

// Generator exposes the underlying generator, mainly for debug output.
func (w *World) Generator() *worldgen.Generator { return w.gen }

// StreamAround queues generation for every missing chunk within the stream
// radius of center, walking outward ring by ring and submitting one batch.
// Nearer chunks get higher priority so the pool fills the area inside out.
func (w *World) StreamAround(center core.ChunkPos) {
	defer profiling.Track("world.StreamAround")()

	var batch []worker.Task[core.ChunkPos]
	batch = w.enqueueColumn(batch, center, 0, 0)
	for r := int32(1); r <= w.cfg.StreamRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			batch = w.enqueueColumn(batch, center, dx, -r)
			batch = w.enqueueColumn(batch, center, dx, r)
		}
		for dz := -r + 1; dz <= r-1; dz++ {
			batch = w.enqueueColumn(batch, center, -r, dz)
			batch = w.enqueueColumn(batch, center, r, dz)
		}
	}
	w.pool.SubmitBatch(batch)
}

// enqueueColumn appends tasks for the missing chunks of one column, all
// vertical levels, marking them pending.
func (w *World) enqueueColumn(batch []worker.Task[core.ChunkPos], center core.ChunkPos, dx, dz int32) []worker.Task[core.ChunkPos] {
	for cy := w.cfg.MinChunkY; cy <= w.cfg.MaxChunkY; cy++ {
		pos := core.ChunkPos{X: center.X + dx, Y: cy, Z: center.Z + dz}
		if w.has(pos) {
			continue
		}

		w.pendingMu.Lock()
		if _, dup := w.pending[pos]; dup {
			w.pendingMu.Unlock()
			continue
		}
		w.pending[pos] = struct{}{}
		w.pendingMu.Unlock()

		dy := pos.Y - center.Y
		batch = append(batch, worker.Task[core.ChunkPos]{
			Input:    pos,
			Priority: int(-(dx*dx + dz*dz + dy*dy)),
		})
	}
	return batch
}

// ApplyResults installs every finished chunk and returns how many were
// installed. Call this regularly from the consumer's update loop; in serial
// mode each call also performs one generation step.
func (w *World) ApplyResults() int {
	installed := 0
	for _, res := range w.pool.FetchResults() {
		if w.install(res) {
			installed++
		}
	}
	return installed
}

// install publishes one generated chunk. A chunk that is already present
// keeps its original instance: identical duplicates can arrive when a
// position is re-queued around an eviction, and dropping the newcomer keeps
// chunk identity stable for consumers holding the old pointer.
func (w *World) install(res genResult) bool {
	w.pendingMu.Lock()
	delete(w.pending, res.pos)
	w.pendingMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.chunks[res.pos]; exists {
		w.log.Debug("discarding duplicate generated chunk", "pos", res.pos)
		return false
	}
	w.chunks[res.pos] = res.chunk
	return true
}

// has reports whether the chunk is already installed.
func (w *World) has(pos core.ChunkPos) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chunks[pos]
	return ok
}

// Chunk returns the installed chunk at pos.
func (w *World) Chunk(pos core.ChunkPos) (*core.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[pos]
	return c, ok
}

// Block returns the block at a world position, or air where no chunk is
// installed.
func (w *World) Block(x, y, z int32) core.BlockType {
	c, ok := w.Chunk(core.ChunkPosFromWorld(x, y, z))
	if !ok {
		return core.BlockTypeAir
	}
	return c.Get(core.LocalPosFromWorld(x, y, z))
}

// ChunkCount returns the number of installed chunks.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// PendingCount returns the number of chunks queued or in flight.
func (w *World) PendingCount() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pending)
}

// Evict drops installed chunks outside the retention window around center
// and asks the generator to shed its memoized state for the same window.
func (w *World) Evict(center core.ChunkPos) {
	defer profiling.Track("world.Evict")()

	h2 := w.cfg.EvictHorizontal * w.cfg.EvictHorizontal
	w.mu.Lock()
	kept := make(map[core.ChunkPos]*core.Chunk, len(w.chunks))
	dropped := 0
	for pos, c := range w.chunks {
		dx, dy, dz := pos.X-center.X, pos.Y-center.Y, pos.Z-center.Z
		if dx*dx+dz*dz <= h2 && dy >= -w.cfg.EvictVertical && dy <= w.cfg.EvictVertical {
			kept[pos] = c
		} else {
			dropped++
		}
	}
	w.chunks = kept
	w.mu.Unlock()

	w.gen.RequestCleanup(center, w.cfg.EvictHorizontal, w.cfg.EvictVertical)
	if dropped > 0 {
		w.log.Debug("evicted chunks", "count", dropped, "center", center)
	}
}

// Close stops the generation workers. In-flight work finishes; queued work
// is abandoned.
func (w *World) Close() {
	w.pool.Close()
}
