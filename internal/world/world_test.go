package world

import (
	"io"
	"log/slog"
	"testing"

	"voxelgen/internal/config"
	"voxelgen/internal/core"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Workers = -1 // serial: deterministic, no goroutines
	cfg.StreamRadius = 1
	cfg.EvictHorizontal = 2
	cfg.EvictVertical = 2
	cfg.MinChunkY = -1
	cfg.MaxChunkY = 1
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// drain pumps the serial pool until the pending set is empty.
func drain(t *testing.T, w *World) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		w.ApplyResults()
		if w.PendingCount() == 0 {
			return
		}
	}
	t.Fatalf("streaming did not settle, %d chunks still pending", w.PendingCount())
}

func TestStreamLoadsArea(t *testing.T) {
	cfg := testConfig()
	w, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	w.StreamAround(core.ChunkPos{})
	drain(t, w)

	// 3x3 columns, three vertical levels each.
	want := 9 * int(cfg.MaxChunkY-cfg.MinChunkY+1)
	if got := w.ChunkCount(); got != want {
		t.Fatalf("loaded %d chunks, want %d", got, want)
	}
	if _, ok := w.Chunk(core.ChunkPos{X: 1, Y: 1, Z: -1}); !ok {
		t.Error("corner chunk of the streamed area is missing")
	}
}

func TestStreamIsIdempotent(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	w.StreamAround(core.ChunkPos{})
	w.StreamAround(core.ChunkPos{}) // queued or loaded chunks must not requeue
	drain(t, w)

	first := w.ChunkCount()
	w.StreamAround(core.ChunkPos{})
	drain(t, w)
	if got := w.ChunkCount(); got != first {
		t.Fatalf("restreaming a loaded area changed the chunk count %d -> %d", first, got)
	}
}

func TestSerialStreamingGeneratesNearestFirst(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	center := core.ChunkPos{X: 0, Y: 0, Z: 0}
	w.StreamAround(center)

	// The serial pool runs exactly one task per fetch, highest priority
	// first; the very first installed chunk must be the center itself.
	if n := w.ApplyResults(); n != 1 {
		t.Fatalf("first pump installed %d chunks, want 1", n)
	}
	if _, ok := w.Chunk(center); !ok {
		t.Fatal("first generated chunk was not the stream center")
	}
}

func TestDuplicateResultKeepsFirstChunk(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	pos := core.ChunkPos{X: 0, Y: 0, Z: 0}
	first := w.gen.Generate(pos)
	if !w.install(genResult{pos: pos, chunk: first}) {
		t.Fatal("first install rejected")
	}
	if w.install(genResult{pos: pos, chunk: w.gen.Generate(pos)}) {
		t.Fatal("duplicate install accepted")
	}
	got, _ := w.Chunk(pos)
	if got != first {
		t.Fatal("duplicate replaced the originally installed chunk")
	}
}

func TestBlockOutsideLoadedChunksIsAir(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if got := w.Block(10000, 0, 10000); got != core.BlockTypeAir {
		t.Fatalf("unloaded block = %v, want air", got)
	}
}

func TestEvictDropsFarChunks(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	w.StreamAround(core.ChunkPos{})
	drain(t, w)
	loaded := w.ChunkCount()

	// Move the center far away: everything previously loaded is out of
	// the retention window.
	w.Evict(core.ChunkPos{X: 100, Y: 0, Z: 100})
	if got := w.ChunkCount(); got != 0 {
		t.Fatalf("eviction kept %d of %d chunks around an abandoned center", got, loaded)
	}

	// Near center: the window covers the whole streamed area.
	w.StreamAround(core.ChunkPos{})
	drain(t, w)
	before := w.ChunkCount()
	w.Evict(core.ChunkPos{})
	if got := w.ChunkCount(); got != before {
		t.Fatalf("eviction at the stream center dropped %d chunks", before-got)
	}
}

func TestEvictionRegenerationIsIdentical(t *testing.T) {
	w, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	pos := core.ChunkPos{X: 0, Y: 0, Z: 0}
	w.StreamAround(core.ChunkPos{})
	drain(t, w)
	c1, _ := w.Chunk(pos)
	var want [16]core.BlockType
	for i := range want {
		want[i] = c1.Get(core.NewLocalPos(int32(i%4), int32(i/4), 7))
	}

	w.Evict(core.ChunkPos{X: 100, Y: 0, Z: 100})
	w.StreamAround(core.ChunkPos{})
	drain(t, w)

	c2, ok := w.Chunk(pos)
	if !ok {
		t.Fatal("chunk not reloaded after eviction")
	}
	for i := range want {
		if c2.Get(core.NewLocalPos(int32(i%4), int32(i/4), 7)) != want[i] {
			t.Fatal("regenerated chunk differs from its first generation")
		}
	}
}
