// Package profiling is a lightweight timing aggregator for generation work.
// Sections accumulate total duration and call count until Reset; Summary
// gives a one-line report suitable for periodic logging.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type section struct {
	total time.Duration
	calls int64
}

var (
	mu       sync.Mutex
	sections = make(map[string]section)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("worldgen.Generate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := sections[name]
		s.total += d
		s.calls++
		sections[name] = s
		mu.Unlock()
	}
}

// Reset clears all accumulated sections.
func Reset() {
	mu.Lock()
	sections = make(map[string]section)
	mu.Unlock()
}

// Stat is one section's accumulated timing.
type Stat struct {
	Name  string
	Total time.Duration
	Calls int64
}

// Snapshot returns the accumulated sections sorted by total time,
// descending.
func Snapshot() []Stat {
	mu.Lock()
	out := make([]Stat, 0, len(sections))
	for name, s := range sections {
		out = append(out, Stat{Name: name, Total: s.total, Calls: s.calls})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// Summary formats the top n sections as "name:total/calls" pairs.
// Example: "worldgen.Generate:41.2ms/128, worldgen.Cleanup:0.3ms/2"
func Summary(n int) string {
	stats := Snapshot()
	if n > len(stats) {
		n = len(stats)
	}
	parts := make([]string, 0, n)
	for _, s := range stats[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", s.Name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}
