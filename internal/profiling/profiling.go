package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Per-frame section timings and event counters.

var (
	mu       sync.Mutex
	sections = make(map[string]time.Duration)
	counters = make(map[string]int)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("graphics.Pass.Draw")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		sections[name] += d
		mu.Unlock()
	}
}

// Count adds n to the named counter.
func Count(name string, n int) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// ResetFrame clears timings and counters. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(sections)
	clear(counters)
	mu.Unlock()
}

// Counter returns the current value of a counter.
func Counter(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return counters[name]
}

// Elapsed returns the time tracked under name this frame.
func Elapsed(name string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return sections[name]
}

// SumWithPrefix totals every section whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range sections {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// TopN formats the n slowest sections, e.g. "graphics.Pass.Draw:0.4ms".
func TopN(n int) string {
	mu.Lock()
	names := make([]string, 0, len(sections))
	for k := range sections {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return sections[names[i]] > sections[names[j]] })
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		ms := float64(sections[names[i]].Microseconds()) / 1000.0
		parts[i] = fmt.Sprintf("%s:%.1fms", names[i], ms)
	}
	mu.Unlock()
	return strings.Join(parts, ", ")
}
