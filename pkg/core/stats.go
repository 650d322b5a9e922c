package core

// Counter identifies a per-thread statistics counter
type Counter int

const (
	RayPlaneTests Counter = iota
	RayPlaneTestsSucceeded
	ClipTests
	ClipTestsSucceeded

	numCounters
)

var counterNames = [numCounters]string{
	RayPlaneTests:          "ray_plane_tests",
	RayPlaneTestsSucceeded: "ray_plane_tests_succeeded",
	ClipTests:              "clip_tests",
	ClipTestsSucceeded:     "clip_tests_succeeded",
}

// String returns the snake_case name of the counter
func (c Counter) String() string {
	if c < 0 || c >= numCounters {
		return "unknown"
	}
	return counterNames[c]
}

// Counters lists every counter in declaration order
func Counters() []Counter {
	all := make([]Counter, numCounters)
	for i := range all {
		all[i] = Counter(i)
	}
	return all
}

// ThreadContext carries the mutable state of one render worker. Each worker
// owns exactly one context for its lifetime, so counters are plain integers.
// A nil *ThreadContext is valid and discards everything.
type ThreadContext struct {
	ID    int
	stats [numCounters]int64
}

// NewThreadContext creates a context for the worker with the given id
func NewThreadContext(id int) *ThreadContext {
	return &ThreadContext{ID: id}
}

// Increment bumps counter c by one
func (tc *ThreadContext) Increment(c Counter) {
	if tc == nil {
		return
	}
	tc.stats[c]++
}

// Count returns the current value of counter c
func (tc *ThreadContext) Count(c Counter) int64 {
	if tc == nil {
		return 0
	}
	return tc.stats[c]
}

// Merge adds the counters of other into tc. Call it only after the worker
// owning other has stopped.
func (tc *ThreadContext) Merge(other *ThreadContext) {
	if tc == nil || other == nil {
		return
	}
	for i := range tc.stats {
		tc.stats[i] += other.stats[i]
	}
}

// Reset zeroes every counter
func (tc *ThreadContext) Reset() {
	if tc == nil {
		return
	}
	tc.stats = [numCounters]int64{}
}

// Snapshot returns the counters keyed by name
func (tc *ThreadContext) Snapshot() map[string]int64 {
	out := make(map[string]int64, numCounters)
	for _, c := range Counters() {
		out[c.String()] = tc.Count(c)
	}
	return out
}
