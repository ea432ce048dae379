package papersources

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the pseudo-random source injected into components that need random
// values (mock data, defensive defaults for missing upstream fields). Tests
// supply a seeded implementation for reproducible output.
type Rand interface {
	// Intn returns a non-negative pseudo-random int in [0, n).
	// Panics if n <= 0, matching math/rand semantics.
	Intn(n int) int
}

// lockedRand wraps *rand.Rand with a mutex so a single source can be shared
// across concurrent requests. rand.Rand itself is not goroutine-safe.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a time-seeded Rand that is safe for concurrent use.
func NewRand() Rand {
	return NewSeededRand(time.Now().UnixNano())
}

// NewSeededRand returns a Rand seeded with the given value. Used by tests
// that need reproducible sequences.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// Intn implements Rand.
func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// IntBetween returns a pseudo-random int in [min, max] inclusive.
func IntBetween(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}
