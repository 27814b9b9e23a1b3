package monosprite

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// Clock is a monotonic millisecond clock.
type Clock interface {
	NowMillis() int64
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock counting from now using the monotonic
// wall clock.
func NewSystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	ms atomic.Int64
}

// NowMillis implements Clock.
func (c *ManualClock) NowMillis() int64 {
	return c.ms.Load()
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.ms.Add(d.Milliseconds())
}

// Random is a source of uniformly distributed integers.
type Random interface {
	// InRange returns a value in [min, max].
	InRange(min, max int) int
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) Random {
	return pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p pcgRandom) InRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + p.r.IntN(max-min+1)
}
