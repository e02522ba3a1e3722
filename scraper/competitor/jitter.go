package competitor

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// scrollScript nudges the page by a random amount, like a user
// glancing over the results while they settle.
const scrollScript = `window.scrollTo(0, Math.random() * 300)`

// Jitter paces navigation with a randomized delay so concurrent
// pipelines do not hit every storefront in lockstep. Disabled jitter
// returns immediately, which keeps tests deterministic.
type Jitter struct {
	Min     time.Duration
	Max     time.Duration
	Enabled bool

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitter builds an enabled jitter policy over [min, max]. A nil src
// seeds from the global source.
func NewJitter(min, max time.Duration, src rand.Source) *Jitter {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &Jitter{Min: min, Max: max, Enabled: true, rng: rand.New(src)}
}

// Wait blocks for a random duration in [Min, Max] or until ctx is
// done, in which case it returns ctx.Err().
func (j *Jitter) Wait(ctx context.Context) error {
	if j == nil || !j.Enabled || j.Max <= 0 {
		return nil
	}

	d := j.Min
	if j.Max > j.Min {
		j.mu.Lock()
		d += time.Duration(j.rng.Int63n(int64(j.Max - j.Min)))
		j.mu.Unlock()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
