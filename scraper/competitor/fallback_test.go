package competitor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackPriceBand(t *testing.T) {
	p := NewFallbackPricer(rand.NewSource(1))
	const ref = 649.00

	for i := 0; i < 1000; i++ {
		price := p.Price(ref)
		assert.GreaterOrEqual(t, price, 551.65)
		assert.LessOrEqual(t, price, 746.35)
	}
}

func TestFallbackPriceDeterministicWithSeed(t *testing.T) {
	a := NewFallbackPricer(rand.NewSource(42))
	b := NewFallbackPricer(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Price(100), b.Price(100))
	}
}

func TestFallbackPriceRounding(t *testing.T) {
	p := NewFallbackPricer(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		price := p.Price(33.33)
		cents := price * 100
		assert.InDelta(t, cents, float64(int64(cents+0.5)), 1e-6)
	}
}
