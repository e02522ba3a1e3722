package competitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJitterDisabledReturnsImmediately(t *testing.T) {
	j := &Jitter{Min: time.Hour, Max: 2 * time.Hour, Enabled: false}

	start := time.Now()
	err := j.Wait(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestJitterNilIsNoop(t *testing.T) {
	var j *Jitter
	assert.NoError(t, j.Wait(context.Background()))
}

func TestJitterRespectsCancellation(t *testing.T) {
	j := &Jitter{Min: time.Hour, Max: time.Hour, Enabled: true}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := j.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJitterWaitsWithinBounds(t *testing.T) {
	j := NewJitter(10*time.Millisecond, 30*time.Millisecond, nil)

	start := time.Now()
	require.NoError(t, j.Wait(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}
