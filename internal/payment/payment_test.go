package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSuccessRateConverges(t *testing.T) {
	sim := NewSimulator(0)
	ctx := context.Background()

	const calls = 1000
	successes := 0
	seen := make(map[string]bool, calls)

	for i := 0; i < calls; i++ {
		res, err := sim.Process(ctx, uint(i+1), "upi")
		require.NoError(t, err)

		if res.Success {
			successes++
			assert.Equal(t, "completed", res.Status)
		} else {
			assert.Equal(t, "failed", res.Status)
		}

		require.NotEmpty(t, res.TransactionID)
		assert.False(t, seen[res.TransactionID], "transaction id %s repeated", res.TransactionID)
		seen[res.TransactionID] = true
	}

	rate := float64(successes) / float64(calls)
	// 0.9 with a generous tolerance; ~3 sigma for n=1000 is about 0.03.
	assert.InDelta(t, 0.9, rate, 0.05)
}

func TestProcessWaitsOutLatency(t *testing.T) {
	sim := NewSimulator(30 * time.Millisecond)

	start := time.Now()
	_, err := sim.Process(context.Background(), 1, "card")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestProcessHonorsContextCancellation(t *testing.T) {
	sim := NewSimulator(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := sim.Process(ctx, 1, "card")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
