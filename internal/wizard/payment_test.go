package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firedTimer(waits *[]time.Duration) func(time.Duration) <-chan time.Time {
	return func(d time.Duration) <-chan time.Time {
		*waits = append(*waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

func TestPaymentSimulator_RunsAllStages(t *testing.T) {
	var waits []time.Duration
	var statuses []PaymentStatus

	sim := NewPaymentSimulator(DefaultPaymentTimings()).WithTimer(firedTimer(&waits))

	err := sim.Run(context.Background(), func(s PaymentStatus) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.Equal(t, []PaymentStatus{PaymentIdle, PaymentProcessing, PaymentSuccess}, statuses)
	assert.Equal(t, []time.Duration{3 * time.Second, 4 * time.Second, 2 * time.Second}, waits)
}

func TestPaymentSimulator_CancelStopsCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	never := func(time.Duration) <-chan time.Time { return make(chan time.Time) }
	sim := NewPaymentSimulator(DefaultPaymentTimings()).WithTimer(never)

	var statuses []PaymentStatus
	err := sim.Run(ctx, func(s PaymentStatus) {
		statuses = append(statuses, s)
		if s == PaymentIdle {
			cancel()
		}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []PaymentStatus{PaymentIdle}, statuses)
}

func TestPaymentSimulator_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewPaymentSimulator(DefaultPaymentTimings()).Run(ctx, func(PaymentStatus) { called = true })

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
