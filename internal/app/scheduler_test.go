package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessions struct {
	cutoffs []time.Time
	evict   int
}

func (f *fakeSessions) EvictIdle(cutoff time.Time) int {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.evict
}

func TestScheduler_SweepUsesTTL(t *testing.T) {
	sessions := &fakeSessions{evict: 2}
	s := NewScheduler(sessions, 30*time.Minute, zap.NewNop())
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n := s.sweep()

	assert.Equal(t, 2, n)
	assert.Equal(t, []time.Time{now.Add(-30 * time.Minute)}, sessions.cutoffs)
}

func TestScheduler_Interval(t *testing.T) {
	assert.Equal(t, time.Minute, NewScheduler(&fakeSessions{}, time.Minute, zap.NewNop()).interval)
	assert.Equal(t, 10*time.Minute, NewScheduler(&fakeSessions{}, 40*time.Minute, zap.NewNop()).interval)
}

func TestScheduler_StopAndCancel(t *testing.T) {
	s := NewScheduler(&fakeSessions{}, time.Hour, zap.NewNop())
	s.Start(context.Background())
	s.Stop()
	s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	s2 := NewScheduler(&fakeSessions{}, time.Hour, zap.NewNop())
	s2.Start(ctx)
	cancel()

	select {
	case <-s2.done:
	case <-time.After(time.Second):
		t.Fatal("sweep task did not stop on context cancel")
	}
}
