package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionEvicter хранилище сессий мастера, умеющее выселять простаивающие
type SessionEvicter interface {
	EvictIdle(cutoff time.Time) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions SessionEvicter
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт планировщик, выселяющий сессии без активности дольше ttl
func NewScheduler(sessions SessionEvicter, ttl time.Duration, logger *zap.Logger) *Scheduler {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("session_ttl", s.ttl),
		zap.Duration("interval", s.interval))

	go s.runSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runSweepTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("Session sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweep task cancelled")
			return
		}
	}
}

// sweep выселяет сессии, к которым не обращались дольше ttl
func (s *Scheduler) sweep() int {
	evicted := s.sessions.EvictIdle(s.now().Add(-s.ttl))
	if evicted > 0 {
		s.logger.Info("Idle sessions evicted", zap.Int("count", evicted))
	}
	return evicted
}
