package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultSweepInterval = 10 * time.Minute
	defaultViewMaxIdle   = 30 * time.Minute
)

// SweeperService periodically drops per-player caches nobody reads anymore.
type SweeperService struct {
	world  *WorldService
	logger *zap.Logger

	interval time.Duration
	maxIdle  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewSweeperService(world *WorldService, logger *zap.Logger) *SweeperService {
	return &SweeperService{
		world:    world,
		logger:   logger,
		interval: defaultSweepInterval,
		maxIdle:  defaultViewMaxIdle,
		stopCh:   make(chan struct{}),
	}
}

func (s *SweeperService) SetInterval(d time.Duration) {
	s.interval = d
}

func (s *SweeperService) SetMaxIdle(d time.Duration) {
	s.maxIdle = d
}

// Start runs the sweeper on a periodic schedule in a background goroutine.
func (s *SweeperService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("view sweeper started", zap.Duration("interval", s.interval), zap.Duration("max_idle", s.maxIdle))

		for {
			select {
			case <-ticker.C:
				s.run()
			case <-s.stopCh:
				s.logger.Info("view sweeper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the sweeper.
func (s *SweeperService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *SweeperService) run() {
	if dropped := s.world.Sweep(s.maxIdle); dropped > 0 {
		s.logger.Info("dropped idle views", zap.Int("count", dropped))
	}
}
