// Package workers contains background workers for the delivery domain
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/delivery/usecase/business"
)

// RetentionSweeper periodically trims every user's ledger to the retention cap
type RetentionSweeper struct {
	ledger   *business.Ledger
	logger   zerolog.Logger
	interval time.Duration
	keepLast int
	timeout  time.Duration

	wg     sync.WaitGroup
	stop   sync.Once
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRetentionSweeper creates a new retention sweeper worker
func NewRetentionSweeper(ledger *business.Ledger, cfg *config.DeliveryConfig, logger zerolog.Logger) *RetentionSweeper {
	ctx, cancel := context.WithCancel(context.Background())

	interval := time.Hour
	keepLast := 100
	if cfg != nil {
		if cfg.RetentionInterval > 0 {
			interval = cfg.RetentionInterval
		}
		if cfg.RetentionKeepLast > 0 {
			keepLast = cfg.RetentionKeepLast
		}
	}

	return &RetentionSweeper{
		ledger:   ledger,
		logger:   logger.With().Str("component", "retention_sweeper").Logger(),
		interval: interval,
		keepLast: keepLast,
		timeout:  5 * time.Minute,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the sweeper worker
func (s *RetentionSweeper) Start() {
	s.logger.Info().
		Dur("interval", s.interval).
		Int("keep_last", s.keepLast).
		Msg("starting retention sweeper worker")

	s.wg.Add(1)
	go s.run()
}

// Stop gracefully stops the sweeper worker
func (s *RetentionSweeper) Stop() {
	s.stop.Do(func() {
		s.logger.Info().Msg("stopping retention sweeper worker")

		s.cancel()
		s.wg.Wait()

		s.logger.Info().Msg("retention sweeper worker stopped")
	})
}

func (s *RetentionSweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs a single pass over all users
func (s *RetentionSweeper) Sweep() int64 {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	deleted, err := s.ledger.SweepAll(ctx, s.keepLast)
	if err != nil {
		s.logger.Error().Err(err).Msg("retention sweep failed")
		return deleted
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("retention sweep completed")
	}
	return deleted
}
