package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/infrastructure/metrics"
)

// DefaultPollInterval is the pause between two poll cycles
const DefaultPollInterval = 2 * time.Second

// JobProcessor handles at most one job per call
type JobProcessor interface {
	ProcessNext(ctx context.Context) error
}

// Poller repeatedly invokes a JobProcessor until its context is cancelled
type Poller struct {
	processor JobProcessor
	interval  time.Duration
	logger    *zap.Logger
}

// NewPoller creates a Poller; a non-positive interval falls back to DefaultPollInterval
func NewPoller(processor JobProcessor, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{processor: processor, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled. Errors and panics from a cycle are logged
// and the loop continues.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("👷 Poll loop started", zap.Duration("interval", p.interval))

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			p.logger.Info("👷 Poll loop stopping")
			return
		}

		if err := p.cycle(ctx); err != nil {
			metrics.PollErrorsTotal.Inc()
			p.logger.Error("❌ Poll cycle failed", zap.Error(err))
		}

		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			p.logger.Info("👷 Poll loop stopping")
			return
		case <-timer.C:
		}
	}
}

func (p *Poller) cycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpectedFailure, r)
		}
	}()
	return p.processor.ProcessNext(ctx)
}
