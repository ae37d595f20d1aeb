package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSweepSpec = "@every 5m"

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

// AddSweeper runs the sweeper on spec. Each run gets its own timeout.
func (s *Scheduler) AddSweeper(spec string, sweeper *NoShowSweeper, timeout time.Duration) error {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := sweeper.Sweep(ctx); err != nil {
			s.log.Error("no-show sweep", zap.Error(err))
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
