package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 2 * time.Minute

// Job is one unit of periodic work. It reports how many records it touched.
type Job interface {
	Execute(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log,
	}
}

// Add registers job under spec (standard cron or "@every 15m").
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.Run(name, job)
	})
	return err
}

// Run executes job once with a bounded context and logs the outcome.
func (s *Scheduler) Run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := job.Execute(ctx)

	entry := s.log.WithFields(logrus.Fields{
		"job":      name,
		"affected": n,
		"took":     time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("scheduled job failed")
		return
	}
	if n > 0 {
		entry.Info("scheduled job done")
	} else {
		entry.Debug("scheduled job done")
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
