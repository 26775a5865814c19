// Package scheduler runs periodic background jobs on a gocron scheduler.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

var (
	ErrEmptyJobName    = crerr.New("job name is required")
	ErrInvalidInterval = crerr.New("job interval must be positive")
	ErrNilTask         = crerr.New("job task is required")
)

// Task is one run of a job. The context is cancelled when the run exceeds
// its interval or the scheduler shuts down.
type Task func(ctx context.Context) error

type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *logging.Logger

	baseCtx  context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopErr  error
}

func New(logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "create gocron scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: sched,
		logger:    logger,
		baseCtx:   ctx,
		cancel:    cancel,
	}, nil
}

// Every registers task to run once at start and then every interval.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrEmptyJobName
	case interval <= 0:
		return crerr.Wrapf(ErrInvalidInterval, "job %s", name)
	case task == nil:
		return crerr.Wrapf(ErrNilTask, "job %s", name)
	}

	run := func() {
		ctx, cancel := context.WithTimeout(s.baseCtx, interval)
		defer cancel()

		started := time.Now()
		if err := task(ctx); err != nil {
			s.logger.WarnContext(ctx, "scheduler job failed", "job_name", name, "error", err)
			return
		}
		s.logger.DebugContext(ctx, "scheduler job completed", "job_name", name, "duration", time.Since(started).String())
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(run),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return crerr.Wrapf(err, "register job %s", name)
	}

	s.logger.Info("scheduler job registered", "job_name", name, "interval", interval.String())
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler starting", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Shutdown cancels running tasks and waits for them to return. It is safe to
// call more than once.
func (s *Scheduler) Shutdown() error {
	s.stopOnce.Do(func() {
		s.cancel()
		if err := s.scheduler.Shutdown(); err != nil {
			s.stopErr = crerr.Wrap(err, "shutdown gocron scheduler")
		}
	})
	return s.stopErr
}
