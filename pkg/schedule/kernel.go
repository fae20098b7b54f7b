package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Task is a unit of scheduled work.
type Task func(ctx context.Context) error

// Kernel manages scheduled tasks
type Kernel struct {
	cron         *cron.Cron
	lockProvider LockProvider

	mu    sync.RWMutex
	ctx   context.Context
	tasks map[string]func(ctx context.Context)
}

// JobOption configures a scheduled job
type JobOption func(*jobConfig)

type jobConfig struct {
	withoutOverlapping bool
	onOneServer        bool
	lockFor            time.Duration
}

// NewKernel creates a new scheduler kernel. lockProvider may be nil, in
// which case OnOneServer is ignored.
func NewKernel(lockProvider LockProvider) *Kernel {
	return &Kernel{
		cron:         cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger{})),
		lockProvider: lockProvider,
		ctx:          context.Background(),
		tasks:        make(map[string]func(ctx context.Context)),
	}
}

// WithoutOverlapping skips a run while the previous one is still going (local only)
func WithoutOverlapping() JobOption {
	return func(c *jobConfig) {
		c.withoutOverlapping = true
	}
}

// OnOneServer ensures the job runs on only one server at a time. The lock
// is held for at most lockFor and released when the task returns.
func OnOneServer(lockFor time.Duration) JobOption {
	return func(c *jobConfig) {
		c.onOneServer = true
		c.lockFor = lockFor
	}
}

// Register adds a task to be run on a given schedule.
// Schedule format: "s m h d m w" (Seconds Minutes Hours Day Month Week)
func (k *Kernel) Register(spec, name string, task Task, opts ...JobOption) error {
	cfg := &jobConfig{lockFor: time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}

	run := k.wrap(name, task)
	if cfg.onOneServer {
		if k.lockProvider == nil {
			log.Warn().Str("task", name).Msg("Ignoring OnOneServer: no lock provider configured")
		} else {
			run = k.withLock(name, cfg.lockFor, run)
		}
	}

	var job cron.Job = cron.FuncJob(func() { run(k.baseContext()) })
	if cfg.withoutOverlapping {
		job = cron.SkipIfStillRunning(cronLogger{})(job)
	}

	if _, err := k.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("failed to register task %s: %w", name, err)
	}

	k.mu.Lock()
	k.tasks[name] = run
	k.mu.Unlock()

	log.Info().Str("task", name).Str("schedule", spec).Msg("Registered scheduled task")
	return nil
}

// RunTask runs a registered task immediately, honouring its lock.
func (k *Kernel) RunTask(ctx context.Context, name string) error {
	k.mu.RLock()
	run, ok := k.tasks[name]
	k.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown scheduled task: %s", name)
	}
	run(ctx)
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running tasks to finish.
func (k *Kernel) Run(ctx context.Context) {
	k.mu.Lock()
	k.ctx = ctx
	k.mu.Unlock()

	log.Info().Int("tasks", len(k.cron.Entries())).Msg("Starting task scheduler")
	k.cron.Start()

	<-ctx.Done()

	log.Info().Msg("Stopping task scheduler")
	<-k.cron.Stop().Done()
}

func (k *Kernel) baseContext() context.Context {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.ctx
}

func (k *Kernel) wrap(name string, task Task) func(ctx context.Context) {
	return func(ctx context.Context) {
		logger := log.With().Str("task", name).Logger()
		ctx = logger.WithContext(ctx)

		start := time.Now()
		if err := task(ctx); err != nil {
			logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Scheduled task failed")
			return
		}
		logger.Info().Dur("duration", time.Since(start)).Msg("Scheduled task finished")
	}
}

func (k *Kernel) withLock(name string, lockFor time.Duration, run func(ctx context.Context)) func(ctx context.Context) {
	return func(ctx context.Context) {
		lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		acquired, err := k.lockProvider.GetLock(lockCtx, name, lockFor)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("task", name).Msg("Failed to check scheduler lock")
			return
		}
		if !acquired {
			log.Debug().Str("task", name).Msg("Skipping task: locked by another server")
			return
		}

		defer func() {
			if err := k.lockProvider.ReleaseLock(context.WithoutCancel(ctx), name); err != nil {
				log.Warn().Err(err).Str("task", name).Msg("Failed to release scheduler lock")
			}
		}()
		run(ctx)
	}
}

// cronLogger routes robfig/cron logs to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

var _ cron.Logger = cronLogger{}
