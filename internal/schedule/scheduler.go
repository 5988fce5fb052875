package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// CronScheduler runs maintenance jobs. Specs take five fields or a descriptor such as "@every 5m".
type CronScheduler struct {
	cron  *cron.Cron
	ctx   context.Context
	count int
}

func NewCronScheduler() *CronScheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &CronScheduler{cron: cron.New(cron.WithParser(parser))}
}

// AddJob schedules job; an empty spec leaves it disabled.
func (c *CronScheduler) AddJob(job Job, spec string) error {
	spec = strings.TrimSpace(spec)
	logger := logutil.GetLogger(context.Background()).With(zap.String("job", job.Name()), zap.String("spec", spec))
	if spec == "" {
		logger.Info("job disabled")
		return nil
	}
	if _, err := c.cron.AddFunc(spec, c.wrap(job)); err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	c.count++
	logger.Info("job scheduled")
	return nil
}

func (c *CronScheduler) Len() int {
	return c.count
}

func (c *CronScheduler) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.cron.Start()
}

func (c *CronScheduler) Stop() {
	<-c.cron.Stop().Done()
}

func (c *CronScheduler) wrap(job Job) func() {
	var running atomic.Bool
	return func() {
		ctx := c.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logutil.GetLogger(ctx).With(zap.String("job", job.Name()))
		if !running.CompareAndSwap(false, true) {
			logger.Info("job skipped: still running")
			return
		}
		defer running.Store(false)
		runJob(ctx, logger, job)
	}
}

func runJob(ctx context.Context, logger *zap.Logger, job Job) {
	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("job failed", zap.Error(err), zap.Duration("duration", elapsed))
		return
	}
	logger.Debug("job finished", zap.Duration("duration", elapsed))
}
