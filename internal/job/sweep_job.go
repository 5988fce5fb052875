package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep(now time.Time) int
}

// SweepJob drops expired analysis cache entries and idle rate-limit buckets.
type SweepJob struct {
	cache   Sweeper
	limiter Sweeper
	now     func() time.Time
}

func NewSweepJob(cache, limiter Sweeper) *SweepJob {
	return &SweepJob{cache: cache, limiter: limiter, now: time.Now}
}

func (j *SweepJob) Name() string {
	return "state_sweep"
}

func (j *SweepJob) Run(ctx context.Context) error {
	now := j.now()
	var entries, buckets int
	if j.cache != nil {
		entries = j.cache.Sweep(now)
	}
	if j.limiter != nil {
		buckets = j.limiter.Sweep(now)
	}
	if entries > 0 || buckets > 0 {
		logutil.GetLogger(ctx).Info("swept expired state",
			zap.Int("cache_entries", entries),
			zap.Int("rate_buckets", buckets),
		)
	}
	return nil
}
