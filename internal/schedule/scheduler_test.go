package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingJob struct {
	runs int
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs++
	return nil
}

func TestCronScheduler_AddJob(t *testing.T) {
	s := NewCronScheduler()
	job := &countingJob{}

	require.NoError(t, s.AddJob(job, ""))
	require.Equal(t, 0, s.Len())

	require.NoError(t, s.AddJob(job, "@every 5m"))
	require.NoError(t, s.AddJob(job, "*/10 * * * *"))
	require.Equal(t, 2, s.Len())

	require.Error(t, s.AddJob(job, "not a spec"))
}

func TestCronScheduler_WrapRunsJob(t *testing.T) {
	s := NewCronScheduler()
	job := &countingJob{}
	s.wrap(job)()
	runJob(context.Background(), zap.NewNop(), job)
	require.Equal(t, 2, job.runs)
}
