package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop())

	job := &fakeJob{name: "refresh", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	assert.Equal(t, []string{"refresh"}, s.Jobs())

	// Duplicate names are rejected
	err := s.AddJob(&fakeJob{name: "refresh", schedule: "@daily"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())

	err := s.AddJob(&fakeJob{name: "bad", schedule: "not a schedule"})
	require.Error(t, err)
}

func TestRunJob(t *testing.T) {
	s := New(logger.NewNop())

	job := &fakeJob{name: "refresh", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("refresh"))

	// runJob executes asynchronously
	require.Eventually(t, func() bool {
		return job.runs.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		history, err := s.GetJobHistory("refresh")
		return err == nil && history.LastResult() != nil
	}, 2*time.Second, 10*time.Millisecond)

	history, err := s.GetJobHistory("refresh")
	require.NoError(t, err)
	assert.True(t, history.LastResult().Success)
	assert.Equal(t, 1.0, history.SuccessRate())
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(logger.NewNop())

	err := s.RunJob("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	assert.Nil(t, h.LastResult())
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{JobName: "refresh", Success: true})
	h.AddResult(JobResult{JobName: "refresh", Success: false, Error: "boom"})

	require.NotNil(t, h.LastResult())
	assert.Equal(t, "boom", h.LastResult().Error)
	assert.Equal(t, 0.5, h.SuccessRate())
}

func TestJobHistory_Limit(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+10; i++ {
		h.AddResult(JobResult{JobName: "refresh", Success: true})
	}
	assert.Len(t, h.Results, historyLimit)
}
