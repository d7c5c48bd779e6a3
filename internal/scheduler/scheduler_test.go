package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 1, j.err
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRun_CallsJob(t *testing.T) {
	s := New(quiet())
	job := &countingJob{}

	s.Run("expire", job)
	s.Run("expire", &countingJob{err: errors.New("down")})

	assert.Equal(t, int32(1), job.calls.Load())
}

func TestAdd_RejectsBadSpec(t *testing.T) {
	s := New(quiet())
	assert.Error(t, s.Add("expire", "not a spec", &countingJob{}))
	assert.NoError(t, s.Add("expire", "@every 15m", &countingJob{}))

	s.Start()
	s.Stop(context.Background())
}
