package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sports-league/internal/platform/logging"
)

func TestScheduler_RunsJobImmediatelyAndRepeats(t *testing.T) {
	t.Parallel()

	s, err := New(logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })

	var runs atomic.Int32
	done := make(chan struct{})
	err = s.Every("refresh", 20*time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 2 {
			close(done)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("register job: %v", err)
	}

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("job ran %d times before timeout", runs.Load())
	}

	if err := s.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func TestScheduler_FailingJobKeepsRunning(t *testing.T) {
	t.Parallel()

	s, err := New(nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })

	var runs atomic.Int32
	done := make(chan struct{})
	err = s.Every("flaky", 20*time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 2 {
			close(done)
		}
		return errors.New("database unavailable")
	})
	if err != nil {
		t.Fatalf("register job: %v", err)
	}

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("failing job stopped after %d runs", runs.Load())
	}
}

func TestScheduler_EveryValidation(t *testing.T) {
	t.Parallel()

	s, err := New(logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })

	noop := func(context.Context) error { return nil }
	tests := []struct {
		name     string
		jobName  string
		interval time.Duration
		task     Task
		want     error
	}{
		{name: "empty name", jobName: "  ", interval: time.Minute, task: noop, want: ErrEmptyJobName},
		{name: "zero interval", jobName: "job", interval: 0, task: noop, want: ErrInvalidInterval},
		{name: "nil task", jobName: "job", interval: time.Minute, task: nil, want: ErrNilTask},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Every(tc.jobName, tc.interval, tc.task); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
