package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingFlusher struct {
	calls atomic.Int32
}

func (f *countingFlusher) FlushPending(_ context.Context) int {
	f.calls.Add(1)
	return 1
}

func TestNew(t *testing.T) {
	t.Run("rejects malformed schedule", func(t *testing.T) {
		if _, err := New("every now and then", &countingFlusher{}); err == nil {
			t.Error("Expected error for malformed schedule")
		}
	})

	t.Run("accepts descriptors", func(t *testing.T) {
		if _, err := New("@every 30s", &countingFlusher{}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestScheduler_Resync(t *testing.T) {
	t.Run("delegates to the flusher", func(t *testing.T) {
		f := &countingFlusher{}
		s, err := New("@every 1h", f)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		s.Resync()

		if got := f.calls.Load(); got != 1 {
			t.Errorf("Expected 1 flush, got %d", got)
		}
	})

	t.Run("runs on schedule and stops cleanly", func(t *testing.T) {
		f := &countingFlusher{}
		s, err := New("@every 1s", f)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		s.Start()
		deadline := time.Now().Add(5 * time.Second)
		for f.calls.Load() == 0 && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Stop(ctx); err != nil {
			t.Errorf("Stop() returned unexpected error: %v", err)
		}

		if f.calls.Load() == 0 {
			t.Error("Expected the scheduled job to run at least once")
		}
	})
}
