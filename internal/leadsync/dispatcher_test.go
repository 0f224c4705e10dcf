package leadsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"leadsync_backend/platform/logger"
)

type countingEnqueuer struct {
	mu     sync.Mutex
	counts []int
}

func (e *countingEnqueuer) EnqueueSync(_ context.Context, count int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counts = append(e.counts, count)
	return "job-1", nil
}

func (e *countingEnqueuer) snapshot() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.counts...)
}

func TestDispatcherEnqueuesOnInterval(t *testing.T) {
	enqueuer := &countingEnqueuer{}
	dispatcher := NewDispatcher(enqueuer, 10*time.Millisecond, 10, logger.New("development"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(enqueuer.snapshot()) < 2 {
		select {
		case <-deadline:
			t.Fatal("dispatcher did not enqueue within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	for _, count := range enqueuer.snapshot() {
		if count != 10 {
			t.Fatalf("scheduled sync must always request 10 leads, got %d", count)
		}
	}
}
