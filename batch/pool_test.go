package batch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPoolDrainsQueueAndMarksComplete(t *testing.T) {
	queue := NewQueue()
	mgr := NewManager()

	const n = 50
	var mu sync.Mutex
	seen := make(map[uuid.UUID]bool, n)

	for i := 0; i < n; i++ {
		id := uuid.New()
		mgr.Add(id)
		queue.Push(ProcessorInput{TaskID: id, Manager: mgr})
	}

	pool := NewPool(4, queue, func(item ProcessorInput) error {
		mu.Lock()
		seen[item.TaskID] = true
		mu.Unlock()
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := mgr.Await(ctx); err != nil {
		t.Fatalf("Await: %v", err)
	}
	pool.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != n {
		t.Errorf("expected %d items processed, got %d", n, len(seen))
	}
}

func TestPoolReportsFailedTaskAsComplete(t *testing.T) {
	queue := NewQueue()
	mgr := NewManager()
	id := uuid.New()
	mgr.Add(id)
	queue.Push(ProcessorInput{TaskID: id, Manager: mgr})

	pool := NewPool(1, queue, func(item ProcessorInput) error {
		return errBoom
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := mgr.Await(ctx); err != nil {
		t.Fatalf("Await: %v", err)
	}
	pool.Stop()
}

var errBoom = errTest{}

type errTest struct{}

func (errTest) Error() string { return "boom" }
