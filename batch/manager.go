package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Manager tracks the set of outstanding task IDs for one logical
// operation (one ProcessBatches call). Workers call Remove as they
// finish a task, successfully or not; the orchestrator waits for the set
// to drain before running Merge.
type Manager struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending map[uuid.UUID]struct{}
}

// NewManager returns a Manager with no outstanding tasks.
func NewManager() *Manager {
	m := &Manager{pending: make(map[uuid.UUID]struct{})}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Add registers a task as outstanding.
func (m *Manager) Add(taskID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[taskID] = struct{}{}
}

// Remove marks a task as complete and wakes any waiter. Removing an
// unknown or already-removed ID is a no-op, so a worker's completion
// report is idempotent.
func (m *Manager) Remove(taskID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, taskID)
	m.cond.Broadcast()
}

// IsEverythingProcessed reports whether the outstanding set is empty.
func (m *Manager) IsEverythingProcessed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending) == 0
}

// Outstanding returns the number of tasks still pending.
func (m *Manager) Outstanding() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Await blocks until every registered task has been removed or ctx is
// canceled. It is built on sync.Cond so a waiter parks instead of
// busy-spinning; a side goroutine turns ctx cancellation into a
// Broadcast so the wait is still cooperative-cancelable.
func (m *Manager) Await(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			m.cond.Broadcast()
			m.mu.Unlock()
		case <-stop:
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.cond.Wait()
	}
	return ctx.Err()
}
