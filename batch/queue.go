package batch

import (
	"sync"

	"github.com/google/uuid"
)

// ProcessorInput is one work unit a pool worker dequeues and hands to a
// process.Processor. SourceMatrix/TargetMatrix/CacheManager/ScoreManager
// are named by string/interface{} here rather than importing package
// matrix/cache/score directly, so this package stays a leaf the
// higher-level packages depend on rather than the reverse.
type ProcessorInput struct {
	TaskID uuid.UUID

	SourceMatrixName string
	TargetMatrixName string // empty for a Transform-style read-only pass

	Batch       *Batch
	BatchWeight float32

	Manager *Manager

	// CacheManager, ScoreManager and Args are opaque handles the pool's
	// Worker callback (orchestrator's runTask) type-asserts back to their
	// concrete types; kept as interface{} to avoid an import cycle
	// between batch and cache/score/process.
	CacheManager interface{}
	ScoreManager interface{}
	Args         interface{}
}

// Queue is an unbounded, thread-safe FIFO of ProcessorInput, drained by a
// pool of workers. It generalizes the teacher's parallel.For bounded
// fan-out into a long-lived pool draining a shared, growable backlog.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []ProcessorInput
	closed bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends an item and wakes one waiting worker.
func (q *Queue) Push(item ProcessorInput) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
	q.cond.Signal()
}

// Pop blocks until an item is available or the queue is closed, in which
// case it returns (ProcessorInput{}, false).
func (q *Queue) Pop() (ProcessorInput, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return ProcessorInput{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Close wakes every blocked worker so they can exit once the queue
// drains; no further Push calls are expected after Close.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Len reports the number of items currently queued (for tests/metrics).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
