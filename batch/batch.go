// Package batch holds the unit of training data (Batch), the in-memory
// batch registry (Store), and the two concurrency primitives the
// orchestrator uses to fan work out to a worker pool and fan completion
// back in: the task-set Manager and the work-queue Queue.
package batch

import "github.com/google/uuid"

// Item is one document: a sparse bag of (token_index, count) pairs
// referencing the token axis of whichever matrix the batch is processed
// against.
type Item struct {
	TokenIndex []int32
	Count      []float32
}

// Batch is an immutable, named bundle of items. Once registered in a
// Store it is never mutated; a new pass over the same corpus file
// produces a new Batch value sharing the same ID only if re-read
// identically.
type Batch struct {
	ID    uuid.UUID
	Items []Item
}

// New allocates a fresh batch ID.
func New(items []Item) *Batch {
	return &Batch{ID: uuid.New(), Items: items}
}
