package batch

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the in-memory batch registry: a name (the batch's uuid, or a
// filename for disk-backed corpora) maps to its Batch. A filename is a
// plain key: Store never reads from disk, and a batch is found by
// filename only after AddFile has registered it under that name.
type Store struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Batch
	byFile map[string]*Batch
}

// NewStore returns an empty batch store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[uuid.UUID]*Batch),
		byFile: make(map[string]*Batch),
	}
}

// Add registers b under its own ID.
func (s *Store) Add(b *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[b.ID] = b
}

// AddFile registers b under a filename, in addition to its ID, so a
// caller resolving a batch_filename can get back to the same Batch an
// in-memory op already holds.
func (s *Store) AddFile(filename string, b *Batch) {
	s.Add(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byFile[filename] = b
}

// Get returns the batch registered under id.
func (s *Store) Get(id uuid.UUID) (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[id]
	return b, ok
}

// GetFile returns the batch registered under filename.
func (s *Store) GetFile(filename string) (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byFile[filename]
	return b, ok
}

// Remove drops a batch from the in-memory store (e.g. once disposed from
// the working set of an online pass).
func (s *Store) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}
