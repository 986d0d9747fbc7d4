// Package cache holds the per-batch Θ (and, when requested, p(t|d,w))
// slices a ProcessBatches call produces, keyed by batch ID, assembled
// into a full matrix on demand by concatenating slices in the order they
// were inserted.
package cache

import (
	"sync"

	"github.com/google/uuid"
)

// ThetaSlice is one batch's contribution: DocTopic[d] is the topic
// distribution (length topicSize) for the d-th document in the batch, in
// the batch's own item order.
type ThetaSlice struct {
	BatchID  uuid.UUID
	DocTopic [][]float32
}

// PtdwSlice is one batch's per-(document,word) posterior contribution,
// requested only when a caller asks for p(t|d,w) directly.
type PtdwSlice struct {
	BatchID uuid.UUID
	Values  [][]float32 // one row per (doc, word) occurrence, in item order
}

// Manager stores Θ and ptdw slices for one logical scope: either a
// single ProcessBatches call (discarded on return) or promoted to an
// Instance-level cache when cache_theta is configured.
type Manager struct {
	mu    sync.Mutex
	theta map[uuid.UUID]ThetaSlice
	ptdw  map[uuid.UUID]PtdwSlice
	order []uuid.UUID
}

// NewManager returns an empty cache.
func NewManager() *Manager {
	return &Manager{
		theta: make(map[uuid.UUID]ThetaSlice),
		ptdw:  make(map[uuid.UUID]PtdwSlice),
	}
}

// InsertTheta records (or overwrites) the Θ slice for a batch.
func (m *Manager) InsertTheta(slice ThetaSlice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.theta[slice.BatchID]; !exists {
		m.order = append(m.order, slice.BatchID)
	}
	m.theta[slice.BatchID] = slice
}

// InsertPtdw records (or overwrites) the ptdw slice for a batch.
func (m *Manager) InsertPtdw(slice PtdwSlice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ptdw[slice.BatchID] = slice
}

// RequestTheta concatenates every Θ slice in insertion order.
func (m *Manager) RequestTheta() [][]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]float32
	for _, id := range m.order {
		out = append(out, m.theta[id].DocTopic...)
	}
	return out
}

// RequestThetaForBatch returns the Θ slice for one batch, if present.
func (m *Manager) RequestThetaForBatch(batchID uuid.UUID) ([][]float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slice, ok := m.theta[batchID]
	if !ok {
		return nil, false
	}
	return slice.DocTopic, true
}

// RequestPtdw returns the ptdw slice for one batch, if present.
func (m *Manager) RequestPtdw(batchID uuid.UUID) ([][]float32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slice, ok := m.ptdw[batchID]
	if !ok {
		return nil, false
	}
	return slice.Values, true
}

// Clear empties the cache. Explicit only: nothing evicts on its own.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theta = make(map[uuid.UUID]ThetaSlice)
	m.ptdw = make(map[uuid.UUID]PtdwSlice)
	m.order = nil
}
