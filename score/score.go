// Package score implements the accumulation side of model scoring: a
// Calculator interface workers invoke per batch, a Manager that sums
// per-batch contributions into a running value, and a Tracker that
// archives a Manager snapshot once per pass for later retrieval.
package score

import "sync"

// Calculator is implemented by a reference scoring function such as
// PerplexityCalculator. Value/Weight follow the log-likelihood /
// word-count convention, so batch contributions combine by plain
// summation regardless of batch size. A Manager keeps the two sums
// apart; the per-word score is Value divided by Weight, which callers
// compute themselves.
type Calculator interface {
	Name() string
}

// Contribution is what a worker reports back to a Manager after scoring
// one batch.
type Contribution struct {
	Name   string
	Value  float64
	Weight float64
}

// Manager accumulates Value/Weight contributions per score name as
// workers complete batches during one operation.
type Manager struct {
	mu     sync.Mutex
	value  map[string]float64
	weight map[string]float64
}

// NewManager returns an empty score manager.
func NewManager() *Manager {
	return &Manager{value: make(map[string]float64), weight: make(map[string]float64)}
}

// Add folds one batch's contribution into the running total.
func (m *Manager) Add(c Contribution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value[c.Name] += c.Value
	m.weight[c.Name] += c.Weight
}

// RequestScore returns the cumulative value for name (the sum of all
// Value contributions; callers needing perplexity divide by the
// matching weight themselves via RequestWeight, mirroring how the
// teacher's Evaluator.Perplexity returns (logl, docLen) unreduced).
func (m *Manager) RequestScore(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.value[name]
	return v, ok
}

// RequestWeight returns the cumulative weight (e.g. total token count)
// backing a score name.
func (m *Manager) RequestWeight(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.weight[name]
	return w, ok
}

// RequestAllScores enumerates every score name this manager has seen.
func (m *Manager) RequestAllScores() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.value))
	for name, v := range m.value {
		out[name] = v
	}
	return out
}

// Clear resets the manager to empty, used between ProcessBatches calls
// that don't want scores to carry over.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = make(map[string]float64)
	m.weight = make(map[string]float64)
}

// Tracker archives one Manager snapshot per training pass.
type Tracker struct {
	mu      sync.Mutex
	history []map[string]float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add appends a snapshot (typically m.RequestAllScores() at pass end).
func (t *Tracker) Add(snapshot map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, snapshot)
}

// History returns every snapshot recorded so far, oldest first.
func (t *Tracker) History() []map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]map[string]float64, len(t.history))
	copy(out, t.history)
	return out
}

// Clear drops all recorded history.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = nil
}
