package matrix

import (
	"sync"

	"github.com/wangkuiyi/parallel"

	"github.com/nkruglikov/bigartm/xerrors"
)

// Registry is the named matrix store Phi/N/R live in. A name always maps
// to a complete, internally-consistent Phi: writers publish a new Phi
// value under Set rather than mutating a published one's token axis out
// from under a reader holding the old pointer (copy-on-replace). Row
// mutation in place, via IncreaseRow, is still allowed and is how a
// Process/Merge pipeline accumulates into the current N without a swap
// per token.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Phi
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Phi)}
}

// Get returns the matrix under name, if present.
func (r *Registry) Get(name string) (*Phi, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.entries[name]
	return m, ok
}

// GetOrFail returns the matrix under name, or a MissingModel error.
func (r *Registry) GetOrFail(name string) (*Phi, error) {
	m, ok := r.Get(name)
	if !ok {
		return nil, xerrors.New(xerrors.MissingModel, "matrix %q is not registered", name)
	}
	return m, nil
}

// Set publishes m under name, replacing whatever was there. Existing
// holders of the old *Phi keep reading a consistent, unchanged snapshot.
func (r *Registry) Set(name string, m *Phi) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = m
}

// Dispose removes name from the registry.
func (r *Registry) Dispose(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// DisposeAll removes every name in names, the bounded-fan-out shape a
// caller reaches for when tearing down a batch of intermediate matrices
// at once (e.g. the stale pwt_i/nwt_hat_i names FitOnlineAsync leaves
// behind), mirroring the teacher's parallel.For-driven closeAll.
func (r *Registry) DisposeAll(names []string) error {
	return parallel.For(0, len(names), 1, func(i int) error {
		r.Dispose(names[i])
		return nil
	})
}

// Names returns the currently registered matrix names, in no particular
// order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	return out
}
