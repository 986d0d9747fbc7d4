// Package master is the thin lifecycle/API layer a caller embeds: it
// owns one orchestrator.Instance plus the configuration and dictionary
// it was built from, and exposes the Initialize/Attach/Overwrite/
// Export/Import/Dispose/Reconfigure lifecycle plus the Request/Transform
// call surface, the direct Go rendering of master_component.cc's
// MasterComponent.
package master

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/config"
	"github.com/nkruglikov/bigartm/dictionary"
	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/orchestrator"
	"github.com/nkruglikov/bigartm/process"
	"github.com/nkruglikov/bigartm/regularize"
	"github.com/nkruglikov/bigartm/score"
	"github.com/nkruglikov/bigartm/xerrors"
)

// Instance is one embeddable model: an orchestrator.Instance (registry,
// batch store, worker pool) plus the MasterModelConfig it was configured
// with and the Dictionary it was last Initialize'd from.
type Instance struct {
	mu sync.Mutex

	orch *orchestrator.Instance
	cfg  config.MasterModelConfig
	dict *dictionary.Dictionary
}

// NewInstance validates cfg, builds the regularizers/score calculators
// it names, and starts the underlying orchestrator.Instance's worker
// pool.
func NewInstance(cfg config.MasterModelConfig) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	inst := &Instance{cfg: cfg}
	inst.orch = orchestrator.NewInstance(orchestrator.Config{
		Threads:              cfg.Threads,
		InnerIterationsCount: cfg.InnerIterationsCount,
		CacheTheta:           cfg.CacheTheta,
		Processor:            process.NewReferenceProcessor(),
		Regularizers:         buildRegularizers(cfg),
		ScoreCalcs:           buildScoreCalcs(cfg),
	})
	return inst, nil
}

func buildRegularizers(cfg config.MasterModelConfig) []regularize.Regularizer {
	out := make([]regularize.Regularizer, 0, len(cfg.RegularizerConfig))
	for _, rc := range cfg.RegularizerConfig {
		switch rc.Kind {
		case "dirichlet_prior":
			out = append(out, &regularize.DirichletPrior{Beta: rc.Beta, Tau: rc.Tau})
		default:
			out = append(out, regularize.NoOp{})
		}
	}
	return out
}

func buildScoreCalcs(cfg config.MasterModelConfig) []*score.PerplexityCalculator {
	out := make([]*score.PerplexityCalculator, 0, len(cfg.ScoreConfig))
	for range cfg.ScoreConfig {
		out = append(out, score.NewPerplexityCalculator())
	}
	return out
}

// Registry exposes the underlying matrix registry for callers that need
// direct access (e.g. tests, or a request variant this package does not
// yet enumerate).
func (m *Instance) Registry() *matrix.Registry { return m.orch.Registry }

// BatchStore exposes the underlying batch store.
func (m *Instance) BatchStore() *batch.Store { return m.orch.BatchStore }

// Orchestrator exposes the underlying orchestrator.Instance, for
// FitOffline/FitOnlineSync/FitOnlineAsync and the four algebraic phases.
func (m *Instance) Orchestrator() *orchestrator.Instance { return m.orch }

// Dispose tears down the worker pool. The Instance must not be used
// afterward.
func (m *Instance) Dispose() {
	m.orch.Dispose()
}

// Reconfigure replaces the config and recreates the regularizers/score
// calculators from it. The worker pool and registry are left untouched.
func (m *Instance) Reconfigure(cfg config.MasterModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	m.orch.Regularizers = buildRegularizers(cfg)
	m.orch.ScoreCalcs = buildScoreCalcs(cfg)
	return nil
}

// Config returns a copy of the current configuration.
func (m *Instance) Config() config.MasterModelConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Initialize allocates a fresh Φ over dict's tokens under the
// configured pwt_name, filling each row with a deterministic PRNG seeded
// by (seed, token) and normalizing it to sum to 1, then registers it.
// The per-token seed follows the teacher's Interpret/loader_service
// pattern of hashing a document's content into an int64 rand seed
// (hash/fnv + math/rand), applied here to a token's keyword/class_id
// instead of a document's word list so that re-Initializing from the
// same dictionary and seed is fully reproducible regardless of
// iteration order.
func (m *Instance) Initialize(dict *dictionary.Dictionary, seed int64) error {
	if dict.Len() == 0 {
		return xerrors.New(xerrors.InvalidOperation, "initialize: dictionary is empty")
	}
	m.mu.Lock()
	cfg := m.cfg
	m.mu.Unlock()

	pwt := matrix.New(cfg.PwtName, cfg.TopicName)
	for _, tok := range dict.Tokens() {
		idx, err := pwt.AddToken(tok)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(tokenSeed(seed, tok)))
		row := make([]float32, len(cfg.TopicName))
		var sum float32
		for t := range row {
			v := float32(rng.Float64())
			row[t] = v
			sum += v
		}
		if sum > 0 {
			for t := range row {
				row[t] /= sum
			}
		}
		if err := pwt.SetRow(idx, row); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.dict = dict
	m.mu.Unlock()
	m.orch.Registry.Set(cfg.PwtName, pwt)
	return nil
}

func tokenSeed(seed int64, tok matrix.Token) int64 {
	h := fnv.New64()
	h.Write([]byte(tok.Keyword))
	h.Write([]byte{0})
	h.Write([]byte(tok.ClassID))
	return int64(h.Sum64()) ^ seed
}

// Dictionary returns the dictionary this instance was last Initialize'd
// from, or nil if it has not been.
func (m *Instance) Dictionary() *dictionary.Dictionary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dict
}

// Transform runs ProcessBatches with the configured pwt as source and a
// fresh score manager, matching the distilled spec's "Transform =
// ProcessBatches against pwt with score caches cleared first".
func (m *Instance) Transform(ctx context.Context, args orchestrator.ProcessBatchesArgs) (orchestrator.ProcessBatchesResult, error) {
	m.mu.Lock()
	args.PwtSourceName = m.cfg.PwtName
	m.mu.Unlock()
	args.ScoreManager = score.NewManager()
	return m.orch.ProcessBatches(ctx, args)
}

// GetTopicModel retrieves the current Φ (or any named matrix) in the
// requested external layout.
func (m *Instance) GetTopicModel(name string, layout matrix.Layout) (*matrix.ExternalTopicModel, error) {
	phi, err := m.orch.Registry.GetOrFail(name)
	if err != nil {
		return nil, err
	}
	return phi.RetrieveExternal(matrix.RetrieveArgs{Layout: layout})
}

// GetDictionary returns the dictionary this instance holds.
func (m *Instance) GetDictionary() (*dictionary.Dictionary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dict == nil {
		return nil, xerrors.New(xerrors.InvalidOperation, "no dictionary: Initialize has not been called")
	}
	return m.dict, nil
}

// GetThetaMatrix retrieves the instance cache's full Θ matrix,
// concatenated in batch-insertion order (populated only when
// cache_theta is set and ProcessBatches ran with theta_matrix_type
// Cache).
func (m *Instance) GetThetaMatrix() [][]float32 {
	return m.orch.InstanceCache.RequestTheta()
}

// GetThetaMatrixForBatch retrieves one batch's cached Θ slice.
func (m *Instance) GetThetaMatrixForBatch(batchID uuid.UUID) ([][]float32, bool) {
	return m.orch.InstanceCache.RequestThetaForBatch(batchID)
}

// GetScoreValue returns a single score's cumulative value from mgr.
func (m *Instance) GetScoreValue(mgr *score.Manager, name string) (float64, error) {
	v, ok := mgr.RequestScore(name)
	if !ok {
		return 0, xerrors.New(xerrors.MissingModel, "score %q has no contributions", name)
	}
	return v, nil
}

// GetScoreArray returns the tracker's full per-pass history for a score,
// matching GetScoreArray's teacher-side name (one value per pass/step,
// in the order Add was called).
func (m *Instance) GetScoreArray(name string) []float64 {
	history := m.orch.ScoreTracker.History()
	out := make([]float64, 0, len(history))
	for _, snapshot := range history {
		out = append(out, snapshot[name])
	}
	return out
}

// MasterComponentInfo is the result of GetMasterComponentInfo: a small,
// serializable status snapshot instead of the teacher's full protobuf
// message.
type MasterComponentInfo struct {
	RegisteredMatrices []string
	HasDictionary      bool
	Threads            int
	CacheTheta         bool
}

// GetMasterComponentInfo reports the instance's current status.
func (m *Instance) GetMasterComponentInfo() MasterComponentInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MasterComponentInfo{
		RegisteredMatrices: m.orch.Registry.Names(),
		HasDictionary:      m.dict != nil,
		Threads:            m.cfg.Threads,
		CacheTheta:         m.cfg.CacheTheta,
	}
}
