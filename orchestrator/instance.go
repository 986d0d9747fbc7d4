package orchestrator

import (
	"sync/atomic"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/cache"
	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/process"
	"github.com/nkruglikov/bigartm/regularize"
	"github.com/nkruglikov/bigartm/score"
	"github.com/nkruglikov/bigartm/xerrors"
)

// Instance is one training orchestrator: a matrix registry, a batch
// store, a worker pool draining a shared queue, and the reference
// algebra collaborators (process.Processor, regularize.Regularizer,
// score.Calculator) it was constructed with.
type Instance struct {
	Registry   *matrix.Registry
	BatchStore *batch.Store

	Processor     process.Processor
	Regularizers  []regularize.Regularizer
	ScoreCalcs    []*score.PerplexityCalculator
	InstanceCache *cache.Manager
	ScoreTracker  *score.Tracker

	InnerIterationsCount int
	CacheTheta           bool

	queue *batch.Queue
	pool  *batch.Pool

	nameCounter uint64
}

// Config bundles the constructor arguments an Instance needs beyond its
// worker count, grounded on the distilled spec's MasterModelConfig
// field list (see package config for the full typed struct; the
// orchestrator reads only the fields it needs directly).
type Config struct {
	Threads              int
	InnerIterationsCount int
	CacheTheta           bool
	Processor            process.Processor
	Regularizers         []regularize.Regularizer
	ScoreCalcs           []*score.PerplexityCalculator
}

// NewInstance starts cfg.Threads worker goroutines draining a fresh
// queue and returns a ready Instance. Threads <= 0 is accepted here
// (the zero-processors rejection is enforced per call, by
// ProcessBatches, matching S3).
func NewInstance(cfg Config) *Instance {
	inst := &Instance{
		Registry:             matrix.NewRegistry(),
		BatchStore:           batch.NewStore(),
		Processor:            cfg.Processor,
		Regularizers:         cfg.Regularizers,
		ScoreCalcs:           cfg.ScoreCalcs,
		InstanceCache:        cache.NewManager(),
		ScoreTracker:         score.NewTracker(),
		InnerIterationsCount: cfg.InnerIterationsCount,
		CacheTheta:           cfg.CacheTheta,
		queue:                batch.NewQueue(),
	}
	if cfg.Threads > 0 {
		inst.pool = batch.NewPool(cfg.Threads, inst.queue, inst.runTask)
	}
	return inst
}

// HasWorkers reports whether the pool was started with Threads > 0.
func (inst *Instance) HasWorkers() bool {
	return inst.pool != nil
}

// Dispose tears down the worker pool. The Instance must not be used
// afterward.
func (inst *Instance) Dispose() {
	if inst.pool != nil {
		inst.pool.Stop()
	}
}

// nextName returns a fresh, monotonically unique matrix name with the
// given prefix, the Go rendering of master_component.cc's StringIndex
// naming trick for pwt_active/pwt_N/nwt_hat_N handoffs.
func (inst *Instance) nextName(prefix string) string {
	n := atomic.AddUint64(&inst.nameCounter, 1)
	return prefixedName(prefix, n)
}

func prefixedName(prefix string, n uint64) string {
	return prefix + "_" + uitoa(n)
}

func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// runTask is the Worker callback passed to batch.NewPool: it runs the
// process.Processor over every document in the batch, deposits weighted
// contributions into the target N (if any), stashes Θ in the caches the
// ProcessorInput references, and reports a score contribution.
func (inst *Instance) runTask(item batch.ProcessorInput) error {
	phi, err := inst.Registry.GetOrFail(item.SourceMatrixName)
	if err != nil {
		return err
	}

	theta := make([][]float32, len(item.Batch.Items))
	var ptdw [][]float32
	contributions := make(map[int][]float32)
	for d, docItem := range item.Batch.Items {
		result, err := inst.Processor.Process(docItem, phi, inst.InnerIterationsCount)
		if err != nil {
			return err
		}
		theta[d] = result.Theta
		ptdw = append(ptdw, result.Ptdw...)
		for tokenIdx, delta := range result.Contribution {
			acc, ok := contributions[tokenIdx]
			if !ok {
				acc = make([]float32, len(delta))
				contributions[tokenIdx] = acc
			}
			for t, v := range delta {
				acc[t] += v * item.BatchWeight
			}
		}
	}

	if item.TargetMatrixName != "" {
		n, err := inst.Registry.GetOrFail(item.TargetMatrixName)
		if err != nil {
			return err
		}
		for tokenIdx, delta := range contributions {
			if err := n.IncreaseRow(tokenIdx, delta); err != nil {
				return err
			}
		}
	}

	if cm, ok := item.CacheManager.(*cache.Manager); ok && cm != nil {
		cm.InsertTheta(cache.ThetaSlice{BatchID: item.Batch.ID, DocTopic: theta})
		cm.InsertPtdw(cache.PtdwSlice{BatchID: item.Batch.ID, Values: ptdw})
	}

	if sm, ok := item.ScoreManager.(*score.Manager); ok && sm != nil && len(inst.ScoreCalcs) > 0 {
		for _, calc := range inst.ScoreCalcs {
			contrib, err := calc.Compute(phi, item.Batch, theta)
			if err != nil {
				continue
			}
			sm.Add(contrib)
		}
	}

	return nil
}

var errNoProcessors = xerrors.New(xerrors.InvalidOperation, "no processors")
