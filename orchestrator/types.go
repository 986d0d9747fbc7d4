// Package orchestrator sequences the four algebraic phases of one
// training iteration (Process, Merge, Regularize, Normalize) across a
// named matrix registry and a worker pool, and drives the three
// training schedules built on top of them: FitOffline, FitOnlineSync,
// FitOnlineAsync. It is the direct Go translation of
// master_component.cc's RequestProcessBatchesImpl / MergeModel /
// RegularizeModel / NormalizeModel / ArtmExecutor.
package orchestrator

import (
	"github.com/google/uuid"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/cache"
	"github.com/nkruglikov/bigartm/score"
)

// ThetaMatrixType selects what, if anything, a ProcessBatches call
// captures about each document's topic distribution.
type ThetaMatrixType int

const (
	ThetaNone ThetaMatrixType = iota
	ThetaCache
	ThetaDense
	ThetaSparse
	ThetaDensePtdw
	ThetaSparsePtdw
)

// ProcessBatchesArgs is the validated input to ProcessBatches.
type ProcessBatchesArgs struct {
	PwtSourceName string
	NwtTargetName string // empty means read-only (Transform-style)

	BatchFilenames []string // resolved through the instance's batch.Store
	InlineBatches  []*batch.Batch

	// BatchWeights is positional against BatchFilenames followed by
	// InlineBatches, the same concatenated order batches are enqueued in.
	BatchWeights []float32

	ThetaMatrixType ThetaMatrixType
	Async           bool

	// ScoreManager receives a Contribution per batch if non-nil.
	ScoreManager *score.Manager
}

// ProcessBatchesResult is what ProcessBatches returns.
type ProcessBatchesResult struct {
	Manager *batch.Manager
	// CacheManager is the cache workers wrote Θ into: a fresh local cache
	// for the Dense/Sparse/Ptdw types, the instance cache for ThetaCache
	// when CacheTheta is set, and nil otherwise.
	CacheManager *cache.Manager
	TaskIDs      []uuid.UUID
}

// MergeArgs is the input to Merge.
type MergeArgs struct {
	TargetName string
	Sources    []string
	Weights    []float32
	// TopicNames overrides the target's topic axis; empty means "use
	// the first present source's topic_names".
	TopicNames []string
}

// RegularizeArgs is the input to Regularize.
type RegularizeArgs struct {
	PwtSourceName string
	NwtSourceName string
	RwtTargetName string
}

// NormalizeArgs is the input to Normalize.
type NormalizeArgs struct {
	PwtTargetName string
	NwtSourceName string
	RwtSourceName string // optional
}
