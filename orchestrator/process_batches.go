package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/cache"
	"github.com/nkruglikov/bigartm/internal/logging"
	"github.com/nkruglikov/bigartm/score"
	"github.com/nkruglikov/bigartm/xerrors"
)

// ProcessBatches enqueues one E-step per batch against args.PwtSourceName
// and, if args.NwtTargetName is set, accumulates contributions into a
// freshly reshaped N matrix under that name. See types.go for the full
// argument/result shape and the distilled spec's §4.6 for the
// theta_matrix_type capture table this method implements.
func (inst *Instance) ProcessBatches(ctx context.Context, args ProcessBatchesArgs) (ProcessBatchesResult, error) {
	if !inst.HasWorkers() {
		return ProcessBatchesResult{}, errNoProcessors
	}

	pwt, err := inst.Registry.GetOrFail(args.PwtSourceName)
	if err != nil {
		return ProcessBatchesResult{}, err
	}

	if args.NwtTargetName != "" {
		if args.NwtTargetName == args.PwtSourceName {
			return ProcessBatchesResult{}, xerrors.New(xerrors.InvalidOperation,
				"nwt_target %q must differ from pwt_source", args.NwtTargetName)
		}
		nwt := newReshapedN(args.NwtTargetName, pwt)
		inst.Registry.Set(args.NwtTargetName, nwt)
	}

	if args.Async && args.ThetaMatrixType != ThetaNone {
		return ProcessBatchesResult{}, xerrors.New(xerrors.InvalidOperation,
			"async ProcessBatches requires theta_matrix_type=None")
	}

	var localCache *cache.Manager
	switch args.ThetaMatrixType {
	case ThetaDense, ThetaSparse, ThetaDensePtdw, ThetaSparsePtdw:
		localCache = cache.NewManager()
	case ThetaCache:
		if inst.CacheTheta {
			localCache = inst.InstanceCache
		}
	}

	batches, weights, err := inst.resolveBatches(args)
	if err != nil {
		return ProcessBatchesResult{}, err
	}

	mgr := batch.NewManager()
	taskIDs := make([]uuid.UUID, 0, len(batches))
	logging.Info("process_batches enqueue", logging.Fields{
		"pwt_source": args.PwtSourceName,
		"nwt_target": args.NwtTargetName,
		"batches":    len(batches),
		"async":      args.Async,
	})
	for i, b := range batches {
		taskID := uuid.New()
		mgr.Add(taskID)
		taskIDs = append(taskIDs, taskID)
		inst.queue.Push(batch.ProcessorInput{
			TaskID:           taskID,
			SourceMatrixName: args.PwtSourceName,
			TargetMatrixName: args.NwtTargetName,
			Batch:            b,
			BatchWeight:      weights[i],
			Manager:          mgr,
			CacheManager:     cacheHandle(localCache),
			ScoreManager:     scoreHandle(args.ScoreManager),
		})
	}

	result := ProcessBatchesResult{Manager: mgr, CacheManager: localCache, TaskIDs: taskIDs}
	if args.Async {
		return result, nil
	}

	if err := mgr.Await(ctx); err != nil {
		return result, err
	}
	logging.Info("process_batches drained", logging.Fields{
		"pwt_source": args.PwtSourceName,
		"batches":    len(batches),
	})
	return result, nil
}

// resolveBatches concatenates filename-resolved batches (in input order)
// followed by inline batches (in input order), pairing BatchWeights
// positionally across the combined sequence.
func (inst *Instance) resolveBatches(args ProcessBatchesArgs) ([]*batch.Batch, []float32, error) {
	total := len(args.BatchFilenames) + len(args.InlineBatches)
	batches := make([]*batch.Batch, 0, total)
	for _, filename := range args.BatchFilenames {
		b, ok := inst.BatchStore.GetFile(filename)
		if !ok {
			return nil, nil, xerrors.New(xerrors.InvalidOperation, "unresolved batch filename %q", filename)
		}
		batches = append(batches, b)
	}
	batches = append(batches, args.InlineBatches...)

	weights := make([]float32, total)
	for i := range weights {
		if i < len(args.BatchWeights) {
			weights[i] = args.BatchWeights[i]
		} else {
			weights[i] = 1
		}
	}
	return batches, weights, nil
}

func cacheHandle(cm *cache.Manager) interface{} {
	if cm == nil {
		return nil
	}
	return cm
}

func scoreHandle(sm *score.Manager) interface{} {
	if sm == nil {
		return nil
	}
	return sm
}
