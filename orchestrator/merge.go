package orchestrator

import (
	"github.com/wangkuiyi/parallel"

	"github.com/nkruglikov/bigartm/internal/logging"
	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/xerrors"
)

// Merge computes target = Σ weight_i · source_i over the sources that
// are currently registered (a missing source is logged and skipped,
// not an error, unless none are present). args.TargetName may equal one
// of args.Sources: the read happens against the pointer held at call
// time, before the new target is published, so self-merge (folding an
// update into the running nwt) is safe under copy-on-replace semantics.
func (inst *Instance) Merge(args MergeArgs) error {
	if len(args.Sources) != len(args.Weights) {
		return xerrors.New(xerrors.InvalidOperation, "merge: %d sources but %d weights", len(args.Sources), len(args.Weights))
	}

	type present struct {
		phi    *matrix.Phi
		weight float32
	}
	var found []present
	for i, name := range args.Sources {
		phi, ok := inst.Registry.Get(name)
		if !ok {
			logging.Warn("merge: source matrix missing, skipping", logging.Fields{"name": name})
			continue
		}
		found = append(found, present{phi: phi, weight: args.Weights[i]})
	}
	if len(found) == 0 {
		return xerrors.New(xerrors.InvalidOperation, "merge: no source matrices present")
	}

	topicNames := args.TopicNames
	if len(topicNames) == 0 {
		topicNames = found[0].phi.TopicNames()
	}

	target := matrix.New(args.TargetName, topicNames)
	// Per-source retrieval and accumulation is embarrassingly parallel: each
	// source contributes independently and Phi.IncreaseRow locks per-row, so
	// concurrent sources never contend beyond an occasional shared row.
	err := parallel.For(0, len(found), 1, func(i int) error {
		f := found[i]
		external, err := f.phi.RetrieveExternal(matrix.RetrieveArgs{Layout: matrix.Dense})
		if err != nil {
			return err
		}
		return target.ApplyTopicModelOperation(external, f.weight)
	})
	if err != nil {
		return err
	}

	inst.Registry.Set(args.TargetName, target)
	return nil
}
