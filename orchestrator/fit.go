package orchestrator

import (
	"context"

	"github.com/nkruglikov/bigartm/iter"
	"github.com/nkruglikov/bigartm/score"
)

// Names bundles the conventional matrix names FitOffline/FitOnlineSync/
// FitOnlineAsync read from MasterModelConfig (pwt_name, nwt_name) plus
// the rwt name this package always uses for the regularizer matrix.
type Names struct {
	Pwt string
	Nwt string
	Rwt string
}

// FitOffline runs `passes` full scans of batchFilenames, each pass
// running ProcessBatches → Regularize → Normalize and then archiving a
// score snapshot. It disposes rwt once all passes complete.
func (inst *Instance) FitOffline(ctx context.Context, names Names, passes int, batchFilenames []string) error {
	for pass := 0; pass < passes; pass++ {
		sm := score.NewManager()
		if _, err := inst.ProcessBatches(ctx, ProcessBatchesArgs{
			PwtSourceName:  names.Pwt,
			NwtTargetName:  names.Nwt,
			BatchFilenames: batchFilenames,
			ScoreManager:   sm,
		}); err != nil {
			return err
		}
		if err := inst.Regularize(RegularizeArgs{
			PwtSourceName: names.Pwt,
			NwtSourceName: names.Nwt,
			RwtTargetName: names.Rwt,
		}); err != nil {
			return err
		}
		if err := inst.Normalize(NormalizeArgs{
			PwtTargetName: names.Pwt,
			NwtSourceName: names.Nwt,
			RwtSourceName: names.Rwt,
		}); err != nil {
			return err
		}
		inst.ScoreTracker.Add(sm.RequestAllScores())
	}
	inst.Registry.Dispose(names.Rwt)
	return nil
}

// FitOnlineSync runs one update per online group: Process into a fresh
// nwt_hat, Merge it into nwt with (decay_weight, apply_weight), dispose
// nwt_hat, then Regularize/Normalize as usual. A score snapshot is
// archived after every update group.
func (inst *Instance) FitOnlineSync(ctx context.Context, names Names, it *iter.Online) error {
	it.Reset()
	for it.More() {
		group := it.Move()
		idx := it.UpdateIndex()
		nwtHat := inst.nextName("nwt_hat")

		sm := score.NewManager()
		if _, err := inst.ProcessBatches(ctx, ProcessBatchesArgs{
			PwtSourceName:  names.Pwt,
			NwtTargetName:  nwtHat,
			BatchFilenames: group.BatchFilename,
			BatchWeights:   group.BatchWeight,
			ScoreManager:   sm,
		}); err != nil {
			return err
		}

		if err := inst.Merge(MergeArgs{
			TargetName: names.Nwt,
			Sources:    []string{names.Nwt, nwtHat},
			Weights:    []float32{it.DecayWeightAt(idx), it.ApplyWeightAt(idx)},
		}); err != nil {
			return err
		}
		inst.Registry.Dispose(nwtHat)

		if err := inst.Regularize(RegularizeArgs{
			PwtSourceName: names.Pwt,
			NwtSourceName: names.Nwt,
			RwtTargetName: names.Rwt,
		}); err != nil {
			return err
		}
		if err := inst.Normalize(NormalizeArgs{
			PwtTargetName: names.Pwt,
			NwtSourceName: names.Nwt,
			RwtSourceName: names.Rwt,
		}); err != nil {
			return err
		}
		inst.ScoreTracker.Add(sm.RequestAllScores())
	}
	it.Reset()
	return nil
}

// FitOnlineAsync pipelines Process for update group i+1 against the
// currently-published Φ (pwt_active) while Merge/Regularize/Normalize
// for group i run, producing the next pwt_active under a fresh pwt_N
// name (or back to names.Pwt on the final step). See the distilled
// spec's §4.6 for the full rationale; op id is kept aligned with the
// iterator's update-group index per this module's resolved open
// question (§10 of the expanded spec).
func (inst *Instance) FitOnlineAsync(ctx context.Context, names Names, it *iter.Online) error {
	it.Reset()
	if !it.More() {
		return nil
	}

	pwtActive := names.Pwt
	nwtHatPrev := inst.nextName("nwt_hat")
	group := it.Move()
	prevResult, err := inst.ProcessBatches(ctx, ProcessBatchesArgs{
		PwtSourceName:  pwtActive,
		NwtTargetName:  nwtHatPrev,
		BatchFilenames: group.BatchFilename,
		BatchWeights:   group.BatchWeight,
		Async:          true,
	})
	if err != nil {
		return err
	}
	prevIdx := it.UpdateIndex()
	prevPwtActive := pwtActive

	for {
		last := !it.More()

		var nextResult ProcessBatchesResult
		var nwtHatNext string
		if !last {
			group = it.Move()
			nwtHatNext = inst.nextName("nwt_hat")
			nextResult, err = inst.ProcessBatches(ctx, ProcessBatchesArgs{
				PwtSourceName:  pwtActive,
				NwtTargetName:  nwtHatNext,
				BatchFilenames: group.BatchFilename,
				BatchWeights:   group.BatchWeight,
				Async:          true,
			})
			if err != nil {
				return err
			}
		}

		if err := prevResult.Manager.Await(ctx); err != nil {
			return err
		}

		if err := inst.Merge(MergeArgs{
			TargetName: names.Nwt,
			Sources:    []string{names.Nwt, nwtHatPrev},
			Weights:    []float32{it.DecayWeightAt(prevIdx), it.ApplyWeightAt(prevIdx)},
		}); err != nil {
			return err
		}
		inst.Registry.Dispose(nwtHatPrev)

		if err := inst.Regularize(RegularizeArgs{
			PwtSourceName: pwtActive,
			NwtSourceName: names.Nwt,
			RwtTargetName: names.Rwt,
		}); err != nil {
			return err
		}

		nextPwtName := names.Pwt
		if !last {
			nextPwtName = inst.nextName("pwt")
		}
		if err := inst.Normalize(NormalizeArgs{
			PwtTargetName: nextPwtName,
			NwtSourceName: names.Nwt,
			RwtSourceName: names.Rwt,
		}); err != nil {
			return err
		}

		if prevPwtActive != names.Pwt {
			inst.Registry.Dispose(prevPwtActive)
		}
		if last {
			// No further op was launched against pwtActive this iteration
			// (there is no next group), so unlike every prior step it is
			// not kept alive for an in-flight read: dispose it now too.
			if pwtActive != names.Pwt {
				inst.Registry.Dispose(pwtActive)
			}
			break
		}

		prevPwtActive = pwtActive
		pwtActive = nextPwtName
		nwtHatPrev = nwtHatNext
		prevResult = nextResult
		prevIdx = it.UpdateIndex()
	}

	it.Reset()
	return nil
}
