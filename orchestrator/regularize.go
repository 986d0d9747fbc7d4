package orchestrator

import (
	"github.com/nkruglikov/bigartm/xerrors"
	"github.com/nkruglikov/bigartm/regularize"
)

// Regularize reads Φ at args.PwtSourceName and N at args.NwtSourceName,
// runs every configured regularize.Regularizer against them, and
// publishes the resulting R under args.RwtTargetName, reshaped from N.
// With no regularizers configured this produces an all-zero R, matching
// regularize.NoOp.
func (inst *Instance) Regularize(args RegularizeArgs) error {
	if args.PwtSourceName == "" || args.NwtSourceName == "" || args.RwtTargetName == "" {
		return xerrors.New(xerrors.InvalidOperation, "regularize: pwt_source, nwt_source and rwt_target are all required")
	}

	pwt, err := inst.Registry.GetOrFail(args.PwtSourceName)
	if err != nil {
		return err
	}
	nwt, err := inst.Registry.GetOrFail(args.NwtSourceName)
	if err != nil {
		return err
	}

	regularizers := inst.Regularizers
	if len(regularizers) == 0 {
		regularizers = []regularize.Regularizer{regularize.NoOp{}}
	}
	deltas, err := regularize.Apply(regularizers, pwt, nwt)
	if err != nil {
		return err
	}

	rwt := newReshapedN(args.RwtTargetName, nwt)
	for i, delta := range deltas {
		if err := rwt.SetRow(i, delta); err != nil {
			return err
		}
	}
	inst.Registry.Set(args.RwtTargetName, rwt)
	return nil
}
