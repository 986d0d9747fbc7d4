package orchestrator

import "github.com/nkruglikov/bigartm/xerrors"

// Normalize builds a fresh Φ under args.PwtTargetName, reshaped from N
// at args.NwtSourceName, where each row is max(0, n+r) renormalized to
// sum to 1 (r defaults to 0 when args.RwtSourceName is empty). A row
// whose n+r sum is non-positive is left as all zero rather than
// dividing by zero, since that token simply never appeared.
func (inst *Instance) Normalize(args NormalizeArgs) error {
	if args.PwtTargetName == "" || args.NwtSourceName == "" {
		return xerrors.New(xerrors.InvalidOperation, "normalize: pwt_target and nwt_source are required")
	}

	nwt, err := inst.Registry.GetOrFail(args.NwtSourceName)
	if err != nil {
		return err
	}

	var rwt interface {
		Row(int) ([]float32, error)
	}
	if args.RwtSourceName != "" {
		r, err := inst.Registry.GetOrFail(args.RwtSourceName)
		if err != nil {
			return err
		}
		rwt = r
	}

	pwt := newReshapedN(args.PwtTargetName, nwt)
	for i := 0; i < nwt.TokenSize(); i++ {
		nRow, err := nwt.Row(i)
		if err != nil {
			return err
		}
		var rRow []float32
		if rwt != nil {
			rRow, err = rwt.Row(i)
			if err != nil {
				return err
			}
		}
		row := make([]float32, len(nRow))
		var sum float32
		for t, v := range nRow {
			val := v
			if t < len(rRow) {
				val += rRow[t]
			}
			if val < 0 {
				val = 0
			}
			row[t] = val
			sum += val
		}
		if sum > 0 {
			for t := range row {
				row[t] /= sum
			}
		}
		if err := pwt.SetRow(i, row); err != nil {
			return err
		}
	}

	inst.Registry.Set(args.PwtTargetName, pwt)
	return nil
}
