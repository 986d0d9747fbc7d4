// Package regularize implements the Regularize phase: producing an R
// matrix contribution added to N before Normalize. DirichletPrior is
// grounded in the teacher's core/gibbs/optimizer.go Minka fixed-point
// topic-prior estimation, simplified from a re-estimated hyperparameter
// to a fixed smoothing/sparsing vector — re-deriving the prior itself
// via the digamma recurrence is a numerical-kernel concern this module
// does not own (see package process).
package regularize

import "github.com/nkruglikov/bigartm/matrix"

// Regularizer computes, for one token row, the additive adjustment to
// apply to N before Normalize divides by the row sum.
type Regularizer interface {
	Name() string
	// Apply returns the per-topic delta for one token row of n (already
	// merged from all batches), given the corresponding row of the
	// current Φ (pre-update).
	Apply(phiRow, nRow []float32) []float32
}

// NoOp applies no adjustment; it is the default when a matrix has no
// regularizer configured.
type NoOp struct{}

func (NoOp) Name() string { return "noop" }

func (NoOp) Apply(phiRow, nRow []float32) []float32 {
	return make([]float32, len(nRow))
}

// DirichletPrior adds Tau*(Beta[t]-1) to topic t of every token row,
// the standard additive-regularization rendering of a Dirichlet prior
// over Φ's columns: Beta[t] > 1 smooths topic t, Beta[t] < 1 sparsifies
// it, and Tau scales the regularizer's overall strength relative to the
// likelihood term N already carries.
type DirichletPrior struct {
	Beta []float64
	Tau  float64
}

func (d *DirichletPrior) Name() string { return "dirichlet_prior" }

func (d *DirichletPrior) Apply(phiRow, nRow []float32) []float32 {
	delta := make([]float32, len(nRow))
	for t := range delta {
		beta := 0.0
		if t < len(d.Beta) {
			beta = d.Beta[t]
		}
		delta[t] = float32(d.Tau * (beta - 1))
	}
	return delta
}

// Apply runs every regularizer against a Φ/N pair row by row and
// returns the summed delta per token, in phi's token order. Negative
// results are left for Normalize to clip, matching the teacher's own
// approach of normalizing only after all additive terms are folded in.
func Apply(regularizers []Regularizer, phi, n *matrix.Phi) ([][]float32, error) {
	out := make([][]float32, phi.TokenSize())
	for i := 0; i < phi.TokenSize(); i++ {
		phiRow, err := phi.Row(i)
		if err != nil {
			return nil, err
		}
		nRow, err := n.Row(i)
		if err != nil {
			return nil, err
		}
		sum := make([]float32, len(nRow))
		for _, reg := range regularizers {
			delta := reg.Apply(phiRow, nRow)
			for t := range sum {
				if t < len(delta) {
					sum[t] += delta[t]
				}
			}
		}
		out[i] = sum
	}
	return out, nil
}
