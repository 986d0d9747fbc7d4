// Package process implements the per-document E-step a worker runs
// against one batch item: iteratively refining a document's topic
// distribution against a fixed Φ, then depositing weighted token/topic
// contributions into the target N matrix. The numerical recurrence is
// out of this module's scope per its own stated boundary (the kernel
// itself is never something the orchestrator must get right — only
// that it is invoked the right number of times, against the right
// matrices, and that its output lands in the right place); the
// reference processor below exists so the rest of the module has
// something real to exercise and test against, adapted from the
// teacher's bucket/coefficient caching idiom in core/gibbs/sampler.go
// reread as an EM responsibility calculation instead of a Gibbs draw.
package process

import (
	"fmt"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

// Result is what Process returns for one document: its refined topic
// distribution, the per-token weighted contribution to deposit into the
// target N matrix (row index into Φ's token axis -> delta vector), and
// the final round's per-(document,word) posterior p(t|d,w) — one row per
// item in the document, in the document's own token order — surfaced for
// callers that asked for a ptdw capture rather than a theta capture.
type Result struct {
	Theta        []float32
	Contribution map[int][]float32
	Ptdw         [][]float32
}

// Processor computes one document's E-step against phi.
type Processor interface {
	Process(item batch.Item, phi *matrix.Phi, innerIterations int) (Result, error)
}

// ReferenceProcessor runs the standard iterative-conditional-modes
// recurrence for probabilistic topic models: repeatedly recompute
// p(t|d,w) from the current θ(d) and Φ, then re-estimate θ(d) from the
// weighted responsibilities, for innerIterations rounds. The final
// round's responsibilities, scaled by each token's count, are the
// contribution deposited into N.
type ReferenceProcessor struct{}

// NewReferenceProcessor returns a stateless reference processor.
func NewReferenceProcessor() *ReferenceProcessor { return &ReferenceProcessor{} }

func (r *ReferenceProcessor) Process(item batch.Item, phi *matrix.Phi, innerIterations int) (Result, error) {
	topicSize := phi.TopicSize()
	if topicSize == 0 {
		return Result{}, fmt.Errorf("process: phi %q has no topics", phi.Name())
	}
	if innerIterations <= 0 {
		innerIterations = 1
	}

	rows := make([][]float32, len(item.TokenIndex))
	for i, tokenIdx := range item.TokenIndex {
		row, err := phi.Row(int(tokenIdx))
		if err != nil {
			return Result{}, fmt.Errorf("process: %w", err)
		}
		rows[i] = row
	}

	theta := make([]float32, topicSize)
	for t := range theta {
		theta[t] = 1.0 / float32(topicSize)
	}

	responsibility := make([]float32, topicSize)
	var lastP [][]float32
	for iteration := 0; iteration < innerIterations; iteration++ {
		for t := range responsibility {
			responsibility[t] = 0
		}
		lastP = make([][]float32, len(rows))
		for i, row := range rows {
			p := make([]float32, topicSize)
			var z float32
			for t := 0; t < topicSize; t++ {
				p[t] = row[t] * theta[t]
				z += p[t]
			}
			if z > 0 {
				for t := range p {
					p[t] /= z
				}
			}
			count := item.Count[i]
			for t := 0; t < topicSize; t++ {
				responsibility[t] += count * p[t]
			}
			lastP[i] = p
		}
		var total float32
		for _, v := range responsibility {
			total += v
		}
		if total > 0 {
			for t := range theta {
				theta[t] = responsibility[t] / total
			}
		}
	}

	contribution := make(map[int][]float32, len(item.TokenIndex))
	for i, tokenIdx := range item.TokenIndex {
		delta := make([]float32, topicSize)
		count := item.Count[i]
		for t := 0; t < topicSize; t++ {
			delta[t] = count * lastP[i][t]
		}
		contribution[int(tokenIdx)] = delta
	}

	return Result{Theta: theta, Contribution: contribution, Ptdw: lastP}, nil
}
