package score

import (
	"fmt"
	"math"
	"sync"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

// PerplexityCalculator computes a log-likelihood/word-count pair per
// batch, the reference Calculator this module ships. It mirrors the
// teacher's Evaluator: a per-token coefficient is cached once per Φ
// version (here, the sum of a token's row, used as a zero-probability
// guard rather than a Dirichlet smoothing term since ARTM's Φ/Θ carry
// no built-in prior), and the per-document correction — the actual
// Σ_t φ(w,t)·θ(d,t) dot product — is evaluated freshly per document,
// same as the teacher's sparse n_mk correction.
type PerplexityCalculator struct {
	mu        sync.Mutex
	cachedPhi *matrix.Phi
	cachedSum map[int]float64
}

// NewPerplexityCalculator returns a ready-to-use calculator with an
// empty cache; the first Compute call populates it.
func NewPerplexityCalculator() *PerplexityCalculator {
	return &PerplexityCalculator{}
}

func (c *PerplexityCalculator) Name() string { return "perplexity" }

func (c *PerplexityCalculator) refreshCache(phi *matrix.Phi) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedPhi == phi {
		return
	}
	c.cachedPhi = phi
	c.cachedSum = make(map[int]float64, phi.TokenSize())
	for i := 0; i < phi.TokenSize(); i++ {
		row, err := phi.Row(i)
		if err != nil {
			continue
		}
		var sum float64
		for _, v := range row {
			sum += float64(v)
		}
		c.cachedSum[i] = sum
	}
}

// Compute returns the total log-likelihood and token count for b, given
// the current Φ and the Θ slice aligned to b's documents in order.
func (c *PerplexityCalculator) Compute(phi *matrix.Phi, b *batch.Batch, theta [][]float32) (Contribution, error) {
	c.refreshCache(phi)

	if len(theta) != len(b.Items) {
		return Contribution{}, fmt.Errorf("perplexity: theta has %d rows, batch has %d documents", len(theta), len(b.Items))
	}

	var logl float64
	var tokens float64
	for d, item := range b.Items {
		docTheta := theta[d]
		for i, tokenIdx := range item.TokenIndex {
			row, err := phi.Row(int(tokenIdx))
			if err != nil {
				return Contribution{}, fmt.Errorf("perplexity: %w", err)
			}
			var prob float64
			n := len(row)
			if len(docTheta) < n {
				n = len(docTheta)
			}
			for t := 0; t < n; t++ {
				prob += float64(row[t]) * float64(docTheta[t])
			}
			if prob <= 0 {
				c.mu.Lock()
				prob = c.cachedSum[int(tokenIdx)]
				c.mu.Unlock()
			}
			if prob <= 0 {
				continue
			}
			count := float64(item.Count[i])
			logl += count * math.Log(prob)
			tokens += count
		}
	}
	return Contribution{Name: c.Name(), Value: logl, Weight: tokens}, nil
}
