package score

import (
	"testing"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

func buildTestPhi(t *testing.T) *matrix.Phi {
	t.Helper()
	phi := matrix.New("pwt", []string{"topic_0", "topic_1"})
	idx, err := phi.AddToken(matrix.Token{Keyword: "cat", ClassID: "default"})
	if err != nil {
		t.Fatalf("AddToken: %v", err)
	}
	if err := phi.SetRow(idx, []float32{0.8, 0.2}); err != nil {
		t.Fatalf("SetRow: %v", err)
	}
	return phi
}

func TestPerplexityComputeSingleDocument(t *testing.T) {
	phi := buildTestPhi(t)
	b := batch.New([]batch.Item{
		{TokenIndex: []int32{0}, Count: []float32{3}},
	})
	theta := [][]float32{{1, 0}}

	calc := NewPerplexityCalculator()
	contrib, err := calc.Compute(phi, b, theta)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if contrib.Weight != 3 {
		t.Errorf("expected weight 3, got %v", contrib.Weight)
	}
	if contrib.Value >= 0 {
		t.Errorf("expected negative log-likelihood, got %v", contrib.Value)
	}
}

func TestPerplexityComputeRowCountMismatch(t *testing.T) {
	phi := buildTestPhi(t)
	b := batch.New([]batch.Item{
		{TokenIndex: []int32{0}, Count: []float32{1}},
		{TokenIndex: []int32{0}, Count: []float32{1}},
	})
	calc := NewPerplexityCalculator()
	if _, err := calc.Compute(phi, b, [][]float32{{1, 0}}); err == nil {
		t.Errorf("expected error on theta/batch size mismatch")
	}
}

func TestPerplexityCacheRefreshesOnNewPhi(t *testing.T) {
	phi1 := buildTestPhi(t)
	calc := NewPerplexityCalculator()
	calc.refreshCache(phi1)
	if calc.cachedPhi != phi1 {
		t.Fatalf("expected cache to reference phi1")
	}

	phi2 := buildTestPhi(t)
	calc.refreshCache(phi2)
	if calc.cachedPhi != phi2 {
		t.Errorf("expected cache to refresh to phi2")
	}
}
