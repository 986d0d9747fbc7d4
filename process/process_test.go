package process

import (
	"testing"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

func TestProcessThetaSumsToOne(t *testing.T) {
	phi := matrix.New("pwt", []string{"topic_0", "topic_1"})
	i0, _ := phi.AddToken(matrix.Token{Keyword: "cat", ClassID: "default"})
	i1, _ := phi.AddToken(matrix.Token{Keyword: "dog", ClassID: "default"})
	phi.SetRow(i0, []float32{0.9, 0.1})
	phi.SetRow(i1, []float32{0.1, 0.9})

	item := batch.Item{TokenIndex: []int32{int32(i0), int32(i1)}, Count: []float32{5, 1}}

	p := NewReferenceProcessor()
	result, err := p.Process(item, phi, 10)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var sum float32
	for _, v := range result.Theta {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("expected theta to sum to ~1, got %v (sum=%v)", result.Theta, sum)
	}
	// Dominated by "cat" (weight 5, strongly topic 0) so topic 0 should win.
	if result.Theta[0] <= result.Theta[1] {
		t.Errorf("expected topic_0 to dominate theta, got %v", result.Theta)
	}
}

func TestProcessContributionKeyedByTokenIndex(t *testing.T) {
	phi := matrix.New("pwt", []string{"topic_0", "topic_1"})
	i0, _ := phi.AddToken(matrix.Token{Keyword: "cat", ClassID: "default"})
	phi.SetRow(i0, []float32{0.5, 0.5})

	item := batch.Item{TokenIndex: []int32{int32(i0)}, Count: []float32{3}}
	p := NewReferenceProcessor()
	result, err := p.Process(item, phi, 1)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	delta, ok := result.Contribution[i0]
	if !ok {
		t.Fatalf("expected a contribution for token index %d", i0)
	}
	var total float32
	for _, v := range delta {
		total += v
	}
	if total < 2.99 || total > 3.01 {
		t.Errorf("expected contribution to sum to the token's count (3), got %v", total)
	}
}

func TestProcessRejectsEmptyPhi(t *testing.T) {
	phi := matrix.New("pwt", nil)
	p := NewReferenceProcessor()
	if _, err := p.Process(batch.Item{}, phi, 1); err == nil {
		t.Errorf("expected error for a phi with zero topics")
	}
}
