package dictionary

import (
	"testing"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

func testAxis() []matrix.Token {
	return []matrix.Token{
		{Keyword: "cat", ClassID: "default"},
		{Keyword: "dog", ClassID: "default"},
	}
}

func tokenAt(axis []matrix.Token) func(int32) (matrix.Token, error) {
	return func(i int32) (matrix.Token, error) { return axis[i], nil }
}

func TestGatherAccumulatesFrequencies(t *testing.T) {
	axis := testAxis()
	b1 := batch.New([]batch.Item{
		{TokenIndex: []int32{0, 1}, Count: []float32{2, 1}},
	})
	b2 := batch.New([]batch.Item{
		{TokenIndex: []int32{0}, Count: []float32{5}},
	})

	d := New()
	if err := d.Gather([]*batch.Batch{b1, b2}, tokenAt(axis)); err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", d.Len())
	}

	catIdx, _ := d.IndexOf(axis[0])
	if d.entries[catIdx].DF != 2 {
		t.Errorf("expected cat DF=2, got %d", d.entries[catIdx].DF)
	}
	if d.entries[catIdx].TF != 7 {
		t.Errorf("expected cat TF=7, got %v", d.entries[catIdx].TF)
	}

	dogIdx, _ := d.IndexOf(axis[1])
	if d.entries[dogIdx].DF != 1 {
		t.Errorf("expected dog DF=1, got %d", d.entries[dogIdx].DF)
	}
}

func TestFilterByDocumentFrequency(t *testing.T) {
	axis := testAxis()
	b := batch.New([]batch.Item{
		{TokenIndex: []int32{0, 1}, Count: []float32{1, 1}},
		{TokenIndex: []int32{0}, Count: []float32{1}},
	})

	d := New()
	if err := d.Gather([]*batch.Batch{b}, tokenAt(axis)); err != nil {
		t.Fatalf("Gather: %v", err)
	}

	filtered := d.Filter(2, 0)
	if filtered.Len() != 1 {
		t.Fatalf("expected 1 token surviving DF>=2 filter, got %d", filtered.Len())
	}
	if tok := filtered.Tokens()[0]; tok != axis[0] {
		t.Errorf("expected cat to survive filter, got %+v", tok)
	}
}
