package score

import "testing"

func TestManagerAddAccumulates(t *testing.T) {
	m := NewManager()
	m.Add(Contribution{Name: "perplexity", Value: -10, Weight: 5})
	m.Add(Contribution{Name: "perplexity", Value: -20, Weight: 7})

	v, ok := m.RequestScore("perplexity")
	if !ok || v != -30 {
		t.Errorf("expected accumulated value -30, got %v ok=%v", v, ok)
	}
	w, ok := m.RequestWeight("perplexity")
	if !ok || w != 12 {
		t.Errorf("expected accumulated weight 12, got %v ok=%v", w, ok)
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	m.Add(Contribution{Name: "perplexity", Value: -1, Weight: 1})
	m.Clear()
	if _, ok := m.RequestScore("perplexity"); ok {
		t.Errorf("expected score gone after Clear")
	}
}

func TestTrackerHistoryOrder(t *testing.T) {
	tr := NewTracker()
	tr.Add(map[string]float64{"perplexity": -1})
	tr.Add(map[string]float64{"perplexity": -2})

	hist := tr.History()
	if len(hist) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(hist))
	}
	if hist[0]["perplexity"] != -1 || hist[1]["perplexity"] != -2 {
		t.Errorf("expected snapshots in insertion order, got %v", hist)
	}
}
