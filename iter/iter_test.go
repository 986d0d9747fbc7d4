package iter

import "testing"

func TestOfflineAllReturnsEverything(t *testing.T) {
	o := NewOffline([]string{"a", "b", "c"}, []float32{1, 1, 1})
	g := o.All()
	if len(g.BatchFilename) != 3 {
		t.Errorf("expected 3 batches, got %d", len(g.BatchFilename))
	}
}

func TestOnlineMoveGroupsByUpdateAfter(t *testing.T) {
	o := NewOnline(
		[]string{"a", "b", "c", "d", "e"},
		[]float32{1, 1, 1, 1, 1},
		[]int{2, 3, 5},
		[]float32{1, 0.9, 0.8},
		[]float32{0, 0.1, 0.2},
	)

	var groups [][]string
	for o.More() {
		g := o.Move()
		groups = append(groups, g.BatchFilename)
	}

	if len(groups) != 3 {
		t.Fatalf("expected 3 update groups, got %d", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0] != "a" || groups[0][1] != "b" {
		t.Errorf("expected first group [a b], got %v", groups[0])
	}
	if len(groups[1]) != 1 || groups[1][0] != "c" {
		t.Errorf("expected second group [c], got %v", groups[1])
	}
	if len(groups[2]) != 2 || groups[2][0] != "d" || groups[2][1] != "e" {
		t.Errorf("expected third group [d e], got %v", groups[2])
	}
}

func TestOnlineResetRewindsCursor(t *testing.T) {
	o := NewOnline([]string{"a"}, []float32{1}, []int{1}, []float32{1}, []float32{0})
	o.Move()
	if o.More() {
		t.Fatalf("expected no more groups after single Move")
	}
	o.Reset()
	if !o.More() {
		t.Errorf("expected More() true after Reset")
	}
}

func TestOnlineUpdateIndexAndWeights(t *testing.T) {
	o := NewOnline(
		[]string{"a", "b"},
		[]float32{1, 1},
		[]int{1, 2},
		[]float32{1, 0.5},
		[]float32{0, 0.25},
	)
	o.Move()
	if idx := o.UpdateIndex(); idx != 0 {
		t.Errorf("expected update index 0 after first Move, got %d", idx)
	}
	if w := o.ApplyWeightAt(1); w != 0.5 {
		t.Errorf("expected ApplyWeightAt(1) = 0.5, got %v", w)
	}
	if w := o.DecayWeightAt(1); w != 0.25 {
		t.Errorf("expected DecayWeightAt(1) = 0.25, got %v", w)
	}
}
