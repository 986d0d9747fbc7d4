package cache

import (
	"testing"

	"github.com/google/uuid"
)

func TestRequestThetaPreservesInsertionOrder(t *testing.T) {
	m := NewManager()
	b1, b2 := uuid.New(), uuid.New()
	m.InsertTheta(ThetaSlice{BatchID: b1, DocTopic: [][]float32{{1, 0}}})
	m.InsertTheta(ThetaSlice{BatchID: b2, DocTopic: [][]float32{{0, 1}}})

	got := m.RequestTheta()
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0][0] != 1 || got[1][1] != 1 {
		t.Errorf("expected insertion order b1 then b2, got %v", got)
	}
}

func TestInsertThetaOverwritesSameBatch(t *testing.T) {
	m := NewManager()
	b1 := uuid.New()
	m.InsertTheta(ThetaSlice{BatchID: b1, DocTopic: [][]float32{{1, 0}}})
	m.InsertTheta(ThetaSlice{BatchID: b1, DocTopic: [][]float32{{0, 1}}})

	got := m.RequestTheta()
	if len(got) != 1 {
		t.Fatalf("expected overwrite not append, got %d rows", len(got))
	}
	if got[0][1] != 1 {
		t.Errorf("expected overwritten value, got %v", got[0])
	}
}

func TestClearEmptiesCache(t *testing.T) {
	m := NewManager()
	m.InsertTheta(ThetaSlice{BatchID: uuid.New(), DocTopic: [][]float32{{1}}})
	m.Clear()
	if len(m.RequestTheta()) != 0 {
		t.Errorf("expected empty cache after Clear")
	}
}

func TestRequestPtdwMissingBatch(t *testing.T) {
	m := NewManager()
	if _, ok := m.RequestPtdw(uuid.New()); ok {
		t.Errorf("expected missing ptdw slice to report false")
	}
}
