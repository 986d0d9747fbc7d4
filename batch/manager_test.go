package batch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestManagerIsEverythingProcessed(t *testing.T) {
	m := NewManager()
	if !m.IsEverythingProcessed() {
		t.Fatalf("expected empty manager to be fully processed")
	}

	id := uuid.New()
	m.Add(id)
	if m.IsEverythingProcessed() {
		t.Errorf("expected manager with one outstanding task to not be processed")
	}

	m.Remove(id)
	if !m.IsEverythingProcessed() {
		t.Errorf("expected manager to be fully processed after Remove")
	}
}

func TestManagerRemoveUnknownIsNoOp(t *testing.T) {
	m := NewManager()
	m.Remove(uuid.New())
	if !m.IsEverythingProcessed() {
		t.Errorf("expected no-op remove to leave manager processed")
	}
}

func TestAwaitReturnsOnceDrained(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	m.Add(id)

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Remove(id)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Await(ctx); err != nil {
		t.Fatalf("Await: %v", err)
	}
}

func TestAwaitRespectsCancellation(t *testing.T) {
	m := NewManager()
	m.Add(uuid.New()) // never removed

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := m.Await(ctx); err == nil {
		t.Fatalf("expected Await to return an error on cancellation")
	}
}
