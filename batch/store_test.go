package batch

import "testing"

func TestStoreAddFileLookup(t *testing.T) {
	s := NewStore()
	b := New([]Item{{TokenIndex: []int32{0, 1}, Count: []float32{1, 2}}})
	s.AddFile("batch-00000.bin", b)

	byFile, ok := s.GetFile("batch-00000.bin")
	if !ok || byFile.ID != b.ID {
		t.Fatalf("expected GetFile to resolve to the registered batch")
	}
	byID, ok := s.Get(b.ID)
	if !ok || byID.ID != b.ID {
		t.Fatalf("expected Get to resolve by id too")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	b := New(nil)
	s.Add(b)
	s.Remove(b.ID)
	if _, ok := s.Get(b.ID); ok {
		t.Errorf("expected batch to be gone after Remove")
	}
}
