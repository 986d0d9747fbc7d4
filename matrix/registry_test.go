package matrix

import (
	"errors"
	"testing"

	"github.com/nkruglikov/bigartm/xerrors"
)

func TestRegistryGetOrFailOnMissingName(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetOrFail("pwt")
	if !errors.Is(err, xerrors.ErrMissingModel) {
		t.Errorf("expected ErrMissingModel, got %v", err)
	}
}

// TestSetIsAtomicToReaders covers the "name atomicity" property: a
// concurrent reader that fetched the old *Phi before Set never observes a
// partially-updated matrix, because Set only ever swaps the map entry.
func TestSetIsAtomicToReaders(t *testing.T) {
	r := NewRegistry()
	original := New("pwt", []string{"topic_0"})
	original.AddToken(Token{Keyword: "cat", ClassID: "default"})
	r.Set("pwt", original)

	held, ok := r.Get("pwt")
	if !ok {
		t.Fatalf("expected pwt to be present")
	}

	replacement := New("pwt", []string{"topic_0"})
	replacement.AddToken(Token{Keyword: "dog", ClassID: "default"})
	r.Set("pwt", replacement)

	if held.TokenSize() != 1 {
		t.Errorf("expected held snapshot to be unaffected by Set, got token size %d", held.TokenSize())
	}
	if tok, _ := held.TokenAt(0); tok.Keyword != "cat" {
		t.Errorf("expected held snapshot to still be the original matrix, got %+v", tok)
	}

	current, _ := r.Get("pwt")
	if tok, _ := current.TokenAt(0); tok.Keyword != "dog" {
		t.Errorf("expected current entry to be the replacement, got %+v", tok)
	}
}

func TestDisposeRemovesEntry(t *testing.T) {
	r := NewRegistry()
	r.Set("nwt", New("nwt", []string{"topic_0"}))
	r.Dispose("nwt")
	if _, ok := r.Get("nwt"); ok {
		t.Errorf("expected nwt to be gone after Dispose")
	}
}

func TestDisposeAllRemovesEveryName(t *testing.T) {
	r := NewRegistry()
	r.Set("pwt_1", New("pwt_1", []string{"topic_0"}))
	r.Set("pwt_2", New("pwt_2", []string{"topic_0"}))
	r.Set("nwt_hat_1", New("nwt_hat_1", []string{"topic_0"}))

	if err := r.DisposeAll([]string{"pwt_1", "nwt_hat_1"}); err != nil {
		t.Fatalf("DisposeAll: %v", err)
	}
	if _, ok := r.Get("pwt_1"); ok {
		t.Errorf("expected pwt_1 to be gone")
	}
	if _, ok := r.Get("nwt_hat_1"); ok {
		t.Errorf("expected nwt_hat_1 to be gone")
	}
	if _, ok := r.Get("pwt_2"); !ok {
		t.Errorf("expected pwt_2 to remain")
	}
}
