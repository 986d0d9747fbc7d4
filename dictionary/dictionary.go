// Package dictionary maintains the bi-directional mapping between
// (keyword, class_id) tokens and dense row indices that Initialize uses
// to allocate a fresh Φ, generalizing the teacher's single-keyword
// Vocabulary into a two-field Token and dropping its hash-balanced
// ordering (irrelevant once there is no sharded corpus to balance
// across workers; insertion order is kept instead, so that re-running
// Gather against the same batches in the same order is reproducible).
package dictionary

import (
	"fmt"

	"github.com/nkruglikov/bigartm/batch"
	"github.com/nkruglikov/bigartm/matrix"
)

// Entry is one dictionary row: a token plus the document/term frequency
// Gather accumulated for it, used by Filter.
type Entry struct {
	Token matrix.Token
	DF    int     // number of distinct documents the token appeared in
	TF    float64 // total count across all documents
}

// Dictionary is an ordered, deduplicated token list.
type Dictionary struct {
	entries []Entry
	index   map[matrix.Token]int
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{index: make(map[matrix.Token]int)}
}

// Len reports the number of distinct tokens.
func (d *Dictionary) Len() int { return len(d.entries) }

// Tokens returns the token axis in insertion order.
func (d *Dictionary) Tokens() []matrix.Token {
	out := make([]matrix.Token, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Token
	}
	return out
}

// IndexOf returns the row index for a token.
func (d *Dictionary) IndexOf(token matrix.Token) (int, bool) {
	i, ok := d.index[token]
	return i, ok
}

// Add inserts token if unseen and returns its index either way.
func (d *Dictionary) Add(token matrix.Token) int {
	if i, ok := d.index[token]; ok {
		return i
	}
	i := len(d.entries)
	d.entries = append(d.entries, Entry{Token: token})
	d.index[token] = i
	return i
}

// Gather scans a set of batches and accumulates document/term frequency
// per token, adding any unseen token to the dictionary. tokenAt resolves
// a batch's token_index values back to a Token (the batch layer stores
// sparse integer indices, not tokens, so the caller supplies the axis
// they were encoded against — typically an existing Φ's Tokens()).
func (d *Dictionary) Gather(batches []*batch.Batch, tokenAt func(int32) (matrix.Token, error)) error {
	for _, b := range batches {
		for _, item := range b.Items {
			seen := make(map[matrix.Token]bool)
			for i, tokenIdx := range item.TokenIndex {
				tok, err := tokenAt(tokenIdx)
				if err != nil {
					return fmt.Errorf("dictionary gather: %w", err)
				}
				idx := d.Add(tok)
				e := &d.entries[idx]
				e.TF += float64(item.Count[i])
				if !seen[tok] {
					e.DF++
					seen[tok] = true
				}
			}
		}
	}
	return nil
}

// Filter returns a new Dictionary containing only entries whose DF lies
// in [minDF, maxDF] (maxDF <= 0 means unbounded), preserving order.
func (d *Dictionary) Filter(minDF, maxDF int) *Dictionary {
	out := New()
	for _, e := range d.entries {
		if e.DF < minDF {
			continue
		}
		if maxDF > 0 && e.DF > maxDF {
			continue
		}
		idx := out.Add(e.Token)
		out.entries[idx].DF = e.DF
		out.entries[idx].TF = e.TF
	}
	return out
}
