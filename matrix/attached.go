package matrix

import (
	"fmt"
	"sync"
)

// NewAttachedPhi builds a Phi whose rows are views into buffer rather than
// independently allocated storage, so that writes through IncreaseRow/
// SetRow are visible to the caller holding buffer directly. buffer must
// have exactly len(tokens)*len(topicNames) elements, laid out token-major
// (row i occupies buffer[i*len(topicNames):(i+1)*len(topicNames)]).
//
// An attached matrix cannot grow: AddToken on an unseen token fails. This
// is the in-process analogue of AttachModel, which binds a named matrix to
// external storage the caller allocated once and will not resize.
func NewAttachedPhi(name string, topicNames []string, tokens []Token, buffer []float32) (*Phi, error) {
	want := len(tokens) * len(topicNames)
	if len(buffer) != want {
		return nil, fmt.Errorf("matrix %q: buffer has %d elements, want %d (%d tokens x %d topics)",
			name, len(buffer), want, len(tokens), len(topicNames))
	}
	p := New(name, topicNames)
	p.attached = true
	p.tokens = make([]Token, len(tokens))
	copy(p.tokens, tokens)
	p.tokenIndex = make(map[Token]int, len(tokens))
	p.rows = make([][]float32, len(tokens))
	p.rowMu = make([]*sync.Mutex, len(tokens))
	topicSize := len(topicNames)
	for i, tok := range tokens {
		if _, dup := p.tokenIndex[tok]; dup {
			return nil, fmt.Errorf("matrix %q: duplicate token %+v", name, tok)
		}
		p.tokenIndex[tok] = i
		p.rows[i] = buffer[i*topicSize : (i+1)*topicSize : (i+1)*topicSize]
		p.rowMu[i] = &sync.Mutex{}
	}
	return p, nil
}
