package orchestrator

import "github.com/nkruglikov/bigartm/matrix"

// newReshapedN allocates a fresh, zeroed matrix under name sharing
// source's topic axis and token axis, the standard way an N (or R)
// matrix is derived from the current Φ before workers or a regularizer
// fill it in.
func newReshapedN(name string, source *matrix.Phi) *matrix.Phi {
	n := matrix.New(name, source.TopicNames())
	n.Reshape(source)
	return n
}
