package matrix

import "fmt"

// ExternalTopicModel is the wire/API representation of a Phi slice: a set
// of tokens, the fixed topic axis, and per-token weights in either layout.
// Export, Import, Merge and GetTopicModel all exchange matrices in this
// shape rather than handing out the internal Phi directly.
type ExternalTopicModel struct {
	Name      string
	TopicName []string
	Token     []Token

	Layout Layout

	// Dense: DenseWeight[i] has len(TopicName) entries, parallel to Token[i].
	DenseWeight [][]float32

	// Sparse: SparseTopicIndex[i]/SparseWeight[i] are parallel, nonzero-only.
	SparseTopicIndex [][]int32
	SparseWeight     [][]float32
}

// RetrieveArgs narrows a RetrieveExternal call to a token subset, used when
// Export chunks a large matrix into token-bounded pieces.
type RetrieveArgs struct {
	Tokens []Token // nil/empty means every token in the matrix
	Layout Layout
}

// RetrieveExternal materializes a snapshot of p restricted to args.Tokens
// (or all tokens, if empty) in the requested layout.
func (p *Phi) RetrieveExternal(args RetrieveArgs) (*ExternalTopicModel, error) {
	tokens := args.Tokens
	if len(tokens) == 0 {
		tokens = p.Tokens()
	}
	out := &ExternalTopicModel{
		Name:      p.name,
		TopicName: p.TopicNames(),
		Token:     make([]Token, 0, len(tokens)),
		Layout:    args.Layout,
	}
	for _, tok := range tokens {
		idx, ok := p.IndexOf(tok)
		if !ok {
			return nil, fmt.Errorf("matrix %q: unknown token %+v", p.name, tok)
		}
		row, err := p.Row(idx)
		if err != nil {
			return nil, err
		}
		out.Token = append(out.Token, tok)
		switch args.Layout {
		case Sparse:
			var idxs []int32
			var vals []float32
			for j, v := range row {
				if v != 0 {
					idxs = append(idxs, int32(j))
					vals = append(vals, v)
				}
			}
			out.SparseTopicIndex = append(out.SparseTopicIndex, idxs)
			out.SparseWeight = append(out.SparseWeight, vals)
		default:
			out.DenseWeight = append(out.DenseWeight, row)
		}
	}
	return out, nil
}

// ApplyTopicModelOperation adds weight*external into p, growing p's token
// axis as needed. This is the shared primitive behind Merge (weight = the
// caller's merge weight for that source), Import (weight = 1) and
// Overwrite (weight = 1, on a freshly built empty matrix).
func (p *Phi) ApplyTopicModelOperation(external *ExternalTopicModel, weight float32) error {
	if len(external.TopicName) != len(p.topicNames) {
		return fmt.Errorf("matrix %q: external has %d topics, want %d", p.name, len(external.TopicName), len(p.topicNames))
	}
	for i, tok := range external.Token {
		idx, err := p.AddToken(tok)
		if err != nil {
			return err
		}
		delta := make([]float32, len(p.topicNames))
		switch external.Layout {
		case Sparse:
			for k, topicIdx := range external.SparseTopicIndex[i] {
				delta[topicIdx] = external.SparseWeight[i][k] * weight
			}
		default:
			for j, v := range external.DenseWeight[i] {
				delta[j] = v * weight
			}
		}
		if err := p.IncreaseRow(idx, delta); err != nil {
			return err
		}
	}
	return nil
}
