package matrix

// Token identifies one row of a Phi matrix. Equality is over both fields,
// mirroring the distilled spec's "Token: (keyword, class_id)".
type Token struct {
	Keyword string
	ClassID string
}

// Layout selects how an ExternalTopicModel represents its per-token
// weights: every topic value (Dense) or only the nonzero ones (Sparse).
type Layout int

const (
	Dense Layout = iota
	Sparse
)
