// Package iter implements the two batch iterators FitOffline and
// FitOnline* drive: Offline replays every batch each pass; Online
// delimits the batch list into update groups via a nondecreasing
// UpdateAfter cursor array, with per-group apply/decay weights,
// translating master_component.cc's OfflineBatchesIterator and
// OnlineBatchesIterator.
package iter

// Group is one offline/online unit of work: a slice of batch
// filenames/weights to enqueue together.
type Group struct {
	BatchFilename []string
	BatchWeight   []float32
}

// Offline iterates the full batch list, unconditionally, as many times
// as the caller asks (one call to All per pass).
type Offline struct {
	batchFilename []string
	batchWeight   []float32
}

// NewOffline returns an iterator over the given (filename, weight) pairs.
// len(batchWeight) must equal len(batchFilename); a nil batchWeight
// means every batch has implicit weight 1.
func NewOffline(batchFilename []string, batchWeight []float32) *Offline {
	return &Offline{batchFilename: batchFilename, batchWeight: batchWeight}
}

// All returns the full batch group for one offline pass.
func (o *Offline) All() Group {
	return Group{BatchFilename: o.batchFilename, BatchWeight: o.batchWeight}
}

// Online iterates batches in update groups delimited by UpdateAfter.
// UpdateAfter must be nondecreasing with its final entry equal to
// len(BatchFilename); ApplyWeight and DecayWeight must be the same
// length as UpdateAfter.
type Online struct {
	BatchFilename []string
	BatchWeight   []float32
	UpdateAfter   []int
	ApplyWeight   []float32
	DecayWeight   []float32

	current int
}

// NewOnline returns an iterator over the given parallel arrays. Panics
// (a programmer error, not a runtime condition) if the array lengths are
// inconsistent.
func NewOnline(batchFilename []string, batchWeight []float32, updateAfter []int, applyWeight, decayWeight []float32) *Online {
	if len(updateAfter) != len(applyWeight) || len(updateAfter) != len(decayWeight) {
		panic("iter: UpdateAfter, ApplyWeight and DecayWeight must have equal length")
	}
	return &Online{
		BatchFilename: batchFilename,
		BatchWeight:   batchWeight,
		UpdateAfter:   updateAfter,
		ApplyWeight:   applyWeight,
		DecayWeight:   decayWeight,
	}
}

// More reports whether Move has another update group to emit.
func (o *Online) More() bool {
	return o.current < len(o.UpdateAfter)
}

// Move returns the batch group for the current update index and
// advances the cursor.
func (o *Online) Move() Group {
	if !o.More() {
		return Group{}
	}
	first := 0
	if o.current > 0 {
		first = o.UpdateAfter[o.current-1]
	}
	last := o.UpdateAfter[o.current]
	o.current++
	return Group{
		BatchFilename: o.BatchFilename[first:last],
		BatchWeight:   o.BatchWeight[first:last],
	}
}

// UpdateIndex returns the index Move just consumed (current-1), i.e. the
// update group identifying an outstanding async op, so a caller that
// pipelines process/merge across groups can look up ApplyWeightAt /
// DecayWeightAt for a group other than the one currently at the cursor.
func (o *Online) UpdateIndex() int {
	return o.current - 1
}

// ApplyWeightAt returns the apply weight for update index i (not
// necessarily the current cursor).
func (o *Online) ApplyWeightAt(i int) float32 { return o.ApplyWeight[i] }

// DecayWeightAt returns the decay weight for update index i.
func (o *Online) DecayWeightAt(i int) float32 { return o.DecayWeight[i] }

// Reset rewinds the cursor to the start.
func (o *Online) Reset() { o.current = 0 }
