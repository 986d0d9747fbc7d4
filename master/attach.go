package master

import (
	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/xerrors"
)

// Attach binds the named matrix to caller-owned memory (buffer), so that
// subsequent writes through IncreaseRow/SetRow during training are
// visible to the caller holding buffer directly, the in-process analogue
// of AttachModel. The new frame covers exactly the given tokens and
// replaces whatever was registered under name; attaching a name whose
// current matrix is already attached is rejected.
func (m *Instance) Attach(name string, topicNames []string, tokens []matrix.Token, buffer []float32) error {
	current, ok := m.orch.Registry.Get(name)
	if ok && current.Attached() {
		return xerrors.New(xerrors.InvalidOperation, "attach: matrix %q is already attached", name)
	}

	attached, err := matrix.NewAttachedPhi(name, topicNames, tokens, buffer)
	if err != nil {
		return xerrors.Wrap(xerrors.InvalidOperation, err, "attach: matrix %q", name)
	}
	m.orch.Registry.Set(name, attached)
	return nil
}

// Overwrite replaces the named matrix's contents from an external topic
// model: a fresh frame over external's token/topic axes, built from
// scratch (not folded additively into whatever was registered before),
// matching OverwriteTopicModel's "replace, not merge" semantics.
func (m *Instance) Overwrite(name string, external *matrix.ExternalTopicModel) error {
	fresh := matrix.New(name, external.TopicName)
	if err := fresh.ApplyTopicModelOperation(external, 1.0); err != nil {
		return xerrors.Wrap(xerrors.InvalidOperation, err, "overwrite: matrix %q", name)
	}
	m.orch.Registry.Set(name, fresh)
	return nil
}
