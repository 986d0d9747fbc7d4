package master

import (
	"encoding/binary"
	"math"

	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/xerrors"
)

// GetTopicModelExternal serializes the named matrix's Φ into buf as
// row-major little-endian float32, token-major (one row per token),
// requiring exactly tokens*topics*4 bytes. Only Dense layout is
// supported at this boundary; callers wanting sparse must use
// GetTopicModel instead. The source ExternalTopicModel's DenseWeight
// rows are cleared once copied, mirroring the teacher pattern of
// clearing a message's repeated field immediately after flattening it
// into the caller's buffer.
func (m *Instance) GetTopicModelExternal(name string, buf []byte) error {
	phi, err := m.orch.Registry.GetOrFail(name)
	if err != nil {
		return err
	}
	external, err := phi.RetrieveExternal(matrix.RetrieveArgs{Layout: matrix.Dense})
	if err != nil {
		return err
	}
	return writeDenseRows(buf, external.DenseWeight)
}

// GetThetaMatrixExternal serializes the instance cache's full Θ matrix
// into buf as row-major little-endian float32, item-major (one row per
// document, in cache insertion order).
func (m *Instance) GetThetaMatrixExternal(buf []byte) error {
	rows := m.orch.InstanceCache.RequestTheta()
	return writeDenseRows(buf, rows)
}

func writeDenseRows(buf []byte, rows [][]float32) error {
	if len(rows) == 0 {
		return nil
	}
	topicSize := len(rows[0])
	want := len(rows) * topicSize * 4
	if len(buf) != want {
		return xerrors.New(xerrors.InvalidOperation, "external buffer has %d bytes, want %d (%d rows x %d topics x 4)", len(buf), want, len(rows), topicSize)
	}
	offset := 0
	for i, row := range rows {
		if len(row) != topicSize {
			return xerrors.New(xerrors.InvalidOperation, "external buffer: ragged rows (%d vs %d topics)", len(row), topicSize)
		}
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
			offset += 4
		}
		rows[i] = nil // drop the source row once flattened into buf
	}
	return nil
}
