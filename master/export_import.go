package master

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"

	"github.com/nkruglikov/bigartm/matrix"
	"github.com/nkruglikov/bigartm/xerrors"
)

// exportFormatVersion is the single byte every export stream starts
// with, bumped if the chunk wire format ever changes incompatibly.
const exportFormatVersion byte = 0

// maxExportBytesPerChunk bounds one chunk's serialized payload, the Go
// rendering of the distilled spec's "100 MiB" cap.
const maxExportBytesPerChunk = 100 * 1024 * 1024

func init() {
	gob.Register(matrix.ExternalTopicModel{})
}

// chunkTokenCount returns how many tokens one chunk may carry before its
// serialized gob payload risks exceeding maxExportBytesPerChunk, honoring
// the spec's "chunk size bound by floor(100 MiB / topic_size) tokens"
// rule at a float32-per-cell granularity.
func chunkTokenCount(topicSize int) int {
	if topicSize <= 0 {
		topicSize = 1
	}
	n := maxExportBytesPerChunk / (topicSize * 4)
	if n <= 0 {
		n = 1
	}
	return n
}

// Export serializes the named matrix to w as a versioned, length-prefixed
// stream of gob-encoded ExternalTopicModel chunks (dense layout, token
// list split into groups of at most chunkTokenCount(topic_size) tokens),
// matching §6's export format.
func (m *Instance) Export(w io.Writer, name string) error {
	phi, err := m.orch.Registry.GetOrFail(name)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{exportFormatVersion}); err != nil {
		return xerrors.Wrap(xerrors.DiskWrite, err, "export %q: write version byte", name)
	}

	tokens := phi.Tokens()
	step := chunkTokenCount(phi.TopicSize())
	for start := 0; start < len(tokens); start += step {
		end := start + step
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk, err := phi.RetrieveExternal(matrix.RetrieveArgs{Tokens: tokens[start:end], Layout: matrix.Dense})
		if err != nil {
			return err
		}
		if err := writeChunk(w, chunk); err != nil {
			return xerrors.Wrap(xerrors.DiskWrite, err, "export %q: write chunk", name)
		}
	}
	return nil
}

func writeChunk(w io.Writer, chunk *matrix.ExternalTopicModel) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(chunk); err != nil {
		return err
	}
	var lenPrefix [8]byte
	binary.LittleEndian.PutUint64(lenPrefix[:], uint64(buf.Len()))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Import reads a stream written by Export and registers the result under
// name: the first chunk's topic axis fixes the matrix's topic_name list,
// and every chunk (including the first) is applied additively with
// weight 1.0 via ApplyTopicModelOperation, so tokens repeated across
// chunks accumulate rather than overwrite. A truncated length prefix,
// truncated payload, or malformed gob payload is reported as
// CorruptedMessage and leaves the registry untouched.
func (m *Instance) Import(r io.Reader, name string) error {
	var versionByte [1]byte
	if _, err := io.ReadFull(r, versionByte[:]); err != nil {
		return xerrors.Wrap(xerrors.CorruptedMessage, err, "import %q: read version byte", name)
	}
	if versionByte[0] != exportFormatVersion {
		return xerrors.New(xerrors.CorruptedMessage, "import %q: unsupported format version %d", name, versionByte[0])
	}

	var target *matrix.Phi
	for {
		chunk, err := readChunk(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return xerrors.Wrap(xerrors.CorruptedMessage, err, "import %q: read chunk", name)
		}
		if target == nil {
			target = matrix.New(name, chunk.TopicName)
		}
		if err := target.ApplyTopicModelOperation(chunk, 1.0); err != nil {
			return xerrors.Wrap(xerrors.CorruptedMessage, err, "import %q: apply chunk", name)
		}
	}
	if target == nil {
		return xerrors.New(xerrors.CorruptedMessage, "import %q: stream contained no chunks", name)
	}

	m.orch.Registry.Set(name, target)
	return nil
}

func readChunk(r io.Reader) (*matrix.ExternalTopicModel, error) {
	var lenPrefix [8]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint64(lenPrefix[:])
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	var chunk matrix.ExternalTopicModel
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&chunk); err != nil {
		return nil, err
	}
	return &chunk, nil
}
