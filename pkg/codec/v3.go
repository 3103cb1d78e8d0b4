package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stork-search/stork/pkg/core"
)

// EncodeV3 serializes idx as a single msgpack-encoded stork-3 payload
// wrapped in the envelope.
func EncodeV3(idx *core.Index) ([]byte, error) {
	payload, err := marshalDeterministic(toWireIndex(idx))
	if err != nil {
		return nil, fmt.Errorf("failed to encode stork-3 payload: %w", err)
	}

	return EncodeEnvelope(Envelope{Version: core.V3, Blobs: [][]byte{payload}})
}

// decodeV3 unpacks a single msgpack blob into a core.Index.
func decodeV3(blobs [][]byte) (*core.Index, error) {
	if len(blobs) != 1 {
		return nil, &core.DecodeError{
			Version: core.V3,
			Cause:   fmt.Errorf("expected exactly one payload segment, found %d", len(blobs)),
		}
	}

	var w wireIndex
	if err := msgpack.Unmarshal(blobs[0], &w); err != nil {
		return nil, &core.DecodeError{Version: core.V3, Cause: err}
	}

	return fromWireIndex(w, core.V3), nil
}
