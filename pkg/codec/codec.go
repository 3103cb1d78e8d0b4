package codec

import (
	"fmt"

	"github.com/stork-search/stork/pkg/core"
)

// Encode serializes idx using its own Version field: V4 for a fresh build
// (the default the indexer produces), or V3 when a caller explicitly wants
// the single-segment legacy-compatible format. V2 cannot be encoded; it is
// decode-only.
func Encode(idx *core.Index) ([]byte, error) {
	switch idx.Version {
	case core.V4, core.VersionUnknown:
		return EncodeV4(idx)
	case core.V3:
		return EncodeV3(idx)
	default:
		return nil, fmt.Errorf("%w: cannot encode version %d", core.ErrUnknownPrefix, idx.Version)
	}
}

// Decode parses a serialized index envelope and routes to the
// version-specific payload decoder, per its version tag.
func Decode(data []byte) (*core.Index, error) {
	envelope, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch envelope.Version {
	case core.V2:
		return decodeV2(envelope.Blobs)
	case core.V3:
		return decodeV3(envelope.Blobs)
	case core.V4:
		return decodeV4(envelope.Blobs)
	default:
		return nil, fmt.Errorf("%w: version %d", core.ErrUnknownPrefix, envelope.Version)
	}
}
