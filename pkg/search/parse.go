package search

import (
	"github.com/stork-search/stork/pkg/codec"
	"github.com/stork-search/stork/pkg/core"
)

// ParseIndex decodes a serialized index into the in-memory form Search
// consumes. It is the Search API's parse_index(bytes) -> ParsedIndex | error
// entry point; decoding itself is pkg/codec's job.
func ParseIndex(data []byte) (*core.Index, error) {
	return codec.Decode(data)
}
