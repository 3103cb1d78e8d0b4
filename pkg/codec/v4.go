package codec

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stork-search/stork/pkg/core"
)

// wireV4Root is the always-loaded root chunk: everything a search needs
// except the postings themselves -- config, documents, and every
// container's aliases and title hits.
type wireV4Root struct {
	Config     wirePassthroughConfig        `msgpack:"config"`
	Documents  []wireDocument               `msgpack:"documents"`
	Containers map[string]wireContainerMeta `msgpack:"containers"`
}

type wireContainerMeta struct {
	Aliases   map[string]uint8 `msgpack:"aliases"`
	TitleHits []wireTitleHit   `msgpack:"title_hits"`
}

// wireV4Postings is one sidecar chunk: an arena of per-container postings,
// loadable independently of the root chunk and of each other.
type wireV4Postings struct {
	Postings map[string]map[uint32]wireContainerResult `msgpack:"postings"`
}

// EncodeV4 serializes idx as a root chunk plus a single postings sidecar
// chunk, wrapped in the envelope. Splitting container metadata (aliases,
// title hits) from postings lets a future reader load the root chunk alone
// and defer decoding postings until a query actually needs them -- the Go
// query engine here decodes both chunks eagerly, since the whole index is
// held in memory, but the wire format still carries the
// split so a streaming reader could exploit it.
func EncodeV4(idx *core.Index) ([]byte, error) {
	w := toWireIndex(idx)

	root := wireV4Root{
		Config:     w.Config,
		Documents:  w.Documents,
		Containers: make(map[string]wireContainerMeta, len(w.Containers)),
	}

	postings := wireV4Postings{Postings: make(map[string]map[uint32]wireContainerResult, len(w.Containers))}

	for word, c := range w.Containers {
		root.Containers[word] = wireContainerMeta{Aliases: c.Aliases, TitleHits: c.TitleHits}

		if len(c.Results) > 0 {
			postings.Postings[word] = c.Results
		}
	}

	rootBytes, err := marshalDeterministic(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stork-4 root chunk: %w", err)
	}

	postingsBytes, err := marshalDeterministic(postings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stork-4 postings chunk: %w", err)
	}

	return EncodeEnvelope(Envelope{Version: core.V4, Blobs: [][]byte{rootBytes, postingsBytes}})
}

// decodeV4 reassembles a core.Index from a root chunk and however many
// postings sidecar chunks the envelope carried.
func decodeV4(blobs [][]byte) (*core.Index, error) {
	if len(blobs) == 0 {
		return nil, &core.DecodeError{Version: core.V4, Cause: errors.New("no payload segments")}
	}

	var root wireV4Root
	if err := msgpack.Unmarshal(blobs[0], &root); err != nil {
		return nil, &core.DecodeError{Version: core.V4, Cause: err}
	}

	merged := make(map[string]map[uint32]wireContainerResult)

	for _, sidecar := range blobs[1:] {
		var chunk wireV4Postings
		if err := msgpack.Unmarshal(sidecar, &chunk); err != nil {
			return nil, &core.DecodeError{Version: core.V4, Cause: err}
		}

		for word, results := range chunk.Postings {
			merged[word] = results
		}
	}

	w := wireIndex{
		Config:     root.Config,
		Documents:  root.Documents,
		Containers: make(map[string]wireContainer, len(root.Containers)),
	}

	for word, meta := range root.Containers {
		w.Containers[word] = wireContainer{
			Results:   merged[word],
			Aliases:   meta.Aliases,
			TitleHits: meta.TitleHits,
		}
	}

	return fromWireIndex(w, core.V4), nil
}
