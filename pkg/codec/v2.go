package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/stork-search/stork/pkg/core"
)

// stork-2 is decode-only: nothing in this module ever writes it. Its single
// envelope blob further subdivides into two u64-length-prefixed segments --
// an entry list and a container ("queries", in the original naming) map --
// the way the legacy format's own inner framing worked, except those
// segments are msgpack here rather than the legacy format's original codec,
// since nothing in this module's dependency stack speaks that codec. See
// DESIGN.md.
type wireV2Excerpt struct {
	WordIndex int `msgpack:"word_index"`
}

type wireV2SearchResult struct {
	Excerpts []wireV2Excerpt `msgpack:"excerpts"`
	Score    uint8           `msgpack:"score"`
}

type wireV2Container struct {
	Results map[uint32]wireV2SearchResult `msgpack:"results"`
	Aliases map[string]uint8              `msgpack:"aliases"`
}

func decodeV2(blobs [][]byte) (*core.Index, error) {
	if len(blobs) != 1 {
		return nil, &core.DecodeError{
			Version: core.V2,
			Cause:   fmt.Errorf("expected exactly one payload segment, found %d", len(blobs)),
		}
	}

	buf := blobs[0]

	entriesBytes, rest, err := takeLengthPrefixed(buf)
	if err != nil {
		return nil, &core.DecodeError{Version: core.V2, Cause: err}
	}

	queriesBytes, _, err := takeLengthPrefixed(rest)
	if err != nil {
		return nil, &core.DecodeError{Version: core.V2, Cause: err}
	}

	var entries []wireDocument
	if err := msgpack.Unmarshal(entriesBytes, &entries); err != nil {
		return nil, &core.DecodeError{Version: core.V2, Cause: err}
	}

	var queries map[string]wireV2Container
	if err := msgpack.Unmarshal(queriesBytes, &queries); err != nil {
		return nil, &core.DecodeError{Version: core.V2, Cause: err}
	}

	documents := make([]core.Document, len(entries))
	for i, e := range entries {
		documents[i] = core.Document{
			ID:       uint32(i), //nolint:gosec // document counts fit comfortably in uint32
			Title:    e.Title,
			URL:      e.URL,
			Contents: e.Contents,
			Fields:   e.Fields,
		}
	}

	containers := make(map[string]*core.Container, len(queries))

	for word, wc := range queries {
		c := core.NewContainer()

		for docID, sr := range wc.Results {
			excerpts := make([]core.Posting, 0, len(sr.Excerpts))

			for _, e := range sr.Excerpts {
				offset := uint32(0)
				if int(docID) < len(documents) {
					offset = nthWordOffset(documents[docID].Contents, e.WordIndex)
				}

				excerpts = append(excerpts, core.Posting{DocumentID: docID, ByteOffset: offset})
			}

			c.Results[docID] = &core.ContainerResult{Excerpts: excerpts, Score: sr.Score}
		}

		for k, v := range wc.Aliases {
			c.Aliases[k] = v
		}

		containers[word] = c
	}

	return &core.Index{Containers: containers, Documents: documents, Version: core.V2}, nil
}

// takeLengthPrefixed reads a u64 length followed by that many bytes from
// buf, returning the segment and whatever followed it.
func takeLengthPrefixed(buf []byte) (segment, rest []byte, err error) {
	if len(buf) < u64Size {
		return nil, nil, core.ErrFileTooShort
	}

	length := binary.BigEndian.Uint64(buf[:u64Size])
	buf = buf[u64Size:]

	if length > uint64(len(buf)) {
		return nil, nil, fmt.Errorf("%w: %d", core.ErrBadSegmentSize, length)
	}

	return buf[:length], buf[length:], nil
}

// nthWordOffset returns the byte offset at which the n-th whitespace
// delimited token in contents begins. The legacy format addresses words by
// position rather than byte offset; this reconstructs one from the other
// using the same word boundaries the contents string was built from.
func nthWordOffset(contents string, n int) uint32 {
	inWord := false
	count := 0

	for i, r := range contents {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r'

		if !isSpace && !inWord {
			if count == n {
				return uint32(i) //nolint:gosec // bounded by len(contents)
			}

			inWord = true
		}

		if isSpace {
			if inWord {
				count++
			}

			inWord = false
		}
	}

	return 0
}
