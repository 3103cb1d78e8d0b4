package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// marshalDeterministic msgpack-encodes v with map keys sorted, so two
// encodes of an identical value always produce identical bytes. The wire
// structs in this package embed Go maps (Containers, Results, Aliases,
// Fields), whose range order msgpack's default encoder would otherwise
// randomize per-process, breaking byte-for-byte build reproducibility.
func marshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode msgpack payload: %w", err)
	}

	return buf.Bytes(), nil
}

// wirePassthroughConfig is the msgpack shape of core.PassthroughConfig,
// present in v3 and v4 payloads. v2 predates passthrough config entirely.
type wirePassthroughConfig struct {
	URLPrefix             string `msgpack:"url_prefix"`
	TitleBoost            int    `msgpack:"title_boost"`
	ExcerptBuffer         uint8  `msgpack:"excerpt_buffer"`
	ExcerptsPerResult     uint8  `msgpack:"excerpts_per_result"`
	DisplayedResultsCount uint8  `msgpack:"displayed_results_count"`
}

// wireDocument is the msgpack shape of core.Document.
type wireDocument struct {
	Title    string            `msgpack:"title"`
	URL      string            `msgpack:"url"`
	Contents string            `msgpack:"contents"`
	Fields   map[string]string `msgpack:"fields"`
}

// wirePosting is the msgpack shape of core.Posting.
type wirePosting struct {
	DocumentID   uint32  `msgpack:"document_id"`
	ByteOffset   uint32  `msgpack:"byte_offset"`
	Importance   float64 `msgpack:"importance"`
	URLSuffix    string  `msgpack:"url_suffix"`
	HasURLSuffix bool    `msgpack:"has_url_suffix"`
}

// wireTitleHit is the msgpack shape of core.TitleHit.
type wireTitleHit struct {
	DocumentID uint32 `msgpack:"document_id"`
	ByteOffset uint32 `msgpack:"byte_offset"`
}

// wireContainerResult is the msgpack shape of core.ContainerResult.
type wireContainerResult struct {
	Excerpts []wirePosting `msgpack:"excerpts"`
	Score    uint8         `msgpack:"score"`
}

// wireContainer is the msgpack shape of core.Container.
type wireContainer struct {
	Results   map[uint32]wireContainerResult `msgpack:"results"`
	Aliases   map[string]uint8               `msgpack:"aliases"`
	TitleHits []wireTitleHit                 `msgpack:"title_hits"`
}

// wireIndex is the full msgpack payload shape shared by v3 and v4: a
// passthrough config, the document list, and the container map. v4 differs
// from v3 only in how this payload is split across envelope segments, not in
// the payload's own shape.
type wireIndex struct {
	Config     wirePassthroughConfig    `msgpack:"config"`
	Documents  []wireDocument           `msgpack:"documents"`
	Containers map[string]wireContainer `msgpack:"containers"`
}
