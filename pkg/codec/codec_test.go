package codec_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/stork-search/stork/pkg/codec"
	"github.com/stork-search/stork/pkg/core"
)

func sampleIndex(version core.Version) *core.Index {
	container := core.NewContainer()
	container.Results[0] = &core.ContainerResult{
		Score: 255,
		Excerpts: []core.Posting{
			{DocumentID: 0, ByteOffset: 8, Importance: 1.2},
		},
	}
	container.Aliases["liberties"] = 120
	container.TitleHits = []core.TitleHit{{DocumentID: 0, ByteOffset: 0}}

	return &core.Index{
		Version:   version,
		Documents: []core.Document{{ID: 0, Title: "Liberty", URL: "/liberty", Contents: "give me liberty"}},
		Containers: map[string]*core.Container{
			"liberty": container,
		},
		Config: core.PassthroughConfig{
			URLPrefix: "https://example.com", TitleBoost: core.TitleBoostModerate,
			ExcerptBuffer: 8, ExcerptsPerResult: 5, DisplayedResultsCount: 10,
		},
	}
}

func TestV3RoundTrip(t *testing.T) {
	idx := sampleIndex(core.V3)

	encoded, err := codec.EncodeV3(idx)
	require.NoError(t, err)

	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, core.V3, decoded.Version)
	assert.Equal(t, idx.Documents, decoded.Documents)
	assert.Equal(t, idx.Config, decoded.Config)

	container, ok := decoded.Containers["liberty"]
	require.True(t, ok)
	assert.Equal(t, uint8(120), container.Aliases["liberties"])
	require.Len(t, container.TitleHits, 1)
	require.Contains(t, container.Results, uint32(0))
	assert.Equal(t, uint8(255), container.Results[0].Score)
}

func TestV4RoundTrip(t *testing.T) {
	idx := sampleIndex(core.V4)

	encoded, err := codec.EncodeV4(idx)
	require.NoError(t, err)

	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, core.V4, decoded.Version)
	assert.Equal(t, idx.Documents, decoded.Documents)

	container, ok := decoded.Containers["liberty"]
	require.True(t, ok)
	assert.Equal(t, uint8(120), container.Aliases["liberties"])
	require.Contains(t, container.Results, uint32(0))
	assert.Equal(t, float64(1.2), container.Results[0].Excerpts[0].Importance)
}

func sampleIndexManyContainers(version core.Version) *core.Index {
	idx := sampleIndex(version)

	for _, word := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"} {
		container := core.NewContainer()
		container.Results[0] = &core.ContainerResult{
			Score:    100,
			Excerpts: []core.Posting{{DocumentID: 0, ByteOffset: 0}},
		}
		container.Aliases[word+"s"] = 50
		idx.Containers[word] = container

		idx.Documents[0].Fields = map[string]string{word: word + "-value"}
	}

	return idx
}

func TestEncodeV3_IsDeterministicAcrossRepeatedEncodes(t *testing.T) {
	idx := sampleIndexManyContainers(core.V3)

	first, err := codec.EncodeV3(idx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := codec.EncodeV3(idx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeV4_IsDeterministicAcrossRepeatedEncodes(t *testing.T) {
	idx := sampleIndexManyContainers(core.V4)

	first, err := codec.EncodeV4(idx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := codec.EncodeV4(idx)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncode_DispatchesOnVersion(t *testing.T) {
	v4, err := codec.Encode(sampleIndex(core.V4))
	require.NoError(t, err)
	assert.Contains(t, string(v4), "stork-4")

	v3, err := codec.Encode(sampleIndex(core.V3))
	require.NoError(t, err)
	assert.Contains(t, string(v3), "stork-3")

	_, err = codec.Encode(sampleIndex(core.V2))
	assert.ErrorIs(t, err, core.ErrUnknownPrefix)
}

func TestDecodeV2(t *testing.T) {
	entries := []struct {
		Title    string            `msgpack:"title"`
		URL      string            `msgpack:"url"`
		Contents string            `msgpack:"contents"`
		Fields   map[string]string `msgpack:"fields"`
	}{
		{Title: "Liberty", URL: "/liberty", Contents: "give me liberty or give me death"},
	}

	entriesBytes, err := msgpack.Marshal(entries)
	require.NoError(t, err)

	queries := map[string]struct {
		Results map[uint32]struct {
			Excerpts []struct {
				WordIndex int `msgpack:"word_index"`
			} `msgpack:"excerpts"`
			Score uint8 `msgpack:"score"`
		} `msgpack:"results"`
		Aliases map[string]uint8 `msgpack:"aliases"`
	}{
		"liberty": {
			Results: map[uint32]struct {
				Excerpts []struct {
					WordIndex int `msgpack:"word_index"`
				} `msgpack:"excerpts"`
				Score uint8 `msgpack:"score"`
			}{
				0: {
					Excerpts: []struct {
						WordIndex int `msgpack:"word_index"`
					}{{WordIndex: 2}},
					Score: 255,
				},
			},
		},
	}

	queriesBytes, err := msgpack.Marshal(queries)
	require.NoError(t, err)

	blob := lengthPrefixed(entriesBytes)
	blob = append(blob, lengthPrefixed(queriesBytes)...)

	envelope, err := codec.EncodeEnvelope(codec.Envelope{Version: core.V2, Blobs: [][]byte{blob}})
	// stork-2 is decode-only; EncodeEnvelope rejects it, so build the
	// envelope bytes by hand instead, mirroring DecodeEnvelope's own framing.
	require.Error(t, err)

	raw := rawV2Envelope(blob)

	decoded, decodeErr := codec.Decode(raw)
	require.NoError(t, decodeErr)

	assert.Equal(t, core.V2, decoded.Version)
	require.Len(t, decoded.Documents, 1)
	assert.Equal(t, "Liberty", decoded.Documents[0].Title)

	container, ok := decoded.Containers["liberty"]
	require.True(t, ok)
	require.Contains(t, container.Results, uint32(0))
	assert.Equal(t, uint8(255), container.Results[0].Score)
	// word index 2 in "give me liberty or give me death" begins at byte 8.
	require.Len(t, container.Results[0].Excerpts, 1)
	assert.Equal(t, uint32(8), container.Results[0].Excerpts[0].ByteOffset)

	_ = envelope
}

func rawV2Envelope(blob []byte) []byte {
	version := []byte("stork-2")

	out := []byte{byte(len(version))}
	out = append(out, version...)
	out = append(out, blob...)

	return out
}

func lengthPrefixed(b []byte) []byte {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))

	out := append([]byte{}, lenBuf[:]...)

	return append(out, b...)
}

func TestDecodeEnvelope_TooShort(t *testing.T) {
	_, err := codec.DecodeEnvelope([]byte("short"))
	assert.ErrorIs(t, err, core.ErrFileTooShort)
}

func TestDecodeEnvelope_UnknownPrefix(t *testing.T) {
	raw := []byte{byte(len("stork-9"))}
	raw = append(raw, []byte("stork-9")...)
	raw = append(raw, 0) // pad past the u64Size short-buffer guard

	_, err := codec.DecodeEnvelope(raw)
	assert.ErrorIs(t, err, core.ErrUnknownPrefix)
}

func TestDecodeEnvelope_BadPrefixSize(t *testing.T) {
	// A zero-valued first byte selects the u64-length branch; a length of 0
	// is outside the valid [1, 32] range.
	raw := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}

	_, err := codec.DecodeEnvelope(raw)
	assert.ErrorIs(t, err, core.ErrBadPrefixSize)
}

// TestDecodeEnvelope_BadIndexLiteral exercises the literal byte string
// "bad index". Its first byte ('b', non-zero) selects the single-byte
// prefix-length branch of DecodeEnvelope's conditional u8-vs-u64 dispatch,
// giving a prefix length of 98 -- out of the valid [1, 32] range. An
// unconditional 8-byte read of this same literal would instead produce a
// much larger value, but the v4 single-byte-prefix format depends on the
// conditional dispatch taking this branch whenever the leading byte is
// non-zero.
func TestDecodeEnvelope_BadIndexLiteral(t *testing.T) {
	_, err := codec.DecodeEnvelope([]byte("bad index"))

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBadPrefixSize)
	assert.Equal(t, "prefix length is out of the valid [1, 32] range: 98", err.Error())
}
