// Package codec implements the serialized index envelope and the
// version-specific payload codecs: a self-describing
// `<prefix_len><prefix_bytes><segment_len><segment_bytes>…` framing
// wrapping one (v2/v3) or many (v4) inner payload segments.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/stork-search/stork/pkg/core"
)

const (
	minPrefixLen = 1
	maxPrefixLen = 32
	u64Size      = 8
)

var prefixStrings = map[core.Version]string{
	core.V2: "stork-2",
	core.V3: "stork-3",
	core.V4: "stork-4",
}

func versionFromString(s string) (core.Version, bool) {
	for v, str := range prefixStrings {
		if str == s {
			return v, true
		}
	}

	return core.VersionUnknown, false
}

// Envelope is the decoded framing layer: a version tag plus the raw inner
// segments it wraps. v2 always has exactly one segment (the legacy format
// never adopted multi-segment framing); v3 has exactly one (the whole
// msgpack payload); v4 has one or more (the root chunk plus its sidecars).
type Envelope struct {
	Version core.Version
	Blobs   [][]byte
}

// DecodeEnvelope parses the self-describing envelope prefix documented in
// the envelope format: a u64-or-u8 length (u64 when the first byte is zero, u8
// otherwise) naming the version string's length, the version string itself,
// and then -- for every version but v2 -- a run of u64-length-prefixed
// segments.
func DecodeEnvelope(buf []byte) (Envelope, error) {
	if len(buf) <= u64Size {
		return Envelope{}, core.ErrFileTooShort
	}

	var prefixLen uint64

	if buf[0] == 0 {
		prefixLen = binary.BigEndian.Uint64(buf[:u64Size])
		buf = buf[u64Size:]
	} else {
		prefixLen = uint64(buf[0])
		buf = buf[1:]
	}

	if prefixLen < minPrefixLen || prefixLen > maxPrefixLen {
		return Envelope{}, fmt.Errorf("%w: %d", core.ErrBadPrefixSize, prefixLen)
	}

	if uint64(len(buf)) < prefixLen {
		return Envelope{}, core.ErrFileTooShort
	}

	versionString := string(buf[:prefixLen])
	buf = buf[prefixLen:]

	version, ok := versionFromString(versionString)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %q", core.ErrUnknownPrefix, versionString)
	}

	// Special case: stork-2 never adopted segment framing. The rest of the
	// buffer, as-is, is the whole payload.
	if version == core.V2 {
		return Envelope{Version: version, Blobs: [][]byte{buf}}, nil
	}

	var blobs [][]byte

	for len(buf) > 0 {
		if len(buf) < u64Size {
			return Envelope{}, core.ErrFileTooShort
		}

		length := binary.BigEndian.Uint64(buf[:u64Size])
		buf = buf[u64Size:]

		if length > uint64(len(buf)) {
			return Envelope{}, fmt.Errorf("%w: %d", core.ErrBadSegmentSize, length)
		}

		blobs = append(blobs, buf[:length])
		buf = buf[length:]
	}

	return Envelope{Version: version, Blobs: blobs}, nil
}

// EncodeEnvelope writes e in the same framing DecodeEnvelope reads. Only v3
// and v4 can be produced: v2 is a decode-only legacy format, never emitted
// by a build.
func EncodeEnvelope(e Envelope) ([]byte, error) {
	if e.Version != core.V3 && e.Version != core.V4 {
		return nil, fmt.Errorf("%w: cannot encode version %d", core.ErrUnknownPrefix, e.Version)
	}

	versionBytes := []byte(prefixStrings[e.Version])

	var buf bytes.Buffer

	if e.Version == core.V3 {
		var lenBuf [u64Size]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(versionBytes)))
		buf.Write(lenBuf[:])
	} else {
		buf.WriteByte(byte(len(versionBytes)))
	}

	buf.Write(versionBytes)

	for _, blob := range e.Blobs {
		var lenBuf [u64Size]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(blob)))
		buf.Write(lenBuf[:])
		buf.Write(blob)
	}

	return buf.Bytes(), nil
}
