// Package normalize turns raw extracted text into the stream of normalized
// words the index assembler and query engine both consume: lowercased,
// stripped of surrounding ASCII punctuation, and split on whitespace and
// hyphens.
package normalize

import (
	"strings"
	"unicode"
)

// Word is one normalized token plus the byte offset at which it begins in
// the source text it was extracted from.
type Word struct {
	Text       string
	ByteOffset uint32
}

// Split walks s, splitting on whitespace and '-', trimming surrounding ASCII
// punctuation from each piece, lowercasing it, and discarding anything that
// becomes empty. Byte offsets point into s, not into the trimmed/lowercased
// token -- they mark where in the source text the token starts once its
// leading punctuation is skipped, matching what the index assembler and
// excerpt windows expect.
func Split(s string) []Word {
	var words []Word

	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}

		raw := s[start:end]
		trimmed := TrimPunctuation(raw)

		if trimmed != "" {
			words = append(words, Word{
				Text:       strings.ToLower(trimmed),
				ByteOffset: uint32(start + leadingTrimLen(raw)), //nolint:gosec // indices bound by len(s)
			})
		}

		start = -1
	}

	for i, r := range s {
		if unicode.IsSpace(r) || r == '-' {
			flush(i)
			continue
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(s))

	return words
}

// TrimPunctuation strips leading and trailing ASCII punctuation from s,
// leaving interior punctuation (e.g. the apostrophe in "don't") intact.
func TrimPunctuation(s string) string {
	return strings.TrimFunc(s, isASCIIPunctuation)
}

func isASCIIPunctuation(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsPunct(r)
}

// leadingTrimLen returns the byte length of the ASCII punctuation run
// TrimPunctuation would strip from the front of raw.
func leadingTrimLen(raw string) int {
	n := 0
	for _, r := range raw {
		if !isASCIIPunctuation(r) {
			break
		}

		n += len(string(r))
	}

	return n
}
