package normalize

import "unicode"

// cjkIdeographs covers the CJK Unified Ideographs block plus its Extension
// A-G and Compatibility Ideographs blocks, and also the CJK Radicals
// Supplement block. unicode.RangeTable is the stdlib
// primitive for exactly this kind of codepoint-range membership test; no
// ecosystem library expresses it more directly.
var cjkIdeographs = rangeTable(
	[2]rune{0x2E80, 0x2EFF},   // CJK Radicals Supplement
	[2]rune{0x3400, 0x4DBF},   // Extension A
	[2]rune{0x4E00, 0x9FFF},   // Unified Ideographs
	[2]rune{0xF900, 0xFAFF},   // Compatibility Ideographs
	[2]rune{0x20000, 0x2A6DF}, // Extension B
	[2]rune{0x2A700, 0x2B73F}, // Extension C
	[2]rune{0x2B740, 0x2B81F}, // Extension D
	[2]rune{0x2B820, 0x2CEAF}, // Extension E
	[2]rune{0x2CEB0, 0x2EBEF}, // Extension F
	[2]rune{0x30000, 0x3134F}, // Extension G
	[2]rune{0x2F800, 0x2FA1F}, // Compatibility Ideographs Supplement
)

func rangeTable(spans ...[2]rune) *unicode.RangeTable {
	table := &unicode.RangeTable{}

	for _, span := range spans {
		table.R32 = append(table.R32, unicode.Range32{
			Lo:     uint32(span[0]),
			Hi:     uint32(span[1]),
			Stride: 1,
		})
	}

	return table
}

// IsCJKIdeographic reports whether every rune in the word lies within the
// blocks listed in cjkIdeographs. A word like this uses the shorter minimum
// prefix-expansion length.
func IsCJKIdeographic(word string) bool {
	if word == "" {
		return false
	}

	for _, r := range word {
		if !unicode.In(r, cjkIdeographs) {
			return false
		}
	}

	return true
}
