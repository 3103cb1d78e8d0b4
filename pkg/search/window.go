package search

import (
	"unicode"
	"unicode/utf8"

	"github.com/stork-search/stork/pkg/normalize"
)

// docWords lazily builds and caches each document's word list (the same
// tokenization the indexer used) so hit byte offsets can be mapped back to
// word boundaries for excerpt windowing.
type docWords struct {
	cache map[uint32][]normalize.Word
}

func newDocWords() *docWords {
	return &docWords{cache: make(map[uint32][]normalize.Word)}
}

func (d *docWords) words(docID uint32, contents string) []normalize.Word {
	if w, ok := d.cache[docID]; ok {
		return w
	}

	w := normalize.Split(contents)
	d.cache[docID] = w

	return w
}

// wordIndexAtOrBefore returns the index of the last word whose ByteOffset is
// ≤ offset, or 0 if none qualifies.
func wordIndexAtOrBefore(words []normalize.Word, offset uint32) int {
	idx := 0

	for i, w := range words {
		if w.ByteOffset > offset {
			break
		}

		idx = i
	}

	return idx
}

// tokenSpan returns the byte length of the raw token beginning at start in
// contents, scanning until the next whitespace/hyphen boundary or the end of
// the string -- the same boundary normalize.Split itself splits on.
func tokenSpan(contents string, start int) int {
	end := start

	for end < len(contents) {
		r, size := utf8.DecodeRuneInString(contents[end:])
		if unicode.IsSpace(r) || r == '-' {
			break
		}

		end += size
	}

	return end - start
}

// window is the extracted excerpt text plus the byte range it spans within
// the document's Contents.
type window struct {
	text      string
	startByte int
	endByte   int
}

// buildWindow extracts the text window spanning excerptBuffer words before
// the first hit through excerptBuffer words after the last hit in a group,
// clipped to the document.
func buildWindow(contents string, words []normalize.Word, firstOffset, lastOffset uint32, excerptBuffer uint8) window {
	if len(words) == 0 {
		return window{text: "", startByte: 0, endByte: 0}
	}

	firstIdx := wordIndexAtOrBefore(words, firstOffset)
	lastIdx := wordIndexAtOrBefore(words, lastOffset)

	startIdx := firstIdx - int(excerptBuffer)
	if startIdx < 0 {
		startIdx = 0
	}

	endIdx := lastIdx + int(excerptBuffer)
	if endIdx > len(words)-1 {
		endIdx = len(words) - 1
	}

	startByte := int(words[startIdx].ByteOffset)
	lastWordStart := int(words[endIdx].ByteOffset)
	endByte := lastWordStart + tokenSpan(contents, lastWordStart)

	if endByte > len(contents) {
		endByte = len(contents)
	}

	return window{text: contents[startByte:endByte], startByte: startByte, endByte: endByte}
}

// charRange converts a byte range within a document's Contents into a
// character range relative to a window's start, clipped to the window.
func charRange(contents string, w window, hitStartByte, hitEndByte int) (start, end int, ok bool) {
	if hitEndByte <= w.startByte || hitStartByte >= w.endByte {
		return 0, 0, false
	}

	if hitStartByte < w.startByte {
		hitStartByte = w.startByte
	}

	if hitEndByte > w.endByte {
		hitEndByte = w.endByte
	}

	start = utf8.RuneCountInString(contents[w.startByte:hitStartByte])
	end = start + utf8.RuneCountInString(contents[hitStartByte:hitEndByte])

	return start, end, true
}
