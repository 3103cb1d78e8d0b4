package search

import (
	"sort"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
)

// groupContentHits dedupes, sorts,
// greedy-sweep into groups, then turn each group into a scored Excerpt.
func groupContentHits(contents string, words []normalize.Word, hits []intermediateHit, excerptBuffer uint8) []core.Excerpt {
	deduped := dedupeByOffset(hits)
	if len(deduped) == 0 {
		return nil
	}

	sort.Slice(deduped, func(i, j int) bool { return deduped[i].ByteOffset < deduped[j].ByteOffset })

	var excerpts []core.Excerpt

	start := 0

	for i := 1; i <= len(deduped); i++ {
		if i < len(deduped) && deduped[i].ByteOffset-deduped[start].ByteOffset < uint32(excerptBuffer) {
			continue
		}

		excerpts = append(excerpts, buildExcerpt(contents, words, deduped[start:i], excerptBuffer))
		start = i
	}

	return excerpts
}

// dedupeByOffset keeps, for each distinct byte offset, the hit with the
// highest score.
func dedupeByOffset(hits []intermediateHit) []intermediateHit {
	best := make(map[uint32]intermediateHit, len(hits))

	for _, h := range hits {
		existing, ok := best[h.ByteOffset]
		if !ok || h.Score > existing.Score {
			best[h.ByteOffset] = h
		}
	}

	out := make([]intermediateHit, 0, len(best))
	for _, h := range best {
		out = append(out, h)
	}

	return out
}

func buildExcerpt(contents string, words []normalize.Word, group []intermediateHit, excerptBuffer uint8) core.Excerpt {
	first, last := group[0].ByteOffset, group[0].ByteOffset
	for _, h := range group[1:] {
		if h.ByteOffset < first {
			first = h.ByteOffset
		}

		if h.ByteOffset > last {
			last = h.ByteOffset
		}
	}

	w := buildWindow(contents, words, first, last, excerptBuffer)

	var (
		ranges      []core.Range
		annotations []core.Annotation
		rawSum      float64
		charSpan    int
		highlighted int
		fields      map[string]string
	)

	firstStart, lastEnd := -1, -1

	for _, h := range group {
		rawSum += h.Score

		if fields == nil {
			fields = h.Fields
		}

		if h.HasURLSuffix {
			annotations = append(annotations, core.Annotation{URLSuffix: h.URLSuffix})
		}

		hitStart := int(h.ByteOffset)
		hitEnd := hitStart + tokenSpan(contents, hitStart)

		cStart, cEnd, ok := charRange(contents, w, hitStart, hitEnd)
		if !ok {
			continue
		}

		ranges = append(ranges, core.Range{Beginning: uint32(cStart), End: uint32(cEnd)}) //nolint:gosec // bounded by window length

		if firstStart < 0 || cStart < firstStart {
			firstStart = cStart
		}

		if lastEnd < 0 || cEnd > lastEnd {
			lastEnd = cEnd
		}

		highlighted += cEnd - cStart
	}

	if firstStart >= 0 {
		charSpan = lastEnd - firstStart
	}

	score := rawSum - float64(charSpan-highlighted)
	if score < 0 {
		score = 0
	}

	return core.Excerpt{
		Text:                w.text,
		Fields:              fields,
		HighlightRanges:     ranges,
		InternalAnnotations: annotations,
		Score:               uint32(score), //nolint:gosec // clamped non-negative above
	}
}
