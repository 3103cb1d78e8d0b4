package search

import (
	"math"
	"sort"

	"github.com/stork-search/stork/pkg/core"
)

// buildResults groups every candidate hit by document, builds and scores
// excerpts and title highlights, and truncates to the passthrough config's
// excerpts_per_result / displayed_results_count. It returns the truncated,
// score-sorted results plus the total number
// of documents that had at least one hit before truncation. A v2-decoded
// index never produces title hits, but still scores through
// legacyDocumentScore rather than the v3/v4 documentScore, since the two
// formulas disagree even on content-only documents.
func buildResults(idx *core.Index, hits []intermediateHit, cfg core.PassthroughConfig) ([]core.Result, uint32) {
	byDoc := make(map[uint32][]intermediateHit)
	for _, h := range hits {
		byDoc[h.DocumentID] = append(byDoc[h.DocumentID], h)
	}

	words := newDocWords()

	results := make([]core.Result, 0, len(byDoc))

	for docID, docHits := range byDoc {
		if int(docID) >= len(idx.Documents) {
			continue
		}

		doc := idx.Documents[docID]

		var content, title []intermediateHit

		for _, h := range docHits {
			if h.Source == SourceTitle {
				title = append(title, h)
			} else {
				content = append(content, h)
			}
		}

		excerpts := groupContentHits(doc.Contents, words.words(docID, doc.Contents), content, cfg.ExcerptBuffer)

		sort.Slice(excerpts, func(i, j int) bool { return excerpts[i].Score > excerpts[j].Score })

		if int(cfg.ExcerptsPerResult) > 0 && len(excerpts) > int(cfg.ExcerptsPerResult) {
			excerpts = excerpts[:cfg.ExcerptsPerResult]
		}

		titleRanges, titleScore := titleHighlights(doc.Title, title, cfg.TitleBoost)

		var score uint32
		if idx.Version == core.V2 {
			score = legacyDocumentScore(content, doc.Contents)
		} else {
			score = documentScore(excerpts, titleScore)
		}

		results = append(results, core.Result{
			Title:                doc.Title,
			URL:                  doc.URL,
			Fields:               doc.Fields,
			Excerpts:             excerpts,
			TitleHighlightRanges: titleRanges,
			Score:                score,
		})
	}

	totalHitCount := uint32(len(results)) //nolint:gosec // result count is bounded by document count

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return results[i].Title < results[j].Title
	})

	if int(cfg.DisplayedResultsCount) > 0 && len(results) > int(cfg.DisplayedResultsCount) {
		results = results[:cfg.DisplayedResultsCount]
	}

	return results, totalHitCount
}

// titleHighlights dedupes title hits by byte offset, converts their spans to
// character ranges within the title text, and sums their boosted score.
func titleHighlights(title string, hits []intermediateHit, boost core.TitleBoost) ([]core.Range, float64) {
	deduped := dedupeByOffset(hits)
	if len(deduped) == 0 {
		return nil, 0
	}

	sort.Slice(deduped, func(i, j int) bool { return deduped[i].ByteOffset < deduped[j].ByteOffset })

	w := window{text: title, startByte: 0, endByte: len(title)}

	var (
		ranges []core.Range
		score  float64
	)

	for _, h := range deduped {
		hitStart := int(h.ByteOffset)
		hitEnd := hitStart + tokenSpan(title, hitStart)

		cStart, cEnd, ok := charRange(title, w, hitStart, hitEnd)
		if !ok {
			continue
		}

		ranges = append(ranges, core.Range{Beginning: uint32(cStart), End: uint32(cEnd)}) //nolint:gosec // bounded by title length
		score += h.Score * float64(boost)
	}

	return ranges, score
}

// documentScore combines excerpt scores (diminishing returns via an
// exponential-backoff weight by descending rank) with the title boost
// contribution.
func documentScore(excerpts []core.Excerpt, titleScore float64) uint32 {
	total := titleScore

	for rank, e := range excerpts {
		weight := math.Pow(2, 1/float64(rank+1))
		total += float64(e.Score) * weight
	}

	if total < 0 {
		total = 0
	}

	return uint32(total) //nolint:gosec // scores are non-negative and bounded by corpus size
}
