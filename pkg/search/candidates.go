package search

import "github.com/stork-search/stork/pkg/core"

// tokenCandidates retrieves every intermediate hit contributed by a single
// query token: its own container's direct postings and title hits, plus
// every alias target's postings and title hits.
func tokenCandidates(idx *core.Index, token string) []intermediateHit {
	container, ok := idx.Containers[token]
	if !ok {
		return nil
	}

	clamp := isStopword(token)

	hits := hitsFromContainer(idx, token, container, container.Results, clamp)

	for aliasWord, aliasScore := range container.Aliases {
		aliasContainer, ok := idx.Containers[aliasWord]
		if !ok {
			continue
		}

		hits = append(hits, hitsFromAliasedContainer(idx, aliasWord, aliasContainer, aliasScore, clamp)...)
	}

	return hits
}

// hitsFromContainer builds the direct hits for a container matched exactly
// by a query token: title hits score at the fixed titleHitScore, and content
// hits score at their own ContainerResult.Score weighted by
// each posting's importance.
func hitsFromContainer(
	idx *core.Index,
	queryText string,
	c *core.Container,
	results map[uint32]*core.ContainerResult,
	clamp bool,
) []intermediateHit {
	var hits []intermediateHit

	for _, th := range c.TitleHits {
		hits = append(hits, intermediateHit{
			QueryText:  queryText,
			DocumentID: th.DocumentID,
			ByteOffset: th.ByteOffset,
			Source:     SourceTitle,
			Score:      clampScore(titleHitScore, clamp),
			TokenScore: titleHitScore,
		})
	}

	for docID, result := range results {
		for _, p := range result.Excerpts {
			hits = append(hits, intermediateHit{
				QueryText:    queryText,
				DocumentID:   docID,
				ByteOffset:   p.ByteOffset,
				Source:       SourceContents,
				URLSuffix:    p.URLSuffix,
				HasURLSuffix: p.HasURLSuffix,
				Fields:       fieldsFor(idx, docID),
				Score:        clampScore(float64(result.Score)*p.Importance, clamp),
				TokenScore:   float64(result.Score),
			})
		}
	}

	return hits
}

// hitsFromAliasedContainer builds the hits contributed when a query token
// only matches via a prefix or stem alias: every hit is tagged with the
// alias target as its query text and scored from the fixed alias_score
// rather than the target container's own per-document score.
func hitsFromAliasedContainer(
	idx *core.Index,
	aliasWord string,
	c *core.Container,
	aliasScore uint8,
	clamp bool,
) []intermediateHit {
	var hits []intermediateHit

	for _, th := range c.TitleHits {
		hits = append(hits, intermediateHit{
			QueryText:  aliasWord,
			DocumentID: th.DocumentID,
			ByteOffset: th.ByteOffset,
			Source:     SourceTitle,
			Score:      clampScore(float64(aliasScore), clamp),
			TokenScore: float64(aliasScore),
		})
	}

	for docID, result := range c.Results {
		for _, p := range result.Excerpts {
			hits = append(hits, intermediateHit{
				QueryText:    aliasWord,
				DocumentID:   docID,
				ByteOffset:   p.ByteOffset,
				Source:       SourceContents,
				URLSuffix:    p.URLSuffix,
				HasURLSuffix: p.HasURLSuffix,
				Fields:       fieldsFor(idx, docID),
				Score:        clampScore(float64(aliasScore)*p.Importance, clamp),
				TokenScore:   float64(aliasScore),
			})
		}
	}

	return hits
}

// titleHitScore is the fixed per-hit score a title match contributes before
// the document-level title boost multiplier is applied in scoring.go.
const titleHitScore = 1.0

func clampScore(score float64, clamp bool) float64 {
	if clamp && score > StopwordScore {
		return StopwordScore
	}

	return score
}

func fieldsFor(idx *core.Index, docID uint32) map[string]string {
	if int(docID) >= len(idx.Documents) {
		return nil
	}

	return idx.Documents[docID].Fields
}
