package search

import (
	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
)

// defaultConfig fills in passthrough config defaults for indexes that carry
// none -- a v2-decoded Index has no serialized PassthroughConfig at all,
// per the decoded index's own schema version.
var defaultConfig = core.PassthroughConfig{
	TitleBoost:            core.TitleBoostModerate,
	ExcerptBuffer:         8,
	ExcerptsPerResult:     5,
	DisplayedResultsCount: 10,
}

// Search tokenizes query, retrieves every candidate hit each token
// contributes across the index's containers and their aliases, then groups,
// scores, and truncates those hits into a ranked SearchOutput.
func Search(idx *core.Index, query string) *core.SearchOutput {
	cfg := idx.Config
	if cfg == (core.PassthroughConfig{}) {
		cfg = defaultConfig
	}

	tokens := normalize.Split(query)

	var hits []intermediateHit

	seen := make(map[string]bool, len(tokens))

	for _, t := range tokens {
		word := t.Text
		if word == "" || seen[word] {
			continue
		}

		seen[word] = true

		hits = append(hits, tokenCandidates(idx, word)...)
	}

	results, totalHitCount := buildResults(idx, hits, cfg)

	return &core.SearchOutput{
		URLPrefix:     cfg.URLPrefix,
		Results:       results,
		TotalHitCount: totalHitCount,
	}
}
