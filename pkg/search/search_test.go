package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/indexer"
	"github.com/stork-search/stork/pkg/normalize"
	"github.com/stork-search/stork/pkg/search"
)

func annotate(words []normalize.Word) []core.AnnotatedWord {
	out := make([]core.AnnotatedWord, len(words))
	for i, w := range words {
		out[i] = core.AnnotatedWord{Word: w.Text, ByteOffset: w.ByteOffset}
	}

	return out
}

func buildIndex(t *testing.T, docs []indexer.ParsedDocument) *core.Index {
	t.Helper()

	idx := indexer.Assemble(docs, indexer.DefaultConfig())
	idx.Config = core.PassthroughConfig{
		TitleBoost: core.TitleBoostModerate, ExcerptBuffer: 8,
		ExcerptsPerResult: 5, DisplayedResultsCount: 10,
	}

	return idx
}

func TestSearch_DirectMatch(t *testing.T) {
	contents := "give me liberty or give me death"

	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "Patrick Henry", URL: "/henry", Contents: contents},
			BodyWords: annotate(normalize.Split(contents)),
		},
	})

	output := search.Search(idx, "liberty")

	require.Len(t, output.Results, 1)
	assert.Equal(t, "/henry", output.Results[0].URL)
	assert.Equal(t, uint32(1), output.TotalHitCount)

	require.Len(t, output.Results[0].Excerpts, 1)

	excerpt := output.Results[0].Excerpts[0]
	assert.Contains(t, excerpt.Text, "liberty")
	require.Len(t, excerpt.HighlightRanges, 1)
}

func TestSearch_NoMatch(t *testing.T) {
	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "t", URL: "/a", Contents: "give me liberty"},
			BodyWords: annotate(normalize.Split("give me liberty")),
		},
	})

	output := search.Search(idx, "tyranny")

	assert.Empty(t, output.Results)
	assert.Equal(t, uint32(0), output.TotalHitCount)
}

func TestSearch_PrefixAliasMatches(t *testing.T) {
	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "t", URL: "/a", Contents: "liberty bell"},
			BodyWords: annotate(normalize.Split("liberty bell")),
		},
	})

	output := search.Search(idx, "lib")

	require.Len(t, output.Results, 1)
	require.Len(t, output.Results[0].Excerpts, 1)
	assert.Contains(t, output.Results[0].Excerpts[0].Text, "liberty")
}

func TestSearch_TitleHighlightsAndBoost(t *testing.T) {
	title := "Liberty Bell"
	body := "liberty is mentioned here in the body text"

	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:   core.Document{ID: 0, Title: title, URL: "/bell", Contents: body},
			TitleWords: annotate(normalize.Split(title)),
			BodyWords:  annotate(normalize.Split(body)),
		},
		{
			// identical body content, but the query word never appears in
			// this document's title -- isolating the title boost's effect.
			Document:  core.Document{ID: 1, Title: "Unrelated Title", URL: "/other", Contents: body},
			BodyWords: annotate(normalize.Split(body)),
		},
	})

	output := search.Search(idx, "liberty")

	require.Len(t, output.Results, 2)

	byURL := make(map[string]core.Result, 2)
	for _, r := range output.Results {
		byURL[r.URL] = r
	}

	titled := byURL["/bell"]
	require.Len(t, titled.TitleHighlightRanges, 1)
	assert.Equal(t, core.Range{Beginning: 0, End: 7}, titled.TitleHighlightRanges[0])
	assert.Empty(t, byURL["/other"].TitleHighlightRanges)

	// the title-boosted document has the same body match as the other but
	// an additional title hit, so it should score strictly higher.
	assert.Greater(t, titled.Score, byURL["/other"].Score)
}

func TestSearch_StopwordTokensAreClamped(t *testing.T) {
	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "t", URL: "/a", Contents: "the liberty of the people"},
			BodyWords: annotate(normalize.Split("the liberty of the people")),
		},
	})

	withStopword := search.Search(idx, "the liberty")
	withoutStopword := search.Search(idx, "liberty")

	require.Len(t, withStopword.Results, 1)
	require.Len(t, withoutStopword.Results, 1)

	// "the" is a stopword and should contribute negligible additional score
	// over searching for "liberty" alone.
	assert.InDelta(t, withoutStopword.Results[0].Score, withStopword.Results[0].Score, 3)
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := buildIndex(t, []indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "t", URL: "/a", Contents: "liberty"},
			BodyWords: annotate(normalize.Split("liberty")),
		},
	})

	output := search.Search(idx, "   ")

	assert.Empty(t, output.Results)
}

func TestSearch_V2UsesLegacyScoreFormula(t *testing.T) {
	contents := "give me liberty or give me death"

	libertyContainer := core.NewContainer()
	libertyContainer.Results[0] = &core.ContainerResult{
		Score:    200,
		Excerpts: []core.Posting{{DocumentID: 0, ByteOffset: 8}},
	}

	idx := &core.Index{
		Version:   core.V2,
		Documents: []core.Document{{ID: 0, Title: "t", URL: "/a", Contents: contents}},
		Containers: map[string]*core.Container{
			"liberty": libertyContainer,
		},
	}

	output := search.Search(idx, "liberty")

	require.Len(t, output.Results, 1)
	// mean token score (200) * content hit count (1) * 1000 / word count (7).
	assert.Equal(t, uint32(28571), output.Results[0].Score)
}

func TestSearch_V2LegacyScoreAveragesAcrossMatchedTokens(t *testing.T) {
	contents := "give me liberty or give me death"

	libertyContainer := core.NewContainer()
	libertyContainer.Results[0] = &core.ContainerResult{
		Score:    200,
		Excerpts: []core.Posting{{DocumentID: 0, ByteOffset: 8}},
	}

	deathContainer := core.NewContainer()
	deathContainer.Results[0] = &core.ContainerResult{
		Score:    100,
		Excerpts: []core.Posting{{DocumentID: 0, ByteOffset: 27}},
	}

	idx := &core.Index{
		Version:   core.V2,
		Documents: []core.Document{{ID: 0, Title: "t", URL: "/a", Contents: contents}},
		Containers: map[string]*core.Container{
			"liberty": libertyContainer,
			"death":   deathContainer,
		},
	}

	output := search.Search(idx, "liberty death")

	require.Len(t, output.Results, 1)
	// mean token score ((200+100)/2=150) * content hit count (2) * 1000 / word count (7).
	assert.Equal(t, uint32(42857), output.Results[0].Score)
}

func TestSearch_DefaultsAppliedWhenIndexHasNoConfig(t *testing.T) {
	contents := "give me liberty"

	idx := indexer.Assemble([]indexer.ParsedDocument{
		{
			Document:  core.Document{ID: 0, Title: "t", URL: "/a", Contents: contents},
			BodyWords: annotate(normalize.Split(contents)),
		},
	}, indexer.DefaultConfig())

	// idx.Config is left at its zero value, as a v2-decoded index would be.
	output := search.Search(idx, "liberty")

	require.Len(t, output.Results, 1)
	assert.Equal(t, "", output.URLPrefix)
}
