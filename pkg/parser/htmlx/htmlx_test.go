package htmlx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/parser/htmlx"
)

func wordTexts(words []core.AnnotatedWord) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Word
	}

	return out
}

func TestParse_DefaultIncludeSelectorIsMain(t *testing.T) {
	raw := `<html><body><nav>skip me</nav><main>hello world</main></body></html>`

	canonical, words, err := htmlx.Parse(raw, htmlx.Config{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", canonical)
	assert.Equal(t, []string{"hello", "world"}, wordTexts(words))
}

func TestParse_MissingIncludeSelectorErrors(t *testing.T) {
	raw := `<html><body><p>no main here</p></body></html>`

	_, _, err := htmlx.Parse(raw, htmlx.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSelectorNotPresent)
}

func TestParse_ExcludeSelectorSkipsSubtree(t *testing.T) {
	raw := `<main>keep this <aside>drop this</aside> and this</main>`

	canonical, _, err := htmlx.Parse(raw, htmlx.Config{ExcludeSelector: "aside"})
	require.NoError(t, err)
	assert.Equal(t, "keep this and this", canonical)
}

func TestParse_TitleAndAltAttributesAreEmitted(t *testing.T) {
	raw := `<main><img src="x.png" alt="a picture" title="tooltip"></main>`

	canonical, _, err := htmlx.Parse(raw, htmlx.Config{})
	require.NoError(t, err)
	assert.Contains(t, canonical, "tooltip")
	assert.Contains(t, canonical, "a picture")
}

func TestParse_SaveNearestIDAnnotatesWordsWithURLSuffix(t *testing.T) {
	raw := `<main><h2 id="intro">Introduction</h2><p>some body text</p></main>`

	_, words, err := htmlx.Parse(raw, htmlx.Config{SaveNearestID: true})
	require.NoError(t, err)
	require.NotEmpty(t, words)

	for _, w := range words {
		assert.True(t, w.HasSuffix, "word %q should carry the nearest id", w.Word)
		assert.Equal(t, "#intro", w.URLSuffix)
	}
}

func TestParse_NoIDsWhenSaveNearestIDDisabled(t *testing.T) {
	raw := `<main><h2 id="intro">Introduction</h2></main>`

	_, words, err := htmlx.Parse(raw, htmlx.Config{SaveNearestID: false})
	require.NoError(t, err)

	for _, w := range words {
		assert.False(t, w.HasSuffix)
	}
}

func TestParse_EmptyTextErrors(t *testing.T) {
	raw := `<main>   </main>`

	_, _, err := htmlx.Parse(raw, htmlx.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyWordList)
}

func TestParse_DoesNotDoubleVisitNestedSelectorMatches(t *testing.T) {
	raw := `<main><p>only once</p></main>`

	canonical, _, err := htmlx.Parse(raw, htmlx.Config{IncludeSelector: "main, main p"})
	require.NoError(t, err)
	assert.Equal(t, "only once", canonical)
}
