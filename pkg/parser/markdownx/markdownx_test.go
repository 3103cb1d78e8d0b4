package markdownx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/parser/htmlx"
	"github.com/stork-search/stork/pkg/parser/markdownx"
)

func TestParse_RendersAndExtractsText(t *testing.T) {
	raw := "# Title\n\nSome **bold** paragraph text."

	canonical, words, err := markdownx.Parse(raw, htmlx.Config{})
	require.NoError(t, err)
	assert.Contains(t, canonical, "Title")
	assert.Contains(t, canonical, "Some")
	assert.Contains(t, canonical, "bold")
	assert.NotEmpty(t, words)
}

func TestParse_IncludeSelectorIsAlwaysOverridden(t *testing.T) {
	raw := "content"

	// an IncludeSelector that would never match anything in the synthetic
	// wrapper should have no effect, since Parse always scopes to "main".
	_, words, err := markdownx.Parse(raw, htmlx.Config{IncludeSelector: "article"})
	require.NoError(t, err)
	assert.NotEmpty(t, words)
}

func TestParse_ExcludeSelectorAppliesWithinRenderedHTML(t *testing.T) {
	raw := "keep this\n\n**drop this**\n\nand this"

	canonical, _, err := markdownx.Parse(raw, htmlx.Config{ExcludeSelector: "strong"})
	require.NoError(t, err)
	assert.NotContains(t, canonical, "drop this")
}
