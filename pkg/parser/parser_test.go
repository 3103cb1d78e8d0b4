package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/parser"
)

func TestParse_PlainText(t *testing.T) {
	canonical, words, err := parser.Parse(core.ContentTypePlainText, "give me liberty", parser.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "give me liberty", canonical)
	require.Len(t, words, 3)
	assert.Equal(t, "liberty", words[2].Word)
}

func TestParse_HTML(t *testing.T) {
	canonical, _, err := parser.Parse(core.ContentTypeHTML, "<main>hello world</main>", parser.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hello world", canonical)
}

func TestParse_Markdown(t *testing.T) {
	canonical, _, err := parser.Parse(core.ContentTypeMarkdown, "# Heading", parser.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, canonical, "Heading")
}

func TestParse_SRT(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nhello"

	canonical, words, err := parser.Parse(core.ContentTypeSRT, raw, parser.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hello", canonical)
	require.Len(t, words, 1)
	assert.Equal(t, "&t=1", words[0].URLSuffix)
}

func TestParse_UnknownFiletype(t *testing.T) {
	_, _, err := parser.Parse(core.ContentType("weird"), "x", parser.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownContentType)
}
