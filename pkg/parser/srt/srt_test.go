package srt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/parser/srt"
)

const sampleSRT = "1\n00:00:10,000 --> 00:00:12,000\nHello there\n\n2\n00:00:15,500 --> 00:00:18,000\nGeneral Kenobi\n"

func TestParse_ConcatenatesBlockText(t *testing.T) {
	canonical, _, err := srt.Parse(sampleSRT, srt.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Hello there General Kenobi", canonical)
}

func TestParse_TimestampLinkingProducesURLSuffix(t *testing.T) {
	_, words, err := srt.Parse(sampleSRT, srt.DefaultConfig())
	require.NoError(t, err)
	require.NotEmpty(t, words)

	first := words[0]
	assert.True(t, first.HasSuffix)
	assert.Equal(t, "&t=10", first.URLSuffix)

	var last core.AnnotatedWord
	for _, w := range words {
		if w.Word == "kenobi" {
			last = w
		}
	}

	require.NotEmpty(t, last.Word)
	assert.Equal(t, "&t=15", last.URLSuffix)
}

func TestParse_TimestampLinkingDisabled(t *testing.T) {
	cfg := srt.DefaultConfig()
	cfg.TimestampLinking = false

	_, words, err := srt.Parse(sampleSRT, cfg)
	require.NoError(t, err)

	for _, w := range words {
		assert.False(t, w.HasSuffix)
	}
}

func TestParse_CustomTimestampTemplate(t *testing.T) {
	cfg := srt.Config{TimestampLinking: true, TimestampTemplate: "#at-{ts}s"}

	_, words, err := srt.Parse(sampleSRT, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, words)
	assert.Equal(t, "#at-10s", words[0].URLSuffix)
}

func TestParse_NoBlocksIsInvalid(t *testing.T) {
	_, _, err := srt.Parse("", srt.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidSRT)
}

func TestParse_MalformedBlockIsInvalid(t *testing.T) {
	_, _, err := srt.Parse("1\nnot a timestamp\ntext", srt.DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidSRT)
}

func TestParse_BlockWithoutSequenceNumber(t *testing.T) {
	raw := "00:00:01,000 --> 00:00:02,000\njust text"

	canonical, words, err := srt.Parse(raw, srt.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "just text", canonical)
	require.NotEmpty(t, words)
	assert.Equal(t, "&t=1", words[0].URLSuffix)
}
