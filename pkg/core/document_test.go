package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork-search/stork/pkg/core"
)

func TestAnnotation_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(core.Annotation{URLSuffix: "&t=10"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"&t=10"}`, string(out))
}

func TestResult_MarshalJSON_NestsEntry(t *testing.T) {
	result := core.Result{
		Title:  "Give Me Liberty",
		URL:    "/henry",
		Fields: map[string]string{"author": "Patrick Henry"},
		Excerpts: []core.Excerpt{
			{
				Text:            "give me liberty or give me death",
				HighlightRanges: []core.Range{{Beginning: 8, End: 15}},
				Score:           42,
			},
		},
		TitleHighlightRanges: []core.Range{{Beginning: 0, End: 12}},
		Score:                100,
	}

	out, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(out, &decoded))

	entry, ok := decoded["entry"].(map[string]any)
	require.True(t, ok, "expected a nested \"entry\" object")
	assert.Equal(t, "/henry", entry["url"])
	assert.Equal(t, "Give Me Liberty", entry["title"])
	assert.Equal(t, "Patrick Henry", entry["fields"].(map[string]any)["author"])

	assert.NotContains(t, decoded, "title")
	assert.NotContains(t, decoded, "url")
	assert.NotContains(t, decoded, "fields")

	assert.Equal(t, float64(100), decoded["score"])

	excerpts, ok := decoded["excerpts"].([]any)
	require.True(t, ok)
	require.Len(t, excerpts, 1)
}

func TestSearchOutput_MarshalJSON(t *testing.T) {
	output := core.SearchOutput{
		URLPrefix: "https://example.com",
		Results: []core.Result{
			{Title: "A", URL: "/a", Score: 5},
		},
		TotalHitCount: 1,
	}

	out, err := json.Marshal(output)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"url_prefix": "https://example.com",
		"total_hit_count": 1,
		"results": [
			{
				"entry": {"url": "/a", "title": "A"},
				"excerpts": null,
				"title_highlight_ranges": null,
				"score": 5
			}
		]
	}`, string(out))
}
