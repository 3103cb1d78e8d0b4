// Package parser dispatches a detected content type to the format-specific
// extractor, turning raw text into canonical text plus an ordered list of
// annotated words. Parsing is purely functional: no I/O, no shared state
// between calls.
package parser

import (
	"fmt"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
	"github.com/stork-search/stork/pkg/parser/htmlx"
	"github.com/stork-search/stork/pkg/parser/markdownx"
	"github.com/stork-search/stork/pkg/parser/srt"
)

// Config carries every per-document parsing option exposed
// under input.*: the HTML include/exclude selectors and the SRT timestamp
// linking settings.
type Config struct {
	IncludeSelector string
	ExcludeSelector string
	SaveNearestID   bool
	SRT             srt.Config
}

// DefaultConfig returns the documented defaults: include selector "main",
// no exclude selector, nearest-id tracking on, timestamp linking on.
func DefaultConfig() Config {
	return Config{
		IncludeSelector: "main",
		SaveNearestID:   true,
		SRT:             srt.DefaultConfig(),
	}
}

// Parse extracts canonical text and annotated words from raw content of the
// given file type.
func Parse(filetype core.ContentType, raw string, cfg Config) (string, []core.AnnotatedWord, error) {
	switch filetype {
	case core.ContentTypePlainText:
		return parsePlainText(raw)
	case core.ContentTypeSRT:
		return srt.Parse(raw, cfg.SRT)
	case core.ContentTypeHTML:
		return htmlx.Parse(raw, htmlx.Config{
			IncludeSelector: cfg.IncludeSelector,
			ExcludeSelector: cfg.ExcludeSelector,
			SaveNearestID:   cfg.SaveNearestID,
		})
	case core.ContentTypeMarkdown:
		return markdownx.Parse(raw, htmlx.Config{
			ExcludeSelector: cfg.ExcludeSelector,
			SaveNearestID:   cfg.SaveNearestID,
		})
	default:
		return "", nil, fmt.Errorf("%w: %q", core.ErrUnknownContentType, filetype)
	}
}

func parsePlainText(raw string) (string, []core.AnnotatedWord, error) {
	words := normalize.Split(raw)
	annotated := make([]core.AnnotatedWord, len(words))

	for i, w := range words {
		annotated[i] = core.AnnotatedWord{Word: w.Text, ByteOffset: w.ByteOffset}
	}

	return raw, annotated, nil
}
