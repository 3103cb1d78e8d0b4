// Package markdownx implements the Markdown parser: render to HTML via a
// CommonMark translator, wrap it in a skeleton document, and hand it to the
// HTML parser with the default include selector "main".
package markdownx

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/parser/htmlx"
)

var renderer = goldmark.New()

// Parse converts raw Markdown to HTML and delegates extraction to htmlx.
// cfg.IncludeSelector is ignored; Markdown documents are always scoped to
// the synthetic "main" wrapper this package introduces.
func Parse(raw string, cfg htmlx.Config) (string, []core.AnnotatedWord, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(raw), &buf); err != nil {
		return "", nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	wrapped := "<html><body><main>" + buf.String() + "</main></body></html>"

	cfg.IncludeSelector = "main"

	return htmlx.Parse(wrapped, cfg)
}
