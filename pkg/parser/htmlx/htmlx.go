// Package htmlx implements the HTML document parser: apply an
// include/exclude CSS selector pair, walk the matched subtrees in document
// order, and emit text nodes plus title/alt attribute values as the
// canonical text. It uses golang.org/x/net/html node traversal plus
// cascadia selector matching directly rather than a selection-callback API,
// since document-order DFS with exclude precedence and stateful id-tracking
// needs direct node access that a selection-at-a-time API does not give
// cleanly.
package htmlx

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
)

// Config carries the HTML-specific parsing options.
type Config struct {
	IncludeSelector string
	ExcludeSelector string
	SaveNearestID   bool
}

// Parse extracts canonical text and annotated words from raw HTML per cfg.
func Parse(raw string, cfg Config) (string, []core.AnnotatedWord, error) {
	includeSelector := cfg.IncludeSelector
	if includeSelector == "" {
		includeSelector = "main"
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	includeSel, err := cascadia.Compile(includeSelector)
	if err != nil {
		return "", nil, fmt.Errorf("invalid include selector %q: %w", includeSelector, err)
	}

	var excludeSel cascadia.Selector
	if cfg.ExcludeSelector != "" {
		excludeSel, err = cascadia.Compile(cfg.ExcludeSelector)
		if err != nil {
			return "", nil, fmt.Errorf("invalid exclude selector %q: %w", cfg.ExcludeSelector, err)
		}
	}

	roots := topLevelMatches(includeSel.MatchAll(doc))
	if len(roots) == 0 {
		return "", nil, fmt.Errorf("%w: %s", core.ErrSelectorNotPresent, includeSelector)
	}

	w := &walker{excludeSel: excludeSel, saveNearestID: cfg.SaveNearestID}

	var b strings.Builder
	for _, root := range roots {
		w.walk(root, &b)
	}

	canonical := b.String()
	if strings.TrimSpace(canonical) == "" {
		return "", nil, core.ErrEmptyWordList
	}

	words := normalize.Split(canonical)
	annotated := make([]core.AnnotatedWord, len(words))

	for i, word := range words {
		suffix, ok := w.suffixAt(word.ByteOffset)
		annotated[i] = core.AnnotatedWord{
			Word:       word.Text,
			ByteOffset: word.ByteOffset,
			URLSuffix:  suffix,
			HasSuffix:  ok,
		}
	}

	return canonical, annotated, nil
}

// walker performs the document-order DFS, tracking the most recently seen
// element id and the byte offsets at which that id's scope begins.
type walker struct {
	excludeSel    cascadia.Selector
	saveNearestID bool
	currentID     string
	hasID         bool
	breaks        []breakpoint
}

type breakpoint struct {
	offset int
	id     string
	hasID  bool
}

func (w *walker) walk(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		if w.excludeSel != nil && w.excludeSel.Match(n) {
			return
		}

		if w.saveNearestID {
			if id := attr(n, "id"); id != "" {
				w.currentID = id
				w.hasID = true
			}
		}

		if title := attr(n, "title"); title != "" {
			w.emit(b, title)
		}

		if alt := attr(n, "alt"); alt != "" {
			w.emit(b, alt)
		}
	}

	if n.Type == html.TextNode {
		w.emit(b, n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, b)
	}
}

func (w *walker) emit(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if b.Len() > 0 {
		b.WriteByte(' ')
	}

	last := breakpoint{}
	if len(w.breaks) > 0 {
		last = w.breaks[len(w.breaks)-1]
	}

	if last.id != w.currentID || last.hasID != w.hasID {
		w.breaks = append(w.breaks, breakpoint{offset: b.Len(), id: w.currentID, hasID: w.hasID})
	}

	b.WriteString(text)
}

// suffixAt returns the "#<id>" annotation in effect at offset, the byte
// position of a word in the canonical text.
func (w *walker) suffixAt(offset uint32) (string, bool) {
	id, hasID := "", false

	for _, bp := range w.breaks {
		if uint32(bp.offset) > offset { //nolint:gosec // offsets bound by builder length
			break
		}

		id, hasID = bp.id, bp.hasID
	}

	if !hasID {
		return "", false
	}

	return "#" + id, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

// topLevelMatches filters out any matched node that is a descendant of
// another matched node, so an include selector like "main, main p" does not
// visit the same text twice.
func topLevelMatches(nodes []*html.Node) []*html.Node {
	matched := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		matched[n] = true
	}

	var roots []*html.Node

	for _, n := range nodes {
		nested := false

		for p := n.Parent; p != nil; p = p.Parent {
			if matched[p] {
				nested = true
				break
			}
		}

		if !nested {
			roots = append(roots, n)
		}
	}

	return roots
}
