// Package reader resolves a document descriptor -- inline contents, a local
// path, or a remote URL -- into raw bytes, a detected file type, and any
// frontmatter fields. It never parses the file's contents; that is
// pkg/parser's job.
package reader

import "github.com/stork-search/stork/pkg/core"

// FrontmatterHandling selects how a leading "---"-fenced block is treated.
type FrontmatterHandling int

const (
	// FrontmatterIgnore leaves the text, fence included, intact.
	FrontmatterIgnore FrontmatterHandling = iota
	// FrontmatterOmit strips the fenced block without parsing it.
	FrontmatterOmit
	// FrontmatterParse strips the block and parses it into Fields.
	FrontmatterParse
)

// Descriptor describes one document to read, as configured in
// input.files[]. Exactly one of Contents, SrcPath, or
// SrcURL should be set; Reader.Read treats them as a priority-ordered union.
type Descriptor struct {
	Title    string
	URL      string
	Contents *string
	SrcPath  *string
	SrcURL   *string
	Filetype core.ContentType
}

// Result is what Reader.Read returns on success: the raw text with any
// frontmatter already stripped according to the requested handling mode,
// the detected file type, and any fields extracted from frontmatter.
type Result struct {
	Fields   map[string]string
	Contents string
	Filetype core.ContentType
}
