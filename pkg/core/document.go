// Package core defines the data model shared by the build pipeline and the
// query engine: documents, postings, the container-based inverted index, and
// the shapes returned to a search caller.
package core

import "encoding/json"

// ContentType identifies the format a document's raw bytes were parsed from.
type ContentType string

const (
	ContentTypePlainText ContentType = "plaintext"
	ContentTypeHTML      ContentType = "html"
	ContentTypeMarkdown  ContentType = "markdown"
	ContentTypeSRT       ContentType = "srt"
)

// Document is the canonical, immutable representation of one indexed file.
// Offsets stored in postings refer to byte positions within Contents.
type Document struct {
	Fields   map[string]string
	Title    string
	URL      string
	Contents string
	ID       uint32
}

// AnnotatedWord is a transient, build-time record of one normalized word
// occurrence produced by a parser. It is never serialized directly; the
// index assembler consumes it to populate Container postings.
type AnnotatedWord struct {
	Word       string
	URLSuffix  string
	ByteOffset uint32
	HasSuffix  bool
}

// Posting records one occurrence of a word in a document's body.
// The Rust source calls this a "ContentsExcerpt"; Go code here favors the
// more descriptive Posting name throughout.
type Posting struct {
	URLSuffix    string
	DocumentID   uint32
	ByteOffset   uint32
	Importance   float64
	HasURLSuffix bool
}

// TitleHit records one occurrence of a word in a document's title.
type TitleHit struct {
	DocumentID uint32
	ByteOffset uint32
}

// ContainerResult is the per-document bucket of postings held by a Container,
// plus the flat relevance score the assembler computed for that (word,
// document) pair.
type ContainerResult struct {
	Excerpts []Posting
	Score    uint8
}

// Container is the per-term block of the inverted index: direct postings
// keyed by document, plus alias edges to other containers. Aliases are
// one-hop only -- an alias target is never itself an alias key -- so
// resolving an alias is always a single extra map lookup.
type Container struct {
	Results   map[uint32]*ContainerResult
	Aliases   map[string]uint8
	TitleHits []TitleHit
}

// NewContainer returns an empty, ready-to-populate Container.
func NewContainer() *Container {
	return &Container{
		Results: make(map[uint32]*ContainerResult),
		Aliases: make(map[string]uint8),
	}
}

// PassthroughConfig carries the subset of build-time output configuration
// that the query engine needs at search time; it rides along in the
// serialized index so a loaded index is self-contained.
type PassthroughConfig struct {
	URLPrefix             string
	TitleBoost            TitleBoost
	ExcerptBuffer         uint8
	ExcerptsPerResult     uint8
	DisplayedResultsCount uint8
}

// TitleBoost is the fixed per-hit score multiplier applied when a hit's
// source is a document title rather than body content.
type TitleBoost int

const (
	TitleBoostMinimal    TitleBoost = 25
	TitleBoostModerate   TitleBoost = 75
	TitleBoostLarge      TitleBoost = 150
	TitleBoostRidiculous TitleBoost = 5000
)

// Index is the fully built, immutable search index: documents plus the
// container map that is the inverted index over their words.
type Index struct {
	Containers map[string]*Container
	Documents  []Document
	Config     PassthroughConfig
	Version    Version
}

// Version identifies which on-disk schema an Index was decoded from, or will
// be encoded as. v2 and v3 share the query contract described in
// pkg/search; v2 lacks title hits, url-suffix annotations, and passthrough
// config, so those features degrade to empty when a v2 index is loaded.
type Version int

const (
	VersionUnknown Version = iota
	V2
	V3
	V4
)

// Range is a half-open span of character (not byte) positions within an
// Excerpt's text or a Result's title. Field names and tags match the
// highlight_ranges entries in the Search API's JSON schema.
type Range struct {
	Beginning uint32 `json:"beginning"`
	End       uint32 `json:"end"`
}

// Annotation carries the url_suffix recorded on a hit (an SRT timestamp
// fragment or an HTML id anchor) so a consumer can modify a result's link
// target per excerpt. It marshals as the single-key {"a": "<url-suffix>"}
// object the JSON schema documents.
type Annotation struct {
	URLSuffix string
}

// MarshalJSON renders an Annotation as {"a": "<url-suffix>"}.
func (a Annotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		A string `json:"a"`
	}{A: a.URLSuffix})
}

// Excerpt is a window of canonical document text surrounding one or more
// hits, plus the character ranges to highlight within that window.
type Excerpt struct {
	Text                string            `json:"text"`
	Fields              map[string]string `json:"fields,omitempty"`
	HighlightRanges     []Range           `json:"highlight_ranges"`
	InternalAnnotations []Annotation      `json:"internal_annotations,omitempty"`
	Score               uint32            `json:"score"`
}

// Result is one document's worth of search output: the rendered document
// summary, its highlighted excerpts, title highlight ranges, and score.
type Result struct {
	Fields               map[string]string `json:"-"`
	Title                string            `json:"-"`
	URL                  string            `json:"-"`
	Excerpts             []Excerpt         `json:"excerpts"`
	TitleHighlightRanges []Range           `json:"title_highlight_ranges"`
	Score                uint32            `json:"score"`
}

// resultEntry is the "entry" object the JSON schema nests a Result's
// document summary under.
type resultEntry struct {
	URL    string            `json:"url"`
	Title  string            `json:"title"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MarshalJSON renders a Result with its URL/Title/Fields nested under an
// "entry" key, matching the Search API's documented schema.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result

	return json.Marshal(struct {
		Entry resultEntry `json:"entry"`
		alias
	}{
		Entry: resultEntry{URL: r.URL, Title: r.Title, Fields: r.Fields},
		alias: alias(r),
	})
}

// SearchOutput is the full response to a single query.
type SearchOutput struct {
	URLPrefix     string   `json:"url_prefix"`
	Results       []Result `json:"results"`
	TotalHitCount uint32   `json:"total_hit_count"`
}
