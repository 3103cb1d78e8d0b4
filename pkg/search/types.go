// Package search implements the query engine:
// tokenize a query, retrieve candidate hits from an Index's containers,
// group and excerpt them per document, score, and truncate to a
// SearchOutput.
package search

// Source identifies which part of a document an intermediate hit came from.
type Source int

const (
	SourceContents Source = iota
	SourceTitle
)

// StopwordScore is the score ceiling a hit is clamped to when its
// originating query token is a stopword.
const StopwordScore = 1.0

// intermediateHit is one candidate match before per-document grouping.
type intermediateHit struct {
	QueryText  string
	URLSuffix  string
	Fields     map[string]string
	DocumentID uint32
	ByteOffset uint32
	// Score is the per-occurrence score used by the v3/v4 scoring path:
	// the matched container's score weighted by the posting's importance,
	// clamped for stopwords.
	Score float64
	// TokenScore is the raw, un-weighted score the matched query token
	// carries (the container's direct score, or the alias score) -- the
	// "result score" the v2 legacy formula in legacy.go averages across
	// matched tokens. Unlike Score, it is not multiplied by importance,
	// since the legacy index format never stored one.
	TokenScore   float64
	Source       Source
	HasURLSuffix bool
}
