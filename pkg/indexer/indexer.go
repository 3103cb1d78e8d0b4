// Package indexer implements the index assembler: it turns a corpus of
// parsed documents into the inverted-index Container map, computing
// per-word TF-IDF importance, direct postings, prefix aliases, and stem
// aliases.
package indexer

import (
	"math"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
	"github.com/stork-search/stork/pkg/stem"
)

// DirectScore is the relevance score recorded for a word's own container
// entry -- the highest a (word, document) pairing can score, since every
// alias edge (prefix or stem) necessarily scores lower.
const DirectScore uint8 = 255

// PrefixScore is the fixed base score a prefix alias starts from before the
// residual-length penalty is subtracted.
const PrefixScore uint8 = 127

// StemScore is the fixed score recorded for every stem alias edge. It is
// lower than the shortest possible prefix alias score so stem matches always
// rank behind prefix matches.
const StemScore uint8 = 1

const (
	defaultMinimumPrefixLength    = 3
	defaultMinimumCJKPrefixLength = 1
)

// ParsedDocument is one document's parser output, ready for assembly: the
// canonical Document record plus its title and body word streams.
type ParsedDocument struct {
	Document   core.Document
	TitleWords []core.AnnotatedWord
	BodyWords  []core.AnnotatedWord
	Stemmer    *stem.Stemmer
}

// Config carries the subset of build configuration the assembler consults.
type Config struct {
	MinimumPrefixLength    uint8
	MinimumCJKPrefixLength uint8
	Passthrough            core.PassthroughConfig
}

// DefaultConfig returns the documented prefix-length defaults.
func DefaultConfig() Config {
	return Config{
		MinimumPrefixLength:    defaultMinimumPrefixLength,
		MinimumCJKPrefixLength: defaultMinimumCJKPrefixLength,
	}
}

// Assemble builds the full Container map and Document list for docs, in
// input order.
func Assemble(docs []ParsedDocument, cfg Config) *core.Index {
	if cfg.MinimumPrefixLength == 0 {
		cfg.MinimumPrefixLength = defaultMinimumPrefixLength
	}

	if cfg.MinimumCJKPrefixLength == 0 {
		cfg.MinimumCJKPrefixLength = defaultMinimumCJKPrefixLength
	}

	importance := computeImportance(docs)

	containers := make(map[string]*core.Container)
	documents := make([]core.Document, len(docs))

	reverseStems := buildReverseStemSets(docs)

	container := func(word string) *core.Container {
		c, ok := containers[word]
		if !ok {
			c = core.NewContainer()
			containers[word] = c
		}

		return c
	}

	for i, pd := range docs {
		documents[i] = pd.Document
		docID := pd.Document.ID

		for _, tw := range pd.TitleWords {
			c := container(tw.Word)
			c.TitleHits = append(c.TitleHits, core.TitleHit{DocumentID: docID, ByteOffset: tw.ByteOffset})
			insertAliases(containers, tw.Word, pd.Stemmer, reverseStems, cfg)
		}

		for _, bw := range pd.BodyWords {
			c := container(bw.Word)

			result, ok := c.Results[docID]
			if !ok {
				result = &core.ContainerResult{Score: DirectScore}
				c.Results[docID] = result
			}

			result.Excerpts = append(result.Excerpts, core.Posting{
				DocumentID:   docID,
				ByteOffset:   bw.ByteOffset,
				Importance:   importance[bw.Word],
				URLSuffix:    bw.URLSuffix,
				HasURLSuffix: bw.HasSuffix,
			})

			insertAliases(containers, bw.Word, pd.Stemmer, reverseStems, cfg)
		}
	}

	return &core.Index{
		Containers: containers,
		Documents:  documents,
		Config:     cfg.Passthrough,
		Version:    core.V4,
	}
}

// computeImportance assigns every distinct word across the corpus a single
// TF-IDF-derived importance value, shared by every posting for that word.
func computeImportance(docs []ParsedDocument) map[string]float64 {
	type stats struct {
		occurrences int
		docs        map[uint32]bool
	}

	wordStats := make(map[string]*stats)

	totalTokens := 0
	totalDocs := len(docs)

	touch := func(word string, docID uint32) {
		s, ok := wordStats[word]
		if !ok {
			s = &stats{docs: make(map[uint32]bool)}
			wordStats[word] = s
		}

		s.occurrences++
		s.docs[docID] = true
		totalTokens++
	}

	for _, pd := range docs {
		for _, w := range pd.TitleWords {
			touch(w.Word, pd.Document.ID)
		}

		for _, w := range pd.BodyWords {
			touch(w.Word, pd.Document.ID)
		}
	}

	importance := make(map[string]float64, len(wordStats))

	for word, s := range wordStats {
		tf := float64(s.occurrences) / float64(maxInt(totalTokens, 1))
		idf := math.Log(float64(totalDocs)/float64(len(s.docs)) + 10)

		importance[word] = 1 / (tf * idf)
	}

	return importance
}

// insertAliases inserts the prefix alias entries for word, and -- when a
// Stemmer is configured for this document -- the stem alias entries that
// tie word to every other word sharing its stem across the corpus.
func insertAliases(
	containers map[string]*core.Container,
	word string,
	stemmer *stem.Stemmer,
	reverseStems map[string]map[string]bool,
	cfg Config,
) {
	minLen := cfg.MinimumPrefixLength
	if normalize.IsCJKIdeographic(word) {
		minLen = cfg.MinimumCJKPrefixLength
	}

	runes := []rune(word)
	for n := int(minLen); n < len(runes); n++ {
		prefix := string(runes[:n])

		c, ok := containers[prefix]
		if !ok {
			c = core.NewContainer()
			containers[prefix] = c
		}

		if _, exists := c.Aliases[word]; exists {
			continue
		}

		residual := uint8(len(runes) - n) //nolint:gosec // bounded by word length
		c.Aliases[word] = PrefixScore - minUint8(residual, PrefixScore)
	}

	if stemmer == nil || !stemmer.Enabled() {
		return
	}

	stemmed := stemmer.Stem(word)

	for other := range reverseStems[stemmed] {
		if other == word {
			continue
		}

		c, ok := containers[other]
		if !ok {
			c = core.NewContainer()
			containers[other] = c
		}

		if _, exists := c.Aliases[word]; exists {
			continue
		}

		c.Aliases[word] = StemScore
	}
}

// buildReverseStemSets computes, for every distinct stem produced anywhere
// in the corpus, the set of distinct normalized words that share it -- the
// reverse-stem set. Words are visited in input
// order, document by document, word by word, matching the assembler's own
// determinism guarantee.
func buildReverseStemSets(docs []ParsedDocument) map[string]map[string]bool {
	sets := make(map[string]map[string]bool)

	for _, pd := range docs {
		if pd.Stemmer == nil || !pd.Stemmer.Enabled() {
			continue
		}

		for _, w := range append(append([]core.AnnotatedWord{}, pd.TitleWords...), pd.BodyWords...) {
			stemmed := pd.Stemmer.Stem(w.Word)

			set, ok := sets[stemmed]
			if !ok {
				set = make(map[string]bool)
				sets[stemmed] = set
			}

			set[w.Word] = true
		}
	}

	return sets
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minUint8(a, b uint8) uint8 {
	if a < b {
		return a
	}

	return b
}
