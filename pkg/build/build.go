package build

import (
	"context"
	"fmt"

	"github.com/stork-search/stork/pkg/codec"
	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/indexer"
	"github.com/stork-search/stork/pkg/normalize"
	"github.com/stork-search/stork/pkg/parser"
	"github.com/stork-search/stork/pkg/reader"
	"github.com/stork-search/stork/pkg/stem"
)

// Build runs the full Reader -> Parser -> Index assembler -> Serializer
// pipeline end to end and returns the serialized index
// bytes, summary statistics, and any per-document warnings. reporter may be
// NopReporter{} when progress reporting is not needed.
func Build(ctx context.Context, cfg Config, reporter ProgressReporter) ([]byte, Statistics, []Warning, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}

	if len(cfg.Input.Files) == 0 {
		reporter.OnFail()
		return nil, Statistics{}, nil, core.ErrNoFilesSpecified
	}

	rdr := reader.New(cfg.Input.BaseDirectory, cfg.Input.WebScrapingEnabled, cfg.Input.FrontmatterHandling)
	stemmer := stem.New(cfg.Input.Stemming)

	parseCfg := parser.Config{
		IncludeSelector: cfg.Input.HTMLSelector,
		ExcludeSelector: cfg.Input.ExcludeHTMLSelector,
		SaveNearestID:   true,
		SRT:             cfg.Input.SRT,
	}

	var (
		docs       []indexer.ParsedDocument
		warnings   []Warning
		totalWords int
	)

	total := len(cfg.Input.Files)

	for i, f := range cfg.Input.Files {
		reporter.OnTick(i, total, f.Descriptor.Title)

		handling := cfg.Input.FrontmatterHandling
		if f.FrontmatterHandling != nil {
			handling = *f.FrontmatterHandling
		}

		pd, err := readAndParse(ctx, rdr, f.Descriptor, handling, parseCfg, stemmer, uint32(len(docs))) //nolint:gosec // document counts stay well under 2^32
		if err != nil {
			warn := Warning{Document: f.Descriptor.Title, Err: err}
			warnings = append(warnings, warn)
			reporter.OnWarning(warn.Error())

			if cfg.Input.BreakOnFileError {
				reporter.OnFail()
				return nil, Statistics{}, warnings, warn
			}

			continue
		}

		totalWords += len(pd.BodyWords)
		docs = append(docs, pd)
	}

	if len(docs) == 0 {
		reporter.OnFail()
		return nil, Statistics{}, warnings, core.ErrAllDocumentsHadProblems
	}

	idx := indexer.Assemble(docs, cfg.indexerConfig())

	data, err := codec.Encode(idx)
	if err != nil {
		reporter.OnFail()
		return nil, Statistics{}, warnings, fmt.Errorf("failed to serialize index: %w", err)
	}

	stats := Statistics{
		DocumentCount:    len(docs),
		SkippedDocuments: len(warnings),
		TotalWordCount:   totalWords,
		IndexSizeBytes:   len(data),
	}

	reporter.OnSucceed()

	return data, stats, warnings, nil
}

// readAndParse resolves one file descriptor to raw bytes and parses it into
// an indexer.ParsedDocument. Both the read and the parse can produce a
// per-document soft error; the caller treats either identically.
func readAndParse(
	ctx context.Context,
	rdr *reader.Reader,
	d reader.Descriptor,
	handling reader.FrontmatterHandling,
	parseCfg parser.Config,
	stemmer *stem.Stemmer,
	docID uint32,
) (indexer.ParsedDocument, error) {
	res, err := rdr.Read(ctx, d, handling)
	if err != nil {
		return indexer.ParsedDocument{}, err
	}

	body, bodyWords, err := parser.Parse(res.Filetype, res.Contents, parseCfg)
	if err != nil {
		return indexer.ParsedDocument{}, err
	}

	titleWords := toAnnotatedWords(normalize.Split(d.Title))

	doc := core.Document{
		ID:       docID,
		Title:    d.Title,
		URL:      d.URL,
		Contents: body,
		Fields:   res.Fields,
	}

	return indexer.ParsedDocument{
		Document:   doc,
		TitleWords: titleWords,
		BodyWords:  bodyWords,
		Stemmer:    stemmer,
	}, nil
}

func toAnnotatedWords(words []normalize.Word) []core.AnnotatedWord {
	out := make([]core.AnnotatedWord, len(words))
	for i, w := range words {
		out[i] = core.AnnotatedWord{Word: w.Text, ByteOffset: w.ByteOffset}
	}

	return out
}
