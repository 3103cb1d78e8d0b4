// Package build implements the build API: it orchestrates the Reader,
// Parser, stemmer, and Index assembler into the single
// Build(config) -> (index bytes, statistics, warnings) call a CLI or WASM
// caller makes.
package build

import (
	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/indexer"
	"github.com/stork-search/stork/pkg/parser/srt"
	"github.com/stork-search/stork/pkg/reader"
	"github.com/stork-search/stork/pkg/stem"
)

// FileConfig is one entry of input.files[]: a document descriptor plus any
// per-file override of the input-wide frontmatter handling.
type FileConfig struct {
	Descriptor          reader.Descriptor
	FrontmatterHandling *reader.FrontmatterHandling
}

// InputConfig carries every input.* build option.
type InputConfig struct {
	BaseDirectory                           string
	URLPrefix                               string
	HTMLSelector                            string
	ExcludeHTMLSelector                     string
	Stemming                                stem.Language
	SRT                                     srt.Config
	Files                                   []FileConfig
	TitleBoost                              core.TitleBoost
	FrontmatterHandling                     reader.FrontmatterHandling
	MinimumIndexedSubstringLength           uint8
	MinimumIndexIdeographicSubstringLength  uint8
	BreakOnFileError                        bool
	WebScrapingEnabled                      bool
}

// OutputConfig carries every output.* build option.
type OutputConfig struct {
	ExcerptBuffer         uint8
	ExcerptsPerResult     uint8
	DisplayedResultsCount uint8
	Debug                 bool
}

// Config is the full build(config) input.
type Config struct {
	Input  InputConfig
	Output OutputConfig
}

// DefaultConfig returns the documented defaults for every optional field.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			TitleBoost:                            core.TitleBoostModerate,
			FrontmatterHandling:                    reader.FrontmatterIgnore,
			HTMLSelector:                           "main",
			SRT:                                    srt.DefaultConfig(),
			MinimumIndexedSubstringLength:          3,
			MinimumIndexIdeographicSubstringLength: 1,
		},
		Output: OutputConfig{
			ExcerptBuffer:         8,
			ExcerptsPerResult:     5,
			DisplayedResultsCount: 10,
		},
	}
}

// passthrough converts the output config into the form carried inside the
// serialized index for the query engine to consume.
func (c Config) passthrough() core.PassthroughConfig {
	return core.PassthroughConfig{
		URLPrefix:             c.Input.URLPrefix,
		TitleBoost:            c.Input.TitleBoost,
		ExcerptBuffer:         c.Output.ExcerptBuffer,
		ExcerptsPerResult:     c.Output.ExcerptsPerResult,
		DisplayedResultsCount: c.Output.DisplayedResultsCount,
	}
}

func (c Config) indexerConfig() indexer.Config {
	return indexer.Config{
		MinimumPrefixLength:    c.Input.MinimumIndexedSubstringLength,
		MinimumCJKPrefixLength: c.Input.MinimumIndexIdeographicSubstringLength,
		Passthrough:            c.passthrough(),
	}
}
