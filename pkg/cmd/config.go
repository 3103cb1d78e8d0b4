package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/stork-search/stork/pkg/build"
	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/reader"
	"github.com/stork-search/stork/pkg/stem"
)

// fileInputConfig mirrors input.* as a viper/mapstructure target;
// loadBuildConfig translates it into a build.Config.
type fileInputConfig struct {
	BaseDirectory                           string           `mapstructure:"base_directory"`
	URLPrefix                               string           `mapstructure:"url_prefix"`
	TitleBoost                              string           `mapstructure:"title_boost"`
	Stemming                                string           `mapstructure:"stemming"`
	FrontmatterHandling                      string           `mapstructure:"frontmatter_handling"`
	HTMLSelector                            string           `mapstructure:"html_selector"`
	ExcludeHTMLSelector                     string           `mapstructure:"exclude_html_selector"`
	SRTConfig                               fileSRTConfig    `mapstructure:"srt_config"`
	MinimumIndexedSubstringLength           uint8            `mapstructure:"minimum_indexed_substring_length"`
	MinimumIndexIdeographicSubstringLength  uint8            `mapstructure:"minimum_index_ideographic_substring_length"`
	BreakOnFileError                        bool             `mapstructure:"break_on_file_error"`
	WebScrapingEnabled                      bool             `mapstructure:"web_scraping_enabled"`
	Files                                   []fileDescriptor `mapstructure:"files"`
}

type fileSRTConfig struct {
	TimestampLinking        bool   `mapstructure:"timestamp_linking"`
	TimestampTemplateString string `mapstructure:"timestamp_template_string"`
}

type fileDescriptor struct {
	Title    string  `mapstructure:"title"`
	URL      string  `mapstructure:"url"`
	Contents *string `mapstructure:"contents"`
	Path     *string `mapstructure:"path"`
	SrcURL   *string `mapstructure:"src_url"`
	Filetype string  `mapstructure:"filetype"`
}

type fileOutputConfig struct {
	ExcerptBuffer         uint8 `mapstructure:"excerpt_buffer"`
	ExcerptsPerResult     uint8 `mapstructure:"excerpts_per_result"`
	DisplayedResultsCount uint8 `mapstructure:"displayed_results_count"`
	Debug                 bool  `mapstructure:"debug"`
}

type fileConfig struct {
	Input  fileInputConfig  `mapstructure:"input"`
	Output fileOutputConfig `mapstructure:"output"`
}

// loadBuildConfig reads a TOML or JSON build configuration file (viper picks
// the decoder from the extension; TOML decoding goes through
// github.com/pelletier/go-toml/v2, the same library viper itself uses) and
// translates it into a build.Config.
func loadBuildConfig(path string) (build.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return build.Config{}, fmt.Errorf("failed to read build config: %w", err)
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return build.Config{}, fmt.Errorf("failed to unmarshal build config: %w", err)
	}

	return raw.toBuildConfig()
}

func (c fileConfig) toBuildConfig() (build.Config, error) {
	cfg := build.DefaultConfig()

	cfg.Input.BaseDirectory = c.Input.BaseDirectory
	cfg.Input.URLPrefix = c.Input.URLPrefix
	cfg.Input.HTMLSelector = orDefault(c.Input.HTMLSelector, cfg.Input.HTMLSelector)
	cfg.Input.ExcludeHTMLSelector = c.Input.ExcludeHTMLSelector
	cfg.Input.BreakOnFileError = c.Input.BreakOnFileError
	cfg.Input.WebScrapingEnabled = c.Input.WebScrapingEnabled

	if c.Input.TitleBoost != "" {
		boost, ok := parseTitleBoost(c.Input.TitleBoost)
		if !ok {
			return build.Config{}, fmt.Errorf("unrecognized input.title_boost: %q", c.Input.TitleBoost)
		}

		cfg.Input.TitleBoost = boost
	}

	if c.Input.Stemming != "" && !strings.EqualFold(c.Input.Stemming, "none") {
		lang, ok := stem.ParseLanguage(c.Input.Stemming)
		if !ok {
			return build.Config{}, fmt.Errorf("unrecognized input.stemming: %q", c.Input.Stemming)
		}

		cfg.Input.Stemming = lang
	}

	if c.Input.FrontmatterHandling != "" {
		handling, ok := parseFrontmatterHandling(c.Input.FrontmatterHandling)
		if !ok {
			return build.Config{}, fmt.Errorf("unrecognized input.frontmatter_handling: %q", c.Input.FrontmatterHandling)
		}

		cfg.Input.FrontmatterHandling = handling
	}

	if c.Input.SRTConfig.TimestampTemplateString != "" {
		cfg.Input.SRT.TimestampTemplate = c.Input.SRTConfig.TimestampTemplateString
	}

	cfg.Input.SRT.TimestampLinking = c.Input.SRTConfig.TimestampLinking

	if c.Input.MinimumIndexedSubstringLength != 0 {
		cfg.Input.MinimumIndexedSubstringLength = c.Input.MinimumIndexedSubstringLength
	}

	if c.Input.MinimumIndexIdeographicSubstringLength != 0 {
		cfg.Input.MinimumIndexIdeographicSubstringLength = c.Input.MinimumIndexIdeographicSubstringLength
	}

	files := make([]build.FileConfig, 0, len(c.Input.Files))

	for _, f := range c.Input.Files {
		files = append(files, build.FileConfig{
			Descriptor: reader.Descriptor{
				Title:    f.Title,
				URL:      f.URL,
				Contents: f.Contents,
				SrcPath:  f.Path,
				SrcURL:   f.SrcURL,
				Filetype: core.ContentType(f.Filetype),
			},
		})
	}

	cfg.Input.Files = files

	if c.Output.ExcerptBuffer != 0 {
		cfg.Output.ExcerptBuffer = c.Output.ExcerptBuffer
	}

	if c.Output.ExcerptsPerResult != 0 {
		cfg.Output.ExcerptsPerResult = c.Output.ExcerptsPerResult
	}

	if c.Output.DisplayedResultsCount != 0 {
		cfg.Output.DisplayedResultsCount = c.Output.DisplayedResultsCount
	}

	cfg.Output.Debug = c.Output.Debug

	return cfg, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func parseTitleBoost(name string) (core.TitleBoost, bool) {
	switch strings.ToLower(name) {
	case "minimal":
		return core.TitleBoostMinimal, true
	case "moderate":
		return core.TitleBoostModerate, true
	case "large":
		return core.TitleBoostLarge, true
	case "ridiculous":
		return core.TitleBoostRidiculous, true
	default:
		return 0, false
	}
}

func parseFrontmatterHandling(name string) (reader.FrontmatterHandling, bool) {
	switch strings.ToLower(name) {
	case "ignore":
		return reader.FrontmatterIgnore, true
	case "omit":
		return reader.FrontmatterOmit, true
	case "parse":
		return reader.FrontmatterParse, true
	default:
		return 0, false
	}
}
