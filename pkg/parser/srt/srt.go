// Package srt implements the SubRip subtitle parser: concatenate each
// block's text into the canonical text, and tag every word drawn from a
// block with a url_suffix derived from that block's start time.
package srt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stork-search/stork/pkg/core"
	"github.com/stork-search/stork/pkg/normalize"
)

const defaultTimestampTemplate = "&t={ts}"

// Config carries the input.srt_config options.
type Config struct {
	TimestampLinking  bool
	TimestampTemplate string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{TimestampLinking: true, TimestampTemplate: defaultTimestampTemplate}
}

type block struct {
	startSeconds int
	text         string
}

type span struct {
	start, end int
	suffix     string
	hasSuffix  bool
}

// Parse extracts canonical text and annotated words from raw SRT content.
func Parse(raw string, cfg Config) (string, []core.AnnotatedWord, error) {
	if cfg.TimestampTemplate == "" {
		cfg.TimestampTemplate = defaultTimestampTemplate
	}

	blocks, err := parseBlocks(raw)
	if err != nil {
		return "", nil, err
	}

	if len(blocks) == 0 {
		return "", nil, fmt.Errorf("%w: no subtitle blocks found", core.ErrInvalidSRT)
	}

	var b strings.Builder

	spans := make([]span, 0, len(blocks))

	for _, blk := range blocks {
		text := strings.TrimSpace(blk.text)
		if text == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		start := b.Len()
		b.WriteString(text)

		suffix, hasSuffix := "", false
		if cfg.TimestampLinking {
			suffix = applyTemplate(cfg.TimestampTemplate, blk.startSeconds)
			hasSuffix = true
		}

		spans = append(spans, span{start: start, end: b.Len(), suffix: suffix, hasSuffix: hasSuffix})
	}

	canonical := b.String()

	words := normalize.Split(canonical)
	annotated := make([]core.AnnotatedWord, len(words))

	for i, w := range words {
		suffix, ok := suffixAt(spans, w.ByteOffset)
		annotated[i] = core.AnnotatedWord{
			Word:       w.Text,
			ByteOffset: w.ByteOffset,
			URLSuffix:  suffix,
			HasSuffix:  ok,
		}
	}

	return canonical, annotated, nil
}

func suffixAt(spans []span, offset uint32) (string, bool) {
	for _, s := range spans {
		if uint32(s.start) <= offset && offset < uint32(s.end) { //nolint:gosec // offsets bound by builder length
			return s.suffix, s.hasSuffix
		}
	}

	return "", false
}

// parseBlocks splits raw SRT text on blank lines into blocks, each of which
// is an optional sequence number, a timestamp range line, and one or more
// text lines.
func parseBlocks(raw string) ([]block, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	var blocks []block

	for _, rb := range strings.Split(strings.TrimSpace(normalized), "\n\n") {
		rb = strings.TrimSpace(rb)
		if rb == "" {
			continue
		}

		lines := strings.Split(rb, "\n")
		if len(lines) < 2 {
			return nil, fmt.Errorf("%w: malformed block %q", core.ErrInvalidSRT, rb)
		}

		idx := 0
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			idx = 1
		}

		if idx >= len(lines) {
			return nil, fmt.Errorf("%w: block missing timestamp line", core.ErrInvalidSRT)
		}

		start, err := parseTimestampLine(lines[idx])
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, block{
			startSeconds: start,
			text:         strings.Join(lines[idx+1:], " "),
		})
	}

	return blocks, nil
}

func parseTimestampLine(line string) (int, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: invalid timestamp line %q", core.ErrInvalidSRT, line)
	}

	return parseTimestamp(strings.TrimSpace(parts[0]))
}

func parseTimestamp(ts string) (int, error) {
	ts = strings.ReplaceAll(ts, ",", ".")

	fields := strings.SplitN(ts, ":", 3)
	if len(fields) != 3 {
		return 0, fmt.Errorf("%w: invalid timestamp %q", core.ErrInvalidSRT, ts)
	}

	hours, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hours in %q", core.ErrInvalidSRT, ts)
	}

	minutes, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid minutes in %q", core.ErrInvalidSRT, ts)
	}

	seconds, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid seconds in %q", core.ErrInvalidSRT, ts)
	}

	return hours*3600 + minutes*60 + int(seconds), nil
}

func applyTemplate(template string, totalSeconds int) string {
	return strings.ReplaceAll(template, "{ts}", strconv.Itoa(totalSeconds))
}
