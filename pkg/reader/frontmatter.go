package reader

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// applyFrontmatter strips (and, in FrontmatterParse mode, decodes) a leading
// "---"-fenced block from raw. An unparseable block in Omit/Parse mode
// silently falls through to the default: the raw text is returned unchanged
// and fields is nil.
func applyFrontmatter(raw string, handling FrontmatterHandling) (string, map[string]string) {
	if handling == FrontmatterIgnore {
		return raw, nil
	}

	block, body, ok := splitFrontmatter(raw)
	if !ok {
		return raw, nil
	}

	if handling == FrontmatterOmit {
		return body, nil
	}

	fields, err := parseFrontmatterFields(block)
	if err != nil {
		return raw, nil
	}

	return body, fields
}

// splitFrontmatter finds a "---" fence at the very start of raw and a
// matching closing "---" line, returning the text between them and the
// remaining body. It tolerates a leading UTF-8 BOM and both Unix and
// Windows line endings, the way the delimiter scan in a typical frontmatter
// splitter does.
func splitFrontmatter(raw string) (block, body string, ok bool) {
	trimmed := strings.TrimPrefix(raw, "﻿")
	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")

	if !strings.HasPrefix(trimmed, frontmatterDelim+"\n") {
		return "", "", false
	}

	rest := trimmed[len(frontmatterDelim)+1:]

	closeIdx := strings.Index(rest, "\n"+frontmatterDelim)
	if closeIdx < 0 {
		return "", "", false
	}

	block = rest[:closeIdx]

	afterClose := rest[closeIdx+1+len(frontmatterDelim):]
	afterClose = strings.TrimPrefix(afterClose, "\n")

	return block, afterClose, true
}

// parseFrontmatterFields decodes a frontmatter block as a flat YAML mapping
// and stringifies every scalar value, coercing integers to their decimal
// string form. Non-scalar values (lists, nested maps)
// are rendered with their default YAML-to-string form so no information is
// silently dropped.
func parseFrontmatterFields(block string) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fields := make(map[string]string, len(raw))

	for k, v := range raw {
		fields[k] = stringifyFrontmatterValue(v)
	}

	return fields, nil
}

func stringifyFrontmatterValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}

		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return strings.TrimSpace(string(out))
	}
}
