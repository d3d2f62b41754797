// Package frontmatter reads the YAML header of a Markdown document.
//
// The header seeds the per-document metadata handed to block generators and
// takes part in the document fingerprint.
package frontmatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrUnterminated is returned when a document opens a header but never closes it.
var ErrUnterminated = errors.New("frontmatter opened with --- but never closed")

// Split separates a `---` delimited header from the body. Input must use LF
// line endings. When the document has no header, ok is false and body is
// the whole source.
func Split(source string) (header, body string, ok bool, err error) {
	if !strings.HasPrefix(source, delimiter+"\n") {
		return "", source, false, nil
	}
	rest := source[len(delimiter)+1:]
	if strings.HasPrefix(rest, delimiter+"\n") || rest == delimiter {
		return "", strings.TrimPrefix(rest[len(delimiter):], "\n"), true, nil
	}

	idx := strings.Index(rest, "\n"+delimiter+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+delimiter) {
			return rest[:len(rest)-len(delimiter)], "", true, nil
		}
		return "", "", false, ErrUnterminated
	}
	return rest[:idx+1], rest[idx+len(delimiter)+2:], true, nil
}

// Parse decodes a header into a map. An empty header yields an empty map.
func Parse(header string) (map[string]any, error) {
	fields := map[string]any{}
	if strings.TrimSpace(header) == "" {
		return fields, nil
	}
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
