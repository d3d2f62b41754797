package syntax

import (
	"regexp"
	"strings"
)

// closingRe matches an optional closing marker at the start of a block.
var closingRe = regexp.MustCompile(`^:::(?:\n|$)`)

// Detabber removes one indentation level from a block.
//
// indented holds the leading indented lines with the indentation removed
// (blank lines kept as empty lines); rest holds everything from the first
// non-blank unindented line on.
type Detabber interface {
	Detab(block string) (indented, rest string)
}

// DetabFunc adapts a function to Detabber.
type DetabFunc func(block string) (indented, rest string)

func (f DetabFunc) Detab(block string) (string, string) { return f(block) }

// AccumulateContent collects the content nested one level under a headline.
//
// It pops blocks from the front of the queue while they are indented. The
// first unindented remainder found is pushed back as the new first block and
// ends accumulation. Indented parts are joined by a blank line.
func AccumulateContent(d Detabber, blocks *[]string) string {
	var content []string
	for len(*blocks) > 0 {
		block := (*blocks)[0]
		*blocks = (*blocks)[1:]
		indented, rest := d.Detab(block)
		if indented != "" {
			content = append(content, indented)
		}
		if rest != "" {
			*blocks = append([]string{rest}, *blocks...)
			break
		}
	}
	return strings.Join(content, "\n\n")
}

// StripClosingMarker removes a standalone ":::" line at the start of block.
func StripClosingMarker(block string) string {
	return closingRe.ReplaceAllString(block, "")
}
