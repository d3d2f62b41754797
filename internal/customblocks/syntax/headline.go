package syntax

import (
	"regexp"
	"strings"
)

// headlineRe matches the first block headline. Group 1 is the type keyword.
var headlineRe = regexp.MustCompile(
	`(?:^|\n)::: *` + // marker
		`([\p{L}\p{N}_\-]+)` + // keyword
		`(?:( |\\\n)+(?:[\p{L}\p{N}_]+=)?(` + // params, optionally keyed
		`'(?:\\.|[^'])*'|` + // single quoted
		`"(?:\\.|[^"])*"|` + // double quoted
		`\S+` + // single word
		`))*` +
		`\s*(?:\n|$)`, // ending
)

// Headline is a block split around its first headline match.
type Headline struct {
	// Leading is the text before the headline, without the separating newline.
	Leading string
	// Type is the keyword selecting the generator.
	Type string
	// ParamsText is the raw parameter text, from the end of the keyword to the
	// end of the headline line.
	ParamsText string
	// Trailing is the text after the headline line.
	Trailing string
}

// MatchHeadline reports whether any part of block holds a headline.
func MatchHeadline(block string) bool {
	return headlineRe.MatchString(block)
}

// ExtractHeadline splits block around its first headline.
func ExtractHeadline(block string) (Headline, bool) {
	m := headlineRe.FindStringSubmatchIndex(block)
	if m == nil {
		return Headline{}, false
	}
	return Headline{
		Leading:    block[:m[0]],
		Type:       block[m[2]:m[3]],
		ParamsText: block[m[3]:m[1]],
		Trailing:   block[m[1]:],
	}, true
}

// JoinContinuations replaces backslash-newline continuations with a single space.
func JoinContinuations(params string) string {
	return strings.ReplaceAll(params, "\\\n", " ")
}
