package syntax

import (
	"fmt"
	"regexp"
)

// paramRe extracts one parameter per match: group 1 is the optional key, group 2 the value.
var paramRe = regexp.MustCompile(
	` (?:([\p{L}\p{N}_\-]+)=)?(` +
		`'(?:\\.|[^'])*'|` + // single quoted
		`"(?:\\.|[^"])*"|` + // double quoted
		`\S+` + // single word
		`)`,
)

// Params holds the parameters of a headline, still untyped.
type Params struct {
	// Positional holds keyless values in source order.
	Positional []string
	// Named holds key=value pairs. A repeated key keeps its last value.
	Named map[string]string
	// Warnings reports lenient recoveries, such as unterminated quotes.
	Warnings []string
}

// ParseParams tokenizes the parameter text of a headline.
//
// Continuations are joined first, so ParamsText can be passed as is.
// Quoted values are unescaped; everything else is kept verbatim.
func ParseParams(text string) Params {
	text = JoinContinuations(text)
	p := Params{Named: map[string]string{}}
	for _, m := range paramRe.FindAllStringSubmatch(text, -1) {
		key, value := m[1], m[2]
		if isQuoted(value) {
			value = Unquote(value)
		} else if startsWithQuote(value) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("unterminated quote in parameter '%s'", value))
		}
		if key != "" {
			p.Named[key] = value
			continue
		}
		p.Positional = append(p.Positional, value)
	}
	return p
}

func startsWithQuote(s string) bool {
	return s != "" && (s[0] == '"' || s[0] == '\'')
}

func isQuoted(s string) bool {
	return len(s) >= 2 && startsWithQuote(s) && s[len(s)-1] == s[0]
}
