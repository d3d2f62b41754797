// Package syntax recognizes the custom block syntax in Markdown blocks.
//
// A custom block opens with a headline
//
//	::: <type> [param]*
//
// where each param is an optionally keyed (key=value) unquoted word or a
// single/double quoted literal, and a trailing backslash continues the
// headline on the next line. The block body is the following content
// indented one level, optionally closed by a line holding only ":::".
package syntax
