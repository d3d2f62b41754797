package generator

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strconv"

	"golang.org/x/net/html"
)

// Parser parses a Markdown fragment and appends the result under parent.
//
// Generators use it to render their block content, which may hold further
// custom blocks.
type Parser interface {
	ParseChunk(parent *html.Node, text string) error
}

// Metadata is the per-document state shared by every block of one document.
// Generators may write to it to pass information to later blocks.
type Metadata map[string]any

// Context is handed to generators that declare a "ctx" parameter. It lives
// for exactly one invocation.
type Context struct {
	// Type is the block type keyword.
	Type string
	// Parent is the node the block output is appended to.
	Parent *html.Node
	// Content is the nested block content, indentation removed.
	Content string
	Parser  Parser
	// Metadata is shared and mutable within one document.
	Metadata Metadata
	// Config holds read-only generator settings from the extension configuration.
	Config Config
	Logger *slog.Logger
	// DocumentID identifies the document being converted.
	DocumentID string
}

// Config is a read-only view over generator configuration values.
type Config struct {
	values map[string]any
}

// NewConfig returns a Config over a copy of values.
func NewConfig(values map[string]any) Config {
	return Config{values: maps.Clone(values)}
}

// Get returns the raw value for key.
func (c Config) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the configured keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value for key formatted as text, or def when absent.
func (c Config) String(key, def string) string {
	v, ok := c.values[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value for key as an int, or def when absent or not numeric.
func (c Config) Int(key string, def int) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns the value for key as a bool, or def when absent or not boolean.
func (c Config) Bool(key string, def bool) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Section returns the nested mapping under key as a Config.
func (c Config) Section(key string) Config {
	switch v := c.values[key].(type) {
	case map[string]any:
		return NewConfig(v)
	case Config:
		return v
	}
	return Config{}
}
