package generator

import (
	"fmt"
	"strconv"
)

// Call carries the bound arguments of one generator invocation.
//
// Args and Kwargs follow the declared signature: Args holds the values of
// positional parameters in declaration order (the Context included, when a
// ctx parameter is declared) followed by any extra positional values;
// Kwargs holds keyword-only values and any extra key=value pairs.
type Call struct {
	Args   []any
	Kwargs map[string]any

	ctx     *Context
	params  []Param
	index   map[string]int
	npos    int
	keyword map[string]bool
}

// NewCall wraps bound arguments for the given signature.
func NewCall(ctx *Context, params []Param, args []any, kwargs map[string]any) *Call {
	c := &Call{
		Args:    args,
		Kwargs:  kwargs,
		params:  params,
		index:   make(map[string]int, len(params)),
		keyword: make(map[string]bool),
	}
	if c.Kwargs == nil {
		c.Kwargs = map[string]any{}
	}
	for _, p := range params {
		switch p.Kind {
		case VarPositional, VarKeyword:
			continue
		case KeywordOnly:
			c.keyword[p.Name] = true
			continue
		}
		if p.Name == ContextName {
			c.ctx = ctx
		}
		c.index[p.Name] = c.npos
		c.npos++
	}
	return c
}

// Ctx returns the call Context, or nil when the signature declares no ctx parameter.
func (c *Call) Ctx() *Context {
	return c.ctx
}

// Arg returns the bound value of a declared parameter.
func (c *Call) Arg(name string) (any, bool) {
	if i, ok := c.index[name]; ok {
		if i < len(c.Args) {
			return c.Args[i], true
		}
		return nil, false
	}
	v, ok := c.Kwargs[name]
	return v, ok
}

// String returns the bound value of name as text.
func (c *Call) String(name string) string {
	v, ok := c.Arg(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the bound value of name as a bool. Text values written as
// key=value are parsed; other non-empty text counts as true.
func (c *Call) Bool(name string) bool {
	v, _ := c.Arg(name)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
		return b != ""
	default:
		return v != nil
	}
}

// Rest returns the positional values collected by the var-positional parameter.
func (c *Call) Rest() []any {
	if len(c.Args) <= c.npos {
		return nil
	}
	return c.Args[c.npos:]
}

// RestStrings returns Rest formatted as text.
func (c *Call) RestStrings() []string {
	rest := c.Rest()
	out := make([]string, 0, len(rest))
	for _, v := range rest {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// Extra returns the key=value pairs collected by the var-keyword parameter.
func (c *Call) Extra() map[string]any {
	out := make(map[string]any)
	for k, v := range c.Kwargs {
		if !c.keyword[k] {
			out[k] = v
		}
	}
	return out
}
