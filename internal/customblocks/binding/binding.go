// Package binding adapts the untyped parameters of a block headline to the
// declared signature of a generator.
//
// Binding never fails: mismatches are reported as diagnostics and the call
// proceeds with best-effort values.
package binding

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// Bound holds the arguments ready to call a generator with.
type Bound struct {
	Args        []any
	Kwargs      map[string]any
	Diagnostics []string
}

// Bind maps args and kwds onto params. ctx is passed as the value of a
// parameter named "ctx". The inputs are not modified.
func Bind(params []generator.Param, ctx any, args []string, kwds map[string]string) Bound {
	positional := append([]string(nil), args...)
	named := make(map[string]any, len(kwds))
	for k, v := range kwds {
		named[k] = v
	}

	var diags []string
	warn := func(format string, a ...any) {
		diags = append(diags, fmt.Sprintf(format, a...))
	}

	// Bare flag words become boolean keywords. The negated form is applied
	// last so it wins when both are given.
	for _, p := range params {
		if !p.Flagged() {
			continue
		}
		var set, unset bool
		positional, set = removeFirst(positional, p.Name)
		if set {
			named[p.Name] = true
		}
		positional, unset = removeFirst(positional, "no"+p.Name)
		if unset {
			named[p.Name] = false
		}
		if set && unset {
			warn("conflicting flags '%s' and 'no%s'", p.Name, p.Name)
		}
	}

	out := Bound{Kwargs: make(map[string]any)}
	var acceptAnyPos, acceptAnyKey bool
	for _, p := range params {
		if p.Name == generator.ContextName {
			out.Args = append(out.Args, ctx)
			continue
		}
		switch p.Kind {
		case generator.VarKeyword:
			acceptAnyKey = true
			continue
		case generator.VarPositional:
			acceptAnyPos = true
			continue
		}

		var value any
		if v, ok := named[p.Name]; ok && p.Kind != generator.PositionalOnly {
			value = v
			delete(named, p.Name)
		} else if len(positional) > 0 && p.Kind != generator.KeywordOnly {
			value = positional[0]
			positional = positional[1:]
		} else if p.HasDefault {
			value = p.Default
		} else {
			warn("missing mandatory attribute '%s'", p.Name)
			value = ""
		}

		if p.Kind == generator.KeywordOnly {
			out.Kwargs[p.Name] = value
		} else {
			out.Args = append(out.Args, value)
		}
	}

	if acceptAnyPos {
		for _, v := range positional {
			out.Args = append(out.Args, v)
		}
	} else {
		for _, v := range positional {
			warn("ignored extra attribute '%s'", v)
		}
	}

	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if acceptAnyKey {
			out.Kwargs[k] = named[k]
		} else {
			warn("ignoring unexpected parameter '%s'", k)
		}
	}

	out.Diagnostics = diags
	return out
}

func removeFirst(list []string, s string) ([]string, bool) {
	for i, v := range list {
		if v == s {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
