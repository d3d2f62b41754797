package generator

import "fmt"

// ContextName is the parameter name that receives the call Context.
const ContextName = "ctx"

// ParamKind tells how a declared parameter may be bound.
type ParamKind int

const (
	// PositionalOrKeyword accepts a positional value or key=value.
	PositionalOrKeyword ParamKind = iota
	// PositionalOnly accepts only positional values.
	PositionalOnly
	// KeywordOnly accepts only key=value and is passed in Call kwargs.
	KeywordOnly
	// VarPositional collects the positional values left after binding.
	VarPositional
	// VarKeyword collects the key=value pairs left after binding.
	VarKeyword
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case PositionalOnly:
		return "positional-only"
	case KeywordOnly:
		return "keyword-only"
	case VarPositional:
		return "var-positional"
	case VarKeyword:
		return "var-keyword"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param describes one formal parameter of a generator.
type Param struct {
	Name       string
	Kind       ParamKind
	Default    any
	HasDefault bool
	// IsFlag marks a boolean parameter settable by a bare word (name) or
	// its negation (noname). A bool Default implies it.
	IsFlag bool
}

// Arg declares a mandatory positional-or-keyword parameter.
func Arg(name string) Param {
	return Param{Name: name, Kind: PositionalOrKeyword}
}

// PositionalArg declares a mandatory positional-only parameter.
func PositionalArg(name string) Param {
	return Param{Name: name, Kind: PositionalOnly}
}

// KeywordArg declares a mandatory keyword-only parameter.
func KeywordArg(name string) Param {
	return Param{Name: name, Kind: KeywordOnly}
}

// Flag declares a keyword-only boolean parameter with a default.
func Flag(name string, def bool) Param {
	return Param{Name: name, Kind: KeywordOnly, Default: def, HasDefault: true, IsFlag: true}
}

// VarArgs declares the parameter collecting extra positional values.
func VarArgs(name string) Param {
	return Param{Name: name, Kind: VarPositional}
}

// VarKwargs declares the parameter collecting extra key=value pairs.
func VarKwargs(name string) Param {
	return Param{Name: name, Kind: VarKeyword}
}

// ContextParam declares the parameter receiving the call Context.
func ContextParam() Param {
	return Param{Name: ContextName, Kind: PositionalOrKeyword}
}

// WithDefault returns a copy of p with a default value.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	p.HasDefault = true
	return p
}

// Flagged reports whether p takes part in flag inference.
func (p Param) Flagged() bool {
	if p.IsFlag {
		return true
	}
	if !p.HasDefault {
		return false
	}
	_, ok := p.Default.(bool)
	return ok
}

// kindOrder gives the declaration order a signature must respect.
func kindOrder(k ParamKind) int {
	switch k {
	case PositionalOnly:
		return 0
	case PositionalOrKeyword:
		return 1
	case VarPositional:
		return 2
	case KeywordOnly:
		return 3
	case VarKeyword:
		return 4
	default:
		return -1
	}
}

// ValidateParams checks that params form a well-ordered signature.
func ValidateParams(params []Param) error {
	seen := make(map[string]bool, len(params))
	last := 0
	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("param[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("param %q declared twice", p.Name)
		}
		seen[p.Name] = true

		order := kindOrder(p.Kind)
		if order < 0 {
			return fmt.Errorf("param %q: invalid kind %s", p.Name, p.Kind)
		}
		if order < last || (order == last && (p.Kind == VarPositional || p.Kind == VarKeyword)) {
			return fmt.Errorf("param %q: %s parameter out of order", p.Name, p.Kind)
		}
		last = order
	}
	return nil
}
