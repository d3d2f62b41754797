package generator

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
)

// NoneRef is the binding that selects the fallback generator.
const NoneRef = "none"

// Binding maps a type keyword to a generator, either directly or by reference.
// The zero Binding, and the reference "none", select the fallback.
type Binding struct {
	Ref       string
	Generator *Generator
}

// RefBinding binds by reference.
func RefBinding(ref string) Binding { return Binding{Ref: ref} }

// DirectBinding binds to a generator value.
func DirectBinding(g *Generator) Binding { return Binding{Generator: g} }

// IsNone reports whether b selects the fallback.
func (b Binding) IsNone() bool {
	return b.Generator == nil && (b.Ref == "" || strings.EqualFold(b.Ref, NoneRef))
}

// Entry is a resolved binding.
type Entry struct {
	Ref       string
	Generator *Generator
}

// Table is the immutable keyword to generator map used while rendering.
// It is safe for concurrent use.
type Table struct {
	entries  map[string]Entry
	fallback Entry
}

// BuildTable resolves the installed bindings overridden by overrides, plus
// the fallback. Any reference that cannot be resolved is a fatal
// configuration error.
func (r *Registry) BuildTable(overrides map[string]Binding, fallback Binding) (*Table, error) {
	if fallback.IsNone() {
		return nil, errors.ConfigError("fallback generator is required").Build()
	}
	fb, err := r.resolveBinding("", fallback)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]Binding)
	for keyword, ref := range r.Installed() {
		merged[keyword] = RefBinding(ref)
	}
	for keyword, b := range overrides {
		merged[keyword] = b
	}

	t := &Table{entries: make(map[string]Entry, len(merged)), fallback: fb}
	for keyword, b := range merged {
		if b.IsNone() {
			continue
		}
		entry, err := r.resolveBinding(keyword, b)
		if err != nil {
			return nil, err
		}
		t.entries[keyword] = entry
	}
	return t, nil
}

func (r *Registry) resolveBinding(keyword string, b Binding) (Entry, error) {
	if b.Generator != nil {
		if err := b.Generator.Validate(); err != nil {
			return Entry{}, errors.WrapError(err, errors.CategoryConfig, "invalid generator").
				Fatal().
				WithContext("block_type", keyword).
				Build()
		}
		return Entry{Ref: b.Generator.Name, Generator: b.Generator}, nil
	}
	if err := ValidateReference(b.Ref); err != nil {
		return Entry{}, errors.WrapError(err, errors.CategoryConfig, "invalid generator reference").
			Fatal().
			UserAction().
			WithContext("block_type", keyword).
			Build()
	}
	g, ok := r.Resolve(b.Ref)
	if !ok {
		return Entry{}, errors.ConfigError("unknown generator reference").
			WithContext("reference", b.Ref).
			WithContext("block_type", keyword).
			Build()
	}
	return Entry{Ref: b.Ref, Generator: g}, nil
}

// Lookup returns the entry for keyword, or the fallback entry with fallback set.
func (t *Table) Lookup(keyword string) (entry Entry, fallback bool) {
	if e, ok := t.entries[keyword]; ok {
		return e, false
	}
	return t.fallback, true
}

// Fallback returns the fallback entry.
func (t *Table) Fallback() Entry {
	return t.fallback
}

// Keywords lists the bound keywords in sorted order.
func (t *Table) Keywords() []string {
	out := make([]string, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
