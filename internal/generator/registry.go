package generator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps generator references to generators and records which type
// keywords are installed by default.
//
// A reference has the form "module:function". References are resolved when
// a Table is built, never while rendering.
type Registry struct {
	mu        sync.RWMutex
	symbols   map[string]*Generator
	installed map[string]string // keyword -> reference
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		symbols:   make(map[string]*Generator),
		installed: make(map[string]string),
	}
}

// Register adds a generator under ref.
func (r *Registry) Register(ref string, g *Generator) error {
	if err := ValidateReference(ref); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid generator for %s: %w", ref, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.symbols[ref]; exists {
		return fmt.Errorf("generator %s already registered", ref)
	}
	r.symbols[ref] = g
	return nil
}

// Install binds keyword to a registered reference.
func (r *Registry) Install(keyword, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.symbols[ref]; !ok {
		return fmt.Errorf("cannot install %s: generator %s not registered", keyword, ref)
	}
	r.installed[keyword] = ref
	return nil
}

// Resolve returns the generator registered under ref.
func (r *Registry) Resolve(ref string) (*Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.symbols[ref]
	return g, ok
}

// Installed returns a copy of the installed keyword bindings.
func (r *Registry) Installed() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.installed))
	for k, v := range r.installed {
		out[k] = v
	}
	return out
}

// References lists registered references in sorted order.
func (r *Registry) References() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]string, 0, len(r.symbols))
	for ref := range r.symbols {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// ValidateReference checks the "module:function" form.
func ValidateReference(ref string) error {
	module, function, ok := strings.Cut(ref, ":")
	if !ok || module == "" || function == "" {
		return fmt.Errorf("invalid generator reference %q: expected module:function", ref)
	}
	return nil
}
