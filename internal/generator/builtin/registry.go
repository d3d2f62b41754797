// Package builtin provides the generators shipped with mdblocks.
//
// They are registered under the "builtin" module, so "builtin:container"
// references the container generator.
package builtin

import (
	"fmt"
	"sync"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// Module is the reference prefix of the built-in generators.
const Module = "builtin"

// Fallback is the reference of the default fallback generator.
const Fallback = Module + ":container"

var (
	once     sync.Once
	registry *generator.Registry
)

// Registry returns the shared registry holding the built-in generators and
// their default keyword bindings. It is populated on first use.
func Registry() *generator.Registry {
	once.Do(func() {
		r := generator.NewRegistry()
		if err := Register(r); err != nil {
			panic(fmt.Sprintf("builtin: %v", err))
		}
		registry = r
	})
	return registry
}

// Register adds the built-in generators to r and installs their keywords.
func Register(r *generator.Registry) error {
	for _, g := range []*generator.Generator{Container, Admonition, Figure, YouTube, Details} {
		if err := r.Register(Ref(g.Name), g); err != nil {
			return err
		}
	}

	installs := map[string]string{
		"figure":  Figure.Name,
		"youtube": YouTube.Name,
		"details": Details.Name,
	}
	for _, kind := range AdmonitionTypes {
		installs[kind] = Admonition.Name
	}
	for keyword, name := range installs {
		if err := r.Install(keyword, Ref(name)); err != nil {
			return err
		}
	}
	return nil
}

// Ref returns the reference of a built-in generator name.
func Ref(name string) string {
	return Module + ":" + name
}
