// Package generator defines block generators and the registry that binds
// block type keywords to them.
//
// A generator declares its signature as a list of Param descriptors next to
// its function. The binder maps the parameters written in a block headline
// onto that signature, so generator functions receive ready-bound values
// through a Call.
package generator

import (
	"fmt"
)

// Func renders one block.
type Func func(call *Call) (Result, error)

// Generator is a named rendering function with its declared signature.
type Generator struct {
	// Name identifies the generator in logs and listings.
	Name   string
	Params []Param
	Func   Func
	// Description is shown by the generators listing.
	Description string
}

// Validate checks that the generator can be registered.
func (g *Generator) Validate() error {
	if g == nil {
		return fmt.Errorf("generator is nil")
	}
	if g.Name == "" {
		return fmt.Errorf("generator name is required")
	}
	if g.Func == nil {
		return fmt.Errorf("generator %s: func is required", g.Name)
	}
	if err := ValidateParams(g.Params); err != nil {
		return fmt.Errorf("generator %s: %w", g.Name, err)
	}
	return nil
}

// Call invokes the generator with already bound arguments.
func (g *Generator) Call(ctx *Context, args []any, kwargs map[string]any) (Result, error) {
	return g.Func(NewCall(ctx, g.Params, args, kwargs))
}

func (g *Generator) String() string {
	return g.Name
}
