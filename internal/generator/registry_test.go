package generator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
)

func newGen(name string) *Generator {
	return &Generator{Name: name, Func: noop}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register("builtin:container", newGen("container")))
	require.NoError(t, r.Register("builtin:admonition", newGen("admonition")))
	require.NoError(t, r.Register("extra:fancy", newGen("fancy")))
	require.NoError(t, r.Install("note", "builtin:admonition"))
	require.NoError(t, r.Install("warning", "builtin:admonition"))
	return r
}

func TestRegistryRegister(t *testing.T) {
	r := testRegistry(t)

	assert.Error(t, r.Register("builtin:container", newGen("again")), "duplicate reference")
	assert.Error(t, r.Register("nocolon", newGen("x")))
	assert.Error(t, r.Register(":missing", newGen("x")))
	assert.Error(t, r.Register("builtin:broken", &Generator{Name: "broken"}))
	assert.Error(t, r.Install("foo", "builtin:absent"))

	g, ok := r.Resolve("extra:fancy")
	require.True(t, ok)
	assert.Equal(t, "fancy", g.Name)
	assert.Equal(t, []string{"builtin:admonition", "builtin:container", "extra:fancy"}, r.References())
	assert.Equal(t, map[string]string{"note": "builtin:admonition", "warning": "builtin:admonition"}, r.Installed())
}

func TestBuildTable(t *testing.T) {
	r := testRegistry(t)
	direct := newGen("direct")

	table, err := r.BuildTable(map[string]Binding{
		"warning": RefBinding("none"),        // explicit fallback
		"tip":     RefBinding("extra:fancy"), // new keyword
		"note":    DirectBinding(direct),     // override installed
		"legacy":  {},                        // null in configuration
	}, RefBinding("builtin:container"))
	require.NoError(t, err)

	e, fb := table.Lookup("note")
	assert.False(t, fb)
	assert.Same(t, direct, e.Generator)

	e, fb = table.Lookup("tip")
	assert.False(t, fb)
	assert.Equal(t, "extra:fancy", e.Ref)

	for _, kw := range []string{"warning", "legacy", "foo"} {
		e, fb = table.Lookup(kw)
		assert.True(t, fb, kw)
		assert.Equal(t, "builtin:container", e.Ref, kw)
	}

	assert.Equal(t, []string{"note", "tip"}, table.Keywords())
	assert.Equal(t, "container", table.Fallback().Generator.Name)
}

func TestBuildTableErrors(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name      string
		overrides map[string]Binding
		fallback  Binding
	}{
		{"no fallback", nil, RefBinding("none")},
		{"unknown fallback", nil, RefBinding("builtin:absent")},
		{"unknown override", map[string]Binding{"x": RefBinding("pkg:absent")}, RefBinding("builtin:container")},
		{"malformed override", map[string]Binding{"x": RefBinding("absent")}, RefBinding("builtin:container")},
		{"invalid direct", map[string]Binding{"x": DirectBinding(&Generator{Name: "x"})}, RefBinding("builtin:container")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.BuildTable(tt.overrides, tt.fallback)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := testRegistry(t)
	table, err := r.BuildTable(nil, RefBinding("builtin:container"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Resolve("builtin:container")
				_, _ = table.Lookup("note")
			}
		}()
	}
	wg.Wait()
}
