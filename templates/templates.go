// Package templates wires the built-in templates to their bindings and
// reads and writes templates in YAML form.
package templates

import (
	"fmt"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/binding/alc"
	"github.com/ardanlabs/bindgen/binding/cl"
	"github.com/ardanlabs/bindgen/templates/openal"
	"github.com/ardanlabs/bindgen/templates/opencl"
)

// Target is a binding together with the classes it generates.
type Target struct {
	Binding binding.Binding
	Types   api.TypeSet
	Classes []*api.NativeClass
}

// Builtin returns the built-in targets keyed by binding name.
func Builtin() map[string]*Target {
	return map[string]*Target{
		alc.Binding.Name(): {
			Binding: alc.Binding,
			Types:   openal.Types,
			Classes: openal.Classes(),
		},
		cl.Binding.Name(): {
			Binding: cl.Binding,
			Types:   opencl.Types,
			Classes: opencl.Classes(),
		},
	}
}

// Add appends classes to the target after checking they belong to it.
func (t *Target) Add(classes ...*api.NativeClass) error {
	for _, c := range classes {
		if c.Binding != t.Binding.Name() {
			return fmt.Errorf("template %s: bound to %q, target is %q", c.TemplateName, c.Binding, t.Binding.Name())
		}
		if t.Class(c.TemplateName) != nil {
			return fmt.Errorf("template %s: already declared for %s", c.TemplateName, t.Binding.Name())
		}
		t.Classes = append(t.Classes, c)
	}
	return nil
}

// Exclude drops the classes with the given template names.
func (t *Target) Exclude(templateNames ...string) {
	if len(templateNames) == 0 {
		return
	}

	skip := make(map[string]bool, len(templateNames))
	for _, name := range templateNames {
		skip[name] = true
	}

	kept := t.Classes[:0]
	for _, c := range t.Classes {
		if !skip[c.TemplateName] {
			kept = append(kept, c)
		}
	}
	t.Classes = kept
}

// Class returns the class with the given template name or nil.
func (t *Target) Class(templateName string) *api.NativeClass {
	for _, c := range t.Classes {
		if c.TemplateName == templateName {
			return c
		}
	}
	return nil
}
