// Package api models the native API surfaces bindings are generated from.
//
// A NativeClass groups the constants and functions of one core version or
// extension. Classes are built with a small DSL:
//
//	c := api.NewClass("opencl", "APPLEGLSharing", "apple_gl_sharing",
//		api.WithPrefix("CL"), api.WithPrefixTemplate("cl"), api.WithPostfix("APPLE"))
//	c.IntConstantBlock("Error code.", api.IntConstant("INVALID_GL_CONTEXT_APPLE", -1000))
//	c.Func(clInt, "GetGLContextInfoAPPLE", "Queries ...", clContext.IN("context", "..."))
package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidClass is wrapped by every validation failure.
var ErrInvalidClass = errors.New("invalid native class")

// Constant is a named integer.
type Constant struct {
	Name    string
	Value   int64
	Decimal bool
}

// IntConstant declares a constant rendered in hexadecimal when non-negative.
func IntConstant(name string, value int64) Constant {
	return Constant{Name: name, Value: value}
}

// DecimalConstant declares a constant always rendered in decimal.
func DecimalConstant(name string, value int64) Constant {
	return Constant{Name: name, Value: value, Decimal: true}
}

// ConstantBlock is a group of constants sharing documentation.
type ConstantBlock struct {
	Doc       string
	Constants []Constant
}

// NativeClass describes one API family grouping: a core version or an
// extension.
type NativeClass struct {
	Package        string
	ClassName      string
	TemplateName   string
	Prefix         string
	PrefixTemplate string
	Postfix        string
	Binding        string
	Doc            string
	NativeImports  []string
	ConstantBlocks []*ConstantBlock
	Functions      []*Function
}

// ClassOption customizes a class created by NewClass.
type ClassOption func(*NativeClass)

// WithPrefix sets the constant and function prefix.
func WithPrefix(prefix string) ClassOption {
	return func(c *NativeClass) { c.Prefix = prefix }
}

// WithPrefixTemplate sets the prefix used to build extension names.
func WithPrefixTemplate(prefix string) ClassOption {
	return func(c *NativeClass) { c.PrefixTemplate = prefix }
}

// WithPostfix sets the vendor postfix.
func WithPostfix(postfix string) ClassOption {
	return func(c *NativeClass) { c.Postfix = postfix }
}

// WithBinding names the binding that generates the class.
func WithBinding(name string) ClassOption {
	return func(c *NativeClass) { c.Binding = name }
}

// NewClass starts a class declaration.
func NewClass(pkg, className, templateName string, opts ...ClassOption) *NativeClass {
	c := &NativeClass{
		Package:      pkg,
		ClassName:    className,
		TemplateName: templateName,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.PrefixTemplate == "" {
		c.PrefixTemplate = c.Prefix
	}
	return c
}

// NativeImport records the headers the class is declared in.
func (c *NativeClass) NativeImport(headers ...string) {
	c.NativeImports = append(c.NativeImports, headers...)
}

// Documentation sets the class documentation.
func (c *NativeClass) Documentation(doc string) {
	c.Doc = doc
}

// IntConstantBlock adds a documented group of constants.
func (c *NativeClass) IntConstantBlock(doc string, constants ...Constant) *ConstantBlock {
	b := &ConstantBlock{Doc: doc, Constants: constants}
	c.ConstantBlocks = append(c.ConstantBlocks, b)
	return b
}

// Func declares a native function.
func (c *NativeClass) Func(ret Type, name, doc string, params ...*Parameter) *Function {
	f := &Function{
		Name:   name,
		Class:  c,
		Return: ret,
		Doc:    doc,
		Params: params,
	}
	c.Functions = append(c.Functions, f)
	return f
}

// HasNativeFunctions reports whether the class declares any function.
func (c *NativeClass) HasNativeFunctions() bool {
	return len(c.Functions) > 0
}

// ConstantPrefix is prepended to every constant name.
func (c *NativeClass) ConstantPrefix() string {
	if c.Prefix == "" {
		return ""
	}
	return c.Prefix + "_"
}

// FunctionPrefix is prepended to every function name.
func (c *NativeClass) FunctionPrefix() string {
	return strings.ToLower(c.Prefix)
}

// Constants returns every constant in declaration order.
func (c *NativeClass) Constants() []Constant {
	var out []Constant
	for _, b := range c.ConstantBlocks {
		out = append(out, b.Constants...)
	}
	return out
}

// CapName returns the name under which the class is reported in the
// extension set. core is the prefix of the API core classes.
func (c *NativeClass) CapName(core string) string {
	if strings.HasPrefix(c.TemplateName, c.PrefixTemplate) {
		if c.Prefix == core {
			return "Open" + core + c.TemplateName[len(core):]
		}
		return c.TemplateName
	}
	return c.PrefixTemplate + "_" + c.TemplateName
}

// Validate checks the declaring-scope invariants of the class.
func (c *NativeClass) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w %s: %s", ErrInvalidClass, c.TemplateName, fmt.Sprintf(format, args...)))
	}

	if c.TemplateName == "" {
		fail("missing template name")
	}
	if c.ClassName == "" {
		fail("missing class name")
	}

	constants := make(map[string]bool)
	for _, k := range c.Constants() {
		if constants[k.Name] {
			fail("duplicate constant %s", k.Name)
		}
		constants[k.Name] = true
	}

	functions := make(map[string]bool)
	for _, f := range c.Functions {
		if functions[f.Name] {
			fail("duplicate function %s", f.Name)
		}
		functions[f.Name] = true

		params := make(map[string]bool)
		for _, p := range f.Params {
			if params[p.Name] {
				fail("%s: duplicate parameter %s", f.Name, p.Name)
			}
			params[p.Name] = true

			if p.AutoSizeFor != "" {
				switch target := f.Param(p.AutoSizeFor); {
				case target == nil:
					fail("%s: %s sizes unknown parameter %s", f.Name, p.Name, p.AutoSizeFor)
				case !target.Type.IsPointer():
					fail("%s: %s sizes %s, which is not passed by address", f.Name, p.Name, p.AutoSizeFor)
				}
			}
			if len(p.MultiTypes) > 0 && p.Type.Kind != Pointer {
				fail("%s: %s is multi-typed but not a data pointer", f.Name, p.Name)
			}
		}
	}

	return errors.Join(errs...)
}
