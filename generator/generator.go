// Package generator renders the Go bindings of a binding target: a library
// loader, one file per class and the capabilities type.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
)

// DefaultRuntime is the import path of the runtime support package used by
// generated code.
const DefaultRuntime = "github.com/ardanlabs/bindgen/apiutil"

const (
	header = "// Code generated by bindgen. DO NOT EDIT.\n\n"

	ffiImport    = `"github.com/jupiterrider/ffi"`
	unixImport   = `"golang.org/x/sys/unix"`
	mapsetImport = `mapset "github.com/deckarep/golang-set/v2"`
)

// ErrNoClasses is returned when a target has nothing to generate.
var ErrNoClasses = errors.New("no classes to generate")

// Generator renders the classes of one binding.
type Generator struct {
	binding binding.Binding
	classes []*api.NativeClass
	runtime string
	log     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRuntime sets the import path of the runtime support package.
func WithRuntime(path string) Option {
	return func(g *Generator) {
		if path != "" {
			g.runtime = path
		}
	}
}

// WithLogger sets the logger reporting skipped declarations.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

func New(b binding.Binding, classes []*api.NativeClass, opts ...Option) *Generator {
	g := Generator{
		binding: b,
		classes: classes,
		runtime: DefaultRuntime,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&g)
	}
	return &g
}

// Generate returns the formatted source of every generated file keyed by
// file name.
func (g *Generator) Generate() (map[string]string, error) {
	if len(g.classes) == 0 {
		return nil, fmt.Errorf("%s: %w", g.binding.Name(), ErrNoClasses)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	classes := binding.SortClasses(g.classes, g.binding.IsCore)
	files := make(map[string]string, len(classes)+2)

	add := func(name, src string) error {
		if _, dup := files[name]; dup {
			return fmt.Errorf("%s: file %s generated twice", g.binding.Name(), name)
		}
		code, err := format(name, src)
		if err != nil {
			return err
		}
		files[name] = code
		return nil
	}

	loaderCode, err := g.generateLoader()
	if err != nil {
		return nil, fmt.Errorf("generating loader: %w", err)
	}
	if err := add("loader.go", loaderCode); err != nil {
		return nil, err
	}

	e := newEmitter(g)
	for _, c := range classes {
		code, err := e.generateClass(c)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", c.TemplateName, err)
		}
		if err := add(fileName(c.TemplateName), code); err != nil {
			return nil, err
		}
	}

	capsCode, err := g.generateCapabilities(classes)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", g.binding.CapabilitiesName(), err)
	}
	if err := add(strings.ToLower(g.binding.Name())+"_capabilities.go", capsCode); err != nil {
		return nil, err
	}

	return files, nil
}

func (g *Generator) validate() error {
	var errs []error
	for _, c := range g.classes {
		if c.Binding != g.binding.Name() {
			errs = append(errs, fmt.Errorf("template %s: bound to %q, generating %q", c.TemplateName, c.Binding, g.binding.Name()))
		}
		if c.Package != g.binding.Package() {
			errs = append(errs, fmt.Errorf("template %s: package %q, generating package %q", c.TemplateName, c.Package, g.binding.Package()))
		}
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Generator) generateCapabilities(classes []*api.NativeClass) (string, error) {
	var b strings.Builder
	g.writeHeader(&b, []string{`"errors"`, `"fmt"`, `"sync/atomic"`, `"unsafe"`}, []string{ffiImport, unixImport, mapsetImport})
	b.WriteString("\n")

	if err := g.binding.GenerateCapabilities(&b, classes); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (g *Generator) writeHeader(b *strings.Builder, std, external []string) {
	b.WriteString(header)
	fmt.Fprintf(b, "package %s\n\n", g.binding.Package())

	b.WriteString("import (\n")
	for _, imp := range std {
		fmt.Fprintf(b, "\t%s\n", imp)
	}
	if len(std) > 0 {
		b.WriteString("\n")
	}
	for _, imp := range external {
		fmt.Fprintf(b, "\t%s\n", imp)
	}
	fmt.Fprintf(b, "\n\tapiutil %q\n", g.runtime)
	b.WriteString(")\n")
}

// format gofmts src and drops the imports it does not use.
func format(filename, src string) (string, error) {
	out, err := imports.Process(filename, []byte(src), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return "", fmt.Errorf("formatting %s: %w", filename, err)
	}
	return string(out), nil
}
