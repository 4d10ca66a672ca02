// Package importer turns a parsed C header into a class template that can be
// edited and fed back to the generator.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/parser"
)

// ErrEmpty is returned when nothing in the header matches the prefix.
var ErrEmpty = errors.New("no declarations match the prefix")

// Options selects what is imported and how the class is named.
type Options struct {
	Binding      binding.Binding
	ClassName    string
	TemplateName string

	// Prefix selects the declarations to import. Constants must start
	// with Prefix+"_" and functions with its lower case form.
	Prefix         string
	PrefixTemplate string
	Postfix        string
	Doc            string

	// Types holds native types that map as declared instead of being
	// derived from the header.
	Types  api.TypeSet
	Logger *slog.Logger
}

type importer struct {
	header   *parser.Header
	typedefs map[string]parser.CType
	known    api.TypeSet
	log      *slog.Logger
}

// Import builds a class from the declarations of h selected by opts.Prefix.
// Declarations that cannot be mapped are skipped and logged.
func Import(h *parser.Header, opts Options) (*api.NativeClass, error) {
	if opts.Binding == nil {
		return nil, errors.New("importing header: no binding")
	}
	if opts.Prefix == "" || opts.TemplateName == "" {
		return nil, errors.New("importing header: prefix and template name are required")
	}
	if opts.ClassName == "" {
		opts.ClassName = className(opts.TemplateName)
	}

	im := importer{
		header:   h,
		typedefs: make(map[string]parser.CType, len(h.TypeDefs)),
		known:    opts.Types,
		log:      opts.Logger,
	}
	if im.log == nil {
		im.log = slog.Default()
	}
	for _, td := range h.TypeDefs {
		im.typedefs[td.Name] = td.SourceType
	}

	c := api.NewClass(opts.Binding.Package(), opts.ClassName, opts.TemplateName,
		api.WithPrefix(opts.Prefix),
		api.WithPrefixTemplate(opts.PrefixTemplate),
		api.WithPostfix(opts.Postfix),
		api.WithBinding(opts.Binding.Name()),
	)
	c.Documentation(opts.Doc)

	im.importConstants(c)
	im.importFunctions(c)

	if len(c.ConstantBlocks) == 0 && len(c.Functions) == 0 {
		return nil, fmt.Errorf("importing %s: %w %s", opts.TemplateName, ErrEmpty, opts.Prefix)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (im *importer) importConstants(c *api.NativeClass) {
	prefix := c.ConstantPrefix()
	seen := make(map[string]bool)

	var defines []api.Constant
	for _, d := range im.header.Defines {
		name, ok := strings.CutPrefix(d.Name, prefix)
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		defines = append(defines, api.Constant{Name: name, Value: d.Value, Decimal: isDecimal(d.Literal)})
	}
	if len(defines) > 0 {
		c.IntConstantBlock("", defines...)
	}

	for _, e := range im.header.Enums {
		var (
			values []api.Constant
			next   int64
		)
		for _, v := range e.Values {
			value := next
			if v.Value != "" {
				n, err := strconv.ParseInt(v.Value, 0, 64)
				if err != nil {
					im.log.Warn("skipping enum value with a non-literal initializer", "enum", e.Name, "value", v.Name)
					break
				}
				value = n
			}
			next = value + 1

			name, ok := strings.CutPrefix(v.Name, prefix)
			if !ok || name == "" || seen[name] {
				continue
			}
			seen[name] = true
			values = append(values, api.Constant{Name: name, Value: value, Decimal: v.Value != "" && isDecimal(v.Value)})
		}
		if len(values) > 0 {
			c.IntConstantBlock(fmt.Sprintf("%s values.", e.Name), values...)
		}
	}
}

func isDecimal(literal string) bool {
	l := strings.ToLower(literal)
	return !strings.Contains(l, "0x") && !strings.Contains(l, "<<")
}

func (im *importer) importFunctions(c *api.NativeClass) {
	prefix := c.FunctionPrefix()
	seen := make(map[string]bool)

	for _, fn := range im.header.Functions {
		name, ok := strings.CutPrefix(fn.Name, prefix)
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if fn.IsVariadic {
			im.log.Warn("skipping variadic function", "function", fn.Name)
			continue
		}

		ret, err := im.typeOf(fn.ReturnType)
		if err != nil {
			im.log.Warn("skipping function", "function", fn.Name, "error", err)
			continue
		}

		params := make([]*api.Parameter, 0, len(fn.Params))
		for i, p := range fn.Params {
			t, err := im.typeOf(p.Type)
			if err != nil {
				im.log.Warn("skipping function", "function", fn.Name, "parameter", p.Name, "error", err)
				params = nil
				break
			}
			pname := p.Name
			if pname == "" {
				pname = fmt.Sprintf("arg%d", i)
			}
			params = append(params, t.IN(pname, ""))
		}
		if params == nil && len(fn.Params) > 0 {
			continue
		}

		c.Func(ret, name, "", params...)
	}
}

// className derives a Go class name from a template name:
// apple_gl_sharing becomes APPLEGlSharing.
func className(templateName string) string {
	parts := strings.Split(templateName, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 {
			b.WriteString(strings.ToUpper(part))
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
