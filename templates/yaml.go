package templates

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
)

type classDoc struct {
	Class          string        `yaml:"class"`
	Template       string        `yaml:"template"`
	Binding        string        `yaml:"binding"`
	Package        string        `yaml:"package,omitempty"`
	Prefix         string        `yaml:"prefix"`
	PrefixTemplate string        `yaml:"prefix_template,omitempty"`
	Postfix        string        `yaml:"postfix,omitempty"`
	Doc            string        `yaml:"doc,omitempty"`
	Imports        []string      `yaml:"imports,omitempty"`
	Types          []typeDoc     `yaml:"types,omitempty"`
	Constants      []blockDoc    `yaml:"constants,omitempty"`
	Functions      []functionDoc `yaml:"functions,omitempty"`
}

type typeDoc struct {
	Name string `yaml:"name"`
	Go   string `yaml:"go"`
	FFI  string `yaml:"ffi"`
	Kind string `yaml:"kind"`
}

type blockDoc struct {
	Doc    string        `yaml:"doc,omitempty"`
	Values []constantDoc `yaml:"values"`
}

type constantDoc struct {
	Name    string `yaml:"name"`
	Value   int64  `yaml:"value"`
	Decimal bool   `yaml:"decimal,omitempty"`
}

type functionDoc struct {
	Name    string     `yaml:"name"`
	Returns string     `yaml:"returns"`
	Doc     string     `yaml:"doc,omitempty"`
	Params  []paramDoc `yaml:"params,omitempty"`
}

type paramDoc struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Dir       string   `yaml:"dir,omitempty"`
	Doc       string   `yaml:"doc,omitempty"`
	Links     []string `yaml:"links,omitempty"`
	Nullable  bool     `yaml:"nullable,omitempty"`
	MultiType []string `yaml:"multi_type,omitempty"`
	AutoSize  string   `yaml:"auto_size,omitempty"`
	Check     int      `yaml:"check,omitempty"`
}

// Load decodes one YAML template. Type names resolve against the types
// declared in the document first, then against types.
func Load(r io.Reader, types api.TypeSet) (*api.NativeClass, error) {
	var doc classDoc
	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}

	declared := make(api.TypeSet, len(doc.Types))
	for _, td := range doc.Types {
		kind, err := api.ParseKind(td.Kind)
		if err != nil {
			return nil, fmt.Errorf("template %s: type %s: %w", doc.Template, td.Name, err)
		}
		declared[td.Name] = api.Type{Name: td.Name, Go: td.Go, FFI: td.FFI, Kind: kind}
	}
	types = types.Merge(declared)

	pkg := doc.Package
	if pkg == "" {
		b, err := binding.Lookup(doc.Binding)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", doc.Template, err)
		}
		pkg = b.Package()
	}

	c := api.NewClass(pkg, doc.Class, doc.Template,
		api.WithPrefix(doc.Prefix),
		api.WithPrefixTemplate(doc.PrefixTemplate),
		api.WithPostfix(doc.Postfix),
		api.WithBinding(doc.Binding),
	)
	c.Documentation(doc.Doc)
	c.NativeImport(doc.Imports...)

	for _, bd := range doc.Constants {
		constants := make([]api.Constant, len(bd.Values))
		for i, cd := range bd.Values {
			constants[i] = api.Constant{Name: cd.Name, Value: cd.Value, Decimal: cd.Decimal}
		}
		c.IntConstantBlock(bd.Doc, constants...)
	}

	for _, fd := range doc.Functions {
		ret, err := types.Lookup(fd.Returns)
		if err != nil {
			return nil, fmt.Errorf("template %s: function %s: %w", doc.Template, fd.Name, err)
		}

		params := make([]*api.Parameter, len(fd.Params))
		for i, pd := range fd.Params {
			p, err := pd.parameter(types)
			if err != nil {
				return nil, fmt.Errorf("template %s: function %s: %w", doc.Template, fd.Name, err)
			}
			params[i] = p
		}

		c.Func(ret, fd.Name, fd.Doc, params...)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (pd paramDoc) parameter(types api.TypeSet) (*api.Parameter, error) {
	t, err := types.Lookup(pd.Type)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", pd.Name, err)
	}

	var p *api.Parameter
	switch pd.Dir {
	case "", "in":
		p = t.IN(pd.Name, pd.Doc, pd.Links...)
	case "out":
		p = t.OUT(pd.Name, pd.Doc)
		p.Links = pd.Links
	default:
		return nil, fmt.Errorf("parameter %s: unknown direction %q", pd.Name, pd.Dir)
	}

	for _, name := range pd.MultiType {
		m, err := api.ParsePointerMapping(name)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", pd.Name, err)
		}
		p.MultiType(m)
	}

	p.Nullable = pd.Nullable
	p.AutoSizeFor = pd.AutoSize
	p.CheckCount = pd.Check

	return p, nil
}

// LoadFile decodes the YAML template stored at path.
func LoadFile(path string, types api.TypeSet) (*api.NativeClass, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f, types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as a YAML template. Every type used by the class is
// declared in the document so it loads without a type set.
func Encode(w io.Writer, c *api.NativeClass) error {
	if c == nil {
		return errors.New("encoding template: nil class")
	}

	doc := classDoc{
		Class:          c.ClassName,
		Template:       c.TemplateName,
		Binding:        c.Binding,
		Package:        c.Package,
		Prefix:         c.Prefix,
		PrefixTemplate: c.PrefixTemplate,
		Postfix:        c.Postfix,
		Doc:            api.TrimIndent(c.Doc),
		Imports:        c.NativeImports,
	}

	seen := make(map[string]bool)
	declare := func(t api.Type) {
		if seen[t.Name] {
			return
		}
		seen[t.Name] = true
		doc.Types = append(doc.Types, typeDoc{Name: t.Name, Go: t.Go, FFI: t.FFI, Kind: t.Kind.String()})
	}

	for _, b := range c.ConstantBlocks {
		bd := blockDoc{Doc: api.TrimIndent(b.Doc)}
		for _, k := range b.Constants {
			bd.Values = append(bd.Values, constantDoc{Name: k.Name, Value: k.Value, Decimal: k.Decimal})
		}
		doc.Constants = append(doc.Constants, bd)
	}

	for _, fn := range c.Functions {
		declare(fn.Return)

		fd := functionDoc{Name: fn.Name, Returns: fn.Return.Name, Doc: api.TrimIndent(fn.Doc)}
		for _, p := range fn.Params {
			declare(p.Type)

			pd := paramDoc{
				Name:     p.Name,
				Type:     p.Type.Name,
				Doc:      api.TrimIndent(p.Doc),
				Links:    p.Links,
				Nullable: p.Nullable,
				AutoSize: p.AutoSizeFor,
				Check:    p.CheckCount,
			}
			if p.Dir == api.Out {
				pd.Dir = p.Dir.String()
			}
			for _, m := range p.MultiTypes {
				pd.MultiType = append(pd.MultiType, m.String())
			}
			fd.Params = append(fd.Params, pd)
		}
		doc.Functions = append(doc.Functions, fd)
	}

	if err := yaml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding template %s: %w", c.TemplateName, err)
	}
	return nil
}
