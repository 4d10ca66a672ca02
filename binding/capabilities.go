package binding

import (
	"fmt"
	"io"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/apiutil"
)

// Flag is the boolean capability field generated for one class.
type Flag struct {
	Class   *api.NativeClass
	CapName string
	Field   string

	// Functions lists the entry points validated before the flag is set.
	// Empty when the class contributes nothing to the address table.
	Functions []*api.Function
}

// Field is an additional field of a capabilities type, declared before the
// address table.
type Field struct {
	Name string
	Type string

	// Doc completes the sentence started by the field name.
	Doc string
}

// Capabilities is the layout of a generated capabilities type.
type Capabilities struct {
	Binding   Binding
	Classes   []*api.NativeClass
	Fields    []Field
	Addresses []*api.Function
	Flags     []Flag
}

// SortClasses orders core classes first, then by template name ignoring
// case.
func SortClasses(classes []*api.NativeClass, isCore func(*api.NativeClass) bool) []*api.NativeClass {
	sorted := slices.Clone(classes)
	slices.SortStableFunc(sorted, func(a, b *api.NativeClass) int {
		coreA, coreB := isCore(a), isCore(b)
		if coreA != coreB {
			if coreA {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.TemplateName), strings.ToLower(b.TemplateName))
	})
	return sorted
}

// AddressTable returns the functions of classes accepted by filter, ordered
// by native name with duplicates removed. The first declaration of a name
// wins.
func AddressTable(classes []*api.NativeClass, filter func(*api.NativeClass) bool) []*api.Function {
	set := treeset.NewWith(func(a, b any) int {
		return api.FunctionsByName(a.(*api.Function), b.(*api.Function))
	})

	for _, c := range classes {
		if !filter(c) {
			continue
		}
		for _, fn := range c.Functions {
			if !set.Contains(fn) {
				set.Add(fn)
			}
		}
	}

	out := make([]*api.Function, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(*api.Function))
	}
	return out
}

// NewCapabilities lays out the capabilities type of b for classes. Two
// classes mapping to the same capability field are rejected.
func NewCapabilities(b Binding, classes []*api.NativeClass) (*Capabilities, error) {
	sorted := SortClasses(classes, b.IsCore)

	caps := &Capabilities{
		Binding:   b,
		Classes:   sorted,
		Addresses: AddressTable(sorted, b.HasAddressTable),
	}

	fields := make(map[string]string, len(sorted))
	for _, c := range sorted {
		flag := Flag{
			Class:   c,
			CapName: b.CapName(c),
			Field:   b.CapabilityField(c),
		}
		if prev, dup := fields[flag.Field]; dup {
			return nil, fmt.Errorf("%s: %s and %s share capability field %s", b.Name(), prev, c.TemplateName, flag.Field)
		}
		fields[flag.Field] = c.TemplateName

		if b.HasAddressTable(c) {
			flag.Functions = c.Functions
		}
		caps.Flags = append(caps.Flags, flag)
	}

	return caps, nil
}

// Evaluate computes the flag values the generated constructor produces for
// the extension set ext, resolving entry points through lookup. The result
// is keyed by capability name.
func (caps *Capabilities) Evaluate(ext mapset.Set[string], lookup func(*api.Function) uintptr) map[string]bool {
	addrs := make(map[string]uintptr, len(caps.Addresses))
	for _, fn := range caps.Addresses {
		addrs[fn.NativeName()] = lookup(fn)
	}

	out := make(map[string]bool, len(caps.Flags))
	for _, flag := range caps.Flags {
		supported := ext.Contains(flag.CapName)
		if supported && len(flag.Functions) > 0 {
			fns := make([]uintptr, len(flag.Functions))
			for i, fn := range flag.Functions {
				fns[i] = addrs[fn.NativeName()]
			}
			supported = apiutil.CheckExtension(caps.Binding.Name(), flag.CapName, apiutil.CheckFunctions(fns...))
		}
		out[flag.CapName] = supported
	}
	return out
}

// FunctionField is the capabilities field holding the address of fn.
func FunctionField(fn *api.Function) string {
	return Capitalise(fn.NativeName())
}

// IsAvailableName is the availability check generated for c.
func IsAvailableName(c *api.NativeClass) string {
	return "isAvailable" + c.ClassName
}

// Capitalise makes the first character upper case, removing leading
// underscores.
func Capitalise(s string) string {
	s = strings.TrimLeft(s, "_")
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WriteFunctionSetup writes the availability check of c: every entry point
// of the class must have been resolved into caps.
func WriteFunctionSetup(w io.Writer, capabilities string, c *api.NativeClass) {
	fields := make([]string, 0, len(c.Functions))
	for _, fn := range c.Functions {
		fields = append(fields, "caps."+FunctionField(fn))
	}

	fmt.Fprintf(w, "\nfunc %s(caps *%s) bool {\n", IsAvailableName(c), capabilities)
	fmt.Fprintf(w, "\treturn apiutil.CheckFunctions(%s)\n", strings.Join(fields, ", "))
	fmt.Fprintf(w, "}\n")
}

// WriteCapabilities writes the capabilities type, its constructor and the
// accessor of the installed instance.
func WriteCapabilities(w io.Writer, caps *Capabilities) {
	b := caps.Binding
	name := b.CapabilitiesName()

	if doc := b.Documentation(); doc != "" {
		fmt.Fprintf(w, "// %s %s\n", name, lowerFirst(doc))
	}
	fmt.Fprintf(w, "type %s struct {\n", name)

	for _, f := range caps.Fields {
		if f.Doc != "" {
			fmt.Fprintf(w, "\t// %s %s\n", f.Name, f.Doc)
		}
		fmt.Fprintf(w, "\t%s %s\n", f.Name, f.Type)
	}
	if len(caps.Fields) > 0 && len(caps.Addresses) > 0 {
		fmt.Fprintln(w)
	}

	if len(caps.Addresses) > 0 {
		fields := make([]string, len(caps.Addresses))
		for i, fn := range caps.Addresses {
			fields[i] = FunctionField(fn)
		}
		fmt.Fprintf(w, "\t%s uintptr\n", strings.Join(fields, ",\n\t"))
	}

	for _, flag := range caps.Flags {
		fmt.Fprintf(w, "\n\t// %s is true when %s is supported.\n", flag.Field, flag.Class.ClassName)
		fmt.Fprintf(w, "\t%s bool\n", flag.Field)
	}
	fmt.Fprintf(w, "}\n\n")

	handle := b.Handle()
	fmt.Fprintf(w, "// New%s resolves every entry point through provider and detects the\n", name)
	fmt.Fprintf(w, "// capabilities named in ext.\n")
	fmt.Fprintf(w, "func New%s(provider apiutil.FunctionProviderLocal, %s uintptr, ext mapset.Set[string]) *%s {\n", name, handle, name)
	fmt.Fprintf(w, "\tcaps := &%s{}\n", name)

	if len(caps.Addresses) > 0 {
		fmt.Fprintln(w)
	}
	for _, fn := range caps.Addresses {
		if b.IsCore(fn.Class) {
			fmt.Fprintf(w, "\tcaps.%s = provider.FunctionAddress(%q)\n", FunctionField(fn), fn.NativeName())
		} else {
			fmt.Fprintf(w, "\tcaps.%s = provider.FunctionAddressLocal(%s, %q)\n", FunctionField(fn), handle, fn.NativeName())
		}
	}

	fmt.Fprintln(w)
	for _, flag := range caps.Flags {
		fmt.Fprintf(w, "\tcaps.%s = ext.Contains(%q)", flag.Field, flag.CapName)
		if len(flag.Functions) > 0 {
			fmt.Fprintf(w, " && apiutil.CheckExtension(%q, %q, %s(caps))", b.Name(), flag.CapName, IsAvailableName(flag.Class))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n\treturn caps\n}\n\n")

	fmt.Fprintf(w, "var icd atomic.Pointer[%s]\n\n", name)
	fmt.Fprintf(w, "// SetICD installs the capabilities used by the function wrappers of this\n")
	fmt.Fprintf(w, "// package.\n")
	fmt.Fprintf(w, "func SetICD(caps *%s) {\n\ticd.Store(caps)\n}\n\n", name)
	fmt.Fprintf(w, "// ICD returns the installed capabilities. It panics when SetICD was never\n")
	fmt.Fprintf(w, "// called.\n")
	fmt.Fprintf(w, "func ICD() *%s {\n", name)
	fmt.Fprintf(w, "\tcaps := icd.Load()\n")
	fmt.Fprintf(w, "\tif caps == nil {\n")
	fmt.Fprintf(w, "\t\tpanic(%q)\n", b.Package()+": no "+name+" installed, call SetICD first")
	fmt.Fprintf(w, "\t}\n")
	fmt.Fprintf(w, "\treturn caps\n")
	fmt.Fprintf(w, "}\n")
}

func lowerFirst(s string) string {
	if len(s) < 2 {
		return strings.ToLower(s)
	}
	if strings.ToUpper(s[1:2]) == s[1:2] {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
