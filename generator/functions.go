package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/bindgen/api"
)

type declaration struct {
	template string
	value    int64
}

// emitter renders class files. Constants and functions are emitted once per
// binding: a repeated declaration is skipped, the first one wins.
type emitter struct {
	g       *Generator
	consts  map[string]declaration
	funcs   map[string]string
	goNames map[string]string
}

func newEmitter(g *Generator) *emitter {
	return &emitter{
		g:       g,
		consts:  make(map[string]declaration),
		funcs:   make(map[string]string),
		goNames: make(map[string]string),
	}
}

func (e *emitter) generateClass(c *api.NativeClass) (string, error) {
	var b strings.Builder
	e.g.writeHeader(&b, []string{`"sync"`, `"unsafe"`}, []string{ffiImport, unixImport})

	if doc := api.TrimIndent(c.Doc); doc != "" {
		b.WriteString("\n")
		writeDoc(&b, "", "", c.ClassName+": "+doc)
	}

	if err := e.writeConstants(&b, c); err != nil {
		return "", err
	}

	hasTable := e.g.binding.HasAddressTable(c)
	for _, fn := range c.Functions {
		native := fn.NativeName()
		if prev, ok := e.funcs[native]; ok {
			e.g.log.Debug("skipping repeated function", "function", native, "template", c.TemplateName, "declared_by", prev)
			continue
		}
		if !hasTable {
			return "", fmt.Errorf("function %s has no %s address table entry", native, e.g.binding.CapabilitiesName())
		}
		if prev, ok := e.goNames[fn.Name]; ok {
			return "", fmt.Errorf("function %s: Go name %s already used by %s", native, fn.Name, prev)
		}
		e.funcs[native] = c.TemplateName
		e.goNames[fn.Name] = native

		e.writeFunction(&b, fn)
		if targets := sliceTargets(fn); len(targets) > 0 {
			if prev, ok := e.goNames[fn.Name+"Slice"]; ok {
				return "", fmt.Errorf("function %s: Go name %sSlice already used by %s", native, fn.Name, prev)
			}
			e.goNames[fn.Name+"Slice"] = native
			writeSliceOverload(&b, fn, targets)
		}
	}

	if hasTable {
		e.g.binding.GenerateFunctionSetup(&b, c)
	}

	return b.String(), nil
}

func (e *emitter) writeConstants(b *strings.Builder, c *api.NativeClass) error {
	for _, block := range c.ConstantBlocks {
		var lines []string
		for _, k := range block.Constants {
			name := c.ConstantPrefix() + k.Name
			if prev, ok := e.consts[name]; ok {
				if prev.value != k.Value {
					return fmt.Errorf("constant %s redeclared as %d, %s declares %d", name, k.Value, prev.template, prev.value)
				}
				e.g.log.Debug("skipping repeated constant", "constant", name, "template", c.TemplateName, "declared_by", prev.template)
				continue
			}
			e.consts[name] = declaration{template: c.TemplateName, value: k.Value}
			lines = append(lines, name+" = "+constantValue(k))
		}
		if len(lines) == 0 {
			continue
		}

		b.WriteString("\n")
		writeDoc(b, "", "", block.Doc)
		if len(lines) == 1 {
			fmt.Fprintf(b, "const %s\n", lines[0])
			continue
		}
		fmt.Fprintf(b, "const (\n\t%s\n)\n", strings.Join(lines, "\n\t"))
	}
	return nil
}

func constantValue(k api.Constant) string {
	if k.Decimal || k.Value < 0 {
		return strconv.FormatInt(k.Value, 10)
	}
	return fmt.Sprintf("0x%X", k.Value)
}

func goType(t api.Type) string {
	switch {
	case t.Kind == api.Void:
		return ""
	case t.Go != "":
		return t.Go
	case t.Kind == api.Pointer:
		return "unsafe.Pointer"
	default:
		return "uintptr"
	}
}

// needsFFIArg reports whether libffi widens the return value to a full
// register.
func needsFFIArg(t api.Type) bool {
	if t.Kind != api.Value {
		return false
	}
	switch t.FFI {
	case "&ffi.TypeSint8", "&ffi.TypeUint8",
		"&ffi.TypeSint16", "&ffi.TypeUint16",
		"&ffi.TypeSint32", "&ffi.TypeUint32":
		return true
	default:
		return false
	}
}

func cifName(fn *api.Function) string {
	return "cif" + fn.Name
}

func (e *emitter) writeFunction(b *strings.Builder, fn *api.Function) {
	native := fn.NativeName()
	ret := goType(fn.Return)

	ffiArgs := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		ffiArgs[i] = p.Type.FFI
	}
	fmt.Fprintf(b, "\nvar %s = sync.OnceValue(func() *ffi.Cif {\n", cifName(fn))
	b.WriteString("\tvar cif ffi.Cif\n")
	prep := fmt.Sprintf("ffi.PrepCif(&cif, ffi.DefaultAbi, %d, %s", len(fn.Params), fn.Return.FFI)
	if len(ffiArgs) > 0 {
		prep += ", " + strings.Join(ffiArgs, ", ")
	}
	fmt.Fprintf(b, "\tif status := %s); status != ffi.OK {\n", prep)
	fmt.Fprintf(b, "\t\tpanic(%q)\n", native+": ffi.PrepCif failed")
	b.WriteString("\t}\n\treturn &cif\n})\n\n")

	if fn.Doc != "" {
		writeDoc(b, "", fn.Name, fn.Doc)
	} else {
		fmt.Fprintf(b, "// %s calls %s.\n", fn.Name, native)
	}
	writeParamDocs(b, fn)

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = paramName(p) + " " + goType(p.Type)
	}
	if ret != "" {
		ret = " " + ret
	}
	fmt.Fprintf(b, "func %s(%s)%s {\n", fn.Name, strings.Join(params, ", "), ret)

	e.g.binding.GenerateFunctionAddress(b, fn)
	if e.g.binding.ShouldCheckFunctionAddress(fn) {
		fmt.Fprintf(b, "\tapiutil.CheckFunctionAddress(%q, __fn)\n", native)
	}

	for _, p := range fn.Params {
		if p.Type.Kind != api.String {
			continue
		}
		name := paramName(p)
		if p.Nullable {
			fmt.Fprintf(b, "\tvar %sPtr *byte\n", name)
			fmt.Fprintf(b, "\tif %s != \"\" {\n", name)
			fmt.Fprintf(b, "\t\t%sPtr, _ = unix.BytePtrFromString(%s)\n", name, name)
			b.WriteString("\t}\n")
			continue
		}
		fmt.Fprintf(b, "\t%sPtr, _ := unix.BytePtrFromString(%s)\n", name, name)
	}

	callArgs := []string{"nil"}
	switch {
	case fn.Return.Kind == api.Void:
	case fn.Return.Kind == api.String:
		b.WriteString("\tvar __ret *byte\n")
		callArgs[0] = "unsafe.Pointer(&__ret)"
	case needsFFIArg(fn.Return):
		b.WriteString("\tvar __ret ffi.Arg\n")
		callArgs[0] = "unsafe.Pointer(&__ret)"
	default:
		fmt.Fprintf(b, "\tvar __ret %s\n", goType(fn.Return))
		callArgs[0] = "unsafe.Pointer(&__ret)"
	}

	for _, p := range fn.Params {
		name := paramName(p)
		if p.Type.Kind == api.String {
			callArgs = append(callArgs, fmt.Sprintf("unsafe.Pointer(&%sPtr)", name))
			continue
		}
		callArgs = append(callArgs, fmt.Sprintf("unsafe.Pointer(&%s)", name))
	}

	fmt.Fprintf(b, "\tffi.Call(%s(), __fn, %s)\n", cifName(fn), strings.Join(callArgs, ", "))

	switch {
	case fn.Return.Kind == api.Void:
	case fn.Return.Kind == api.String:
		b.WriteString("\tif __ret == nil {\n\t\treturn \"\"\n\t}\n")
		b.WriteString("\treturn unix.BytePtrToString(__ret)\n")
	case needsFFIArg(fn.Return) && fn.Return.Go == "bool":
		b.WriteString("\treturn __ret.Bool()\n")
	case needsFFIArg(fn.Return):
		fmt.Fprintf(b, "\treturn %s(__ret)\n", goType(fn.Return))
	default:
		b.WriteString("\treturn __ret\n")
	}

	b.WriteString("}\n")
}

func writeParamDocs(b *strings.Builder, fn *api.Function) {
	var lines []string
	for _, p := range fn.Params {
		doc := strings.Join(strings.Fields(api.TrimIndent(p.Doc)), " ")
		if len(p.Links) > 0 {
			if doc != "" && !strings.HasSuffix(doc, ".") {
				doc += "."
			}
			doc = strings.TrimSpace(doc + " One of: " + docLinks(p.Links) + ".")
		}
		if doc == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("//   - %s: %s", paramName(p), doc))
	}
	if len(lines) == 0 {
		return
	}

	b.WriteString("//\n// Parameters:\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}

// sliceTargets returns the pointer parameters of fn that a slice overload
// accepts as Go slices: multi-typed data pointers and typed pointers whose
// size is carried by another parameter.
func sliceTargets(fn *api.Function) map[string]bool {
	targets := make(map[string]bool)
	for _, p := range fn.Params {
		switch {
		case len(p.MultiTypes) > 0:
			targets[p.Name] = true
		case p.Type.IsPointer() && strings.HasPrefix(p.Type.Go, "*") && fn.AutoSizeOf(p.Name) != nil:
			targets[p.Name] = true
		}
	}
	return targets
}

func multiTypeConstraint(mappings []api.PointerMapping) string {
	var union []string
	for _, m := range mappings {
		if m == api.DataPointer {
			return "apiutil.Data"
		}
		union = append(union, "~"+m.GoType())
	}
	return strings.Join(union, " | ")
}

func typeParamName(i int) string {
	if i == 0 {
		return "T"
	}
	return "T" + strconv.Itoa(i+1)
}

func writeSliceOverload(b *strings.Builder, fn *api.Function, targets map[string]bool) {
	var (
		typeParams []string
		params     []string
		args       []string
		sliced     []string
		derived    []string
	)

	for _, p := range fn.Params {
		name := paramName(p)
		switch {
		case targets[p.Name] && len(p.MultiTypes) > 0:
			tp := typeParamName(len(typeParams))
			typeParams = append(typeParams, tp+" "+multiTypeConstraint(p.MultiTypes))
			params = append(params, name+" []"+tp)
			sliced = append(sliced, name)
			if t := goType(p.Type); t != "unsafe.Pointer" {
				args = append(args, fmt.Sprintf("(%s)(apiutil.SlicePointer(%s))", t, name))
				continue
			}
			args = append(args, "apiutil.SlicePointer("+name+")")

		case targets[p.Name]:
			params = append(params, name+" []"+strings.TrimPrefix(p.Type.Go, "*"))
			sliced = append(sliced, name)
			args = append(args, "unsafe.SliceData("+name+")")

		case p.AutoSizeFor != "" && targets[p.AutoSizeFor]:
			target := fn.Param(p.AutoSizeFor)
			size := "len(" + paramName(target) + ")"
			if len(target.MultiTypes) > 0 {
				size = "apiutil.ByteSize(" + paramName(target) + ")"
			}
			args = append(args, fmt.Sprintf("%s(%s)", goType(p.Type), size))
			derived = append(derived, name)

		default:
			params = append(params, name+" "+goType(p.Type))
			args = append(args, name)
		}
	}

	name := fn.Name + "Slice"
	fmt.Fprintf(b, "\n// %s calls [%s] with %s passed as a slice.\n", name, fn.Name, strings.Join(sliced, " and "))
	if len(derived) > 0 {
		fmt.Fprintf(b, "// %s is derived from the slice length.\n", strings.Join(derived, " and "))
	}

	var generic string
	if len(typeParams) > 0 {
		generic = "[" + strings.Join(typeParams, ", ") + "]"
	}
	ret := goType(fn.Return)
	if ret != "" {
		ret = " " + ret
	}
	fmt.Fprintf(b, "func %s%s(%s)%s {\n", name, generic, strings.Join(params, ", "), ret)

	call := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(args, ", "))
	if ret != "" {
		fmt.Fprintf(b, "\treturn %s\n", call)
	} else {
		fmt.Fprintf(b, "\t%s\n", call)
	}
	b.WriteString("}\n")
}
