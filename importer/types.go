package importer

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/parser"
)

const maxTypedefDepth = 16

// resolved is a C type with its typedef chain followed to a base type.
type resolved struct {
	base       parser.CType
	pointers   int
	viaTypedef bool
}

func (im *importer) resolve(ct parser.CType) (resolved, error) {
	r := resolved{base: ct}
	if ct.IsPointer {
		r.pointers = 1
	}
	r.base.IsPointer = false

	for range maxTypedefDepth {
		src, ok := im.typedefs[r.base.Name]
		if !ok || src.Name == r.base.Name {
			return r, nil
		}
		if src.IsPointer {
			r.pointers++
			r.viaTypedef = true
		}
		r.base = parser.CType{Name: src.Name, IsUnsigned: src.IsUnsigned, IsConst: r.base.IsConst || src.IsConst}
	}
	return r, fmt.Errorf("typedef chain of %s is too deep", ct.Name)
}

// spelling is the native spelling of ct used as the type name.
func spelling(ct parser.CType) string {
	var b strings.Builder
	if ct.IsConst {
		b.WriteString("const ")
	}
	if ct.IsUnsigned {
		b.WriteString("unsigned ")
	}
	b.WriteString(ct.Name)
	if ct.IsPointer {
		b.WriteString(" *")
	}
	return b.String()
}

// typeOf maps a C type to an api.Type. Known types are used as declared.
func (im *importer) typeOf(ct parser.CType) (api.Type, error) {
	name := spelling(ct)
	if t, ok := im.known[name]; ok {
		return t, nil
	}
	if t, ok := im.known[strings.TrimPrefix(name, "const ")]; ok {
		t.Name = name
		return t, nil
	}

	r, err := im.resolve(ct)
	if err != nil {
		return api.Type{}, err
	}

	goType, ffiType, scalar := im.scalar(r.base)

	switch {
	case r.pointers == 0 && r.base.Name == "void":
		return api.Type{Name: name, FFI: "&ffi.TypeVoid", Kind: api.Void}, nil

	case r.pointers == 0:
		if im.isStruct(r.base.Name) {
			return api.Type{}, fmt.Errorf("type %s: structs passed by value are not supported", name)
		}
		if !scalar {
			return api.Type{}, fmt.Errorf("unknown type %s", name)
		}
		return api.Type{Name: name, Go: goType, FFI: ffiType, Kind: api.Value}, nil

	case r.pointers == 1 && r.viaTypedef:
		return api.Type{Name: name, Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}, nil

	case r.pointers == 1 && r.base.Name == "char" && ct.IsConst:
		return api.Type{Name: name, Go: "string", FFI: "&ffi.TypePointer", Kind: api.String}, nil

	case r.pointers == 1 && r.base.Name == "void":
		return api.Type{Name: name, Go: "unsafe.Pointer", FFI: "&ffi.TypePointer", Kind: api.Pointer}, nil

	case r.pointers == 1 && scalar:
		return api.Type{Name: name, Go: "*" + goType, FFI: "&ffi.TypePointer", Kind: api.Pointer}, nil

	case r.pointers == 1 && !im.isHandle(r.base.Name):
		return api.Type{Name: name, Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}, nil

	default:
		return api.Type{Name: name, Go: "*uintptr", FFI: "&ffi.TypePointer", Kind: api.Pointer}, nil
	}
}

// scalar maps a base type to its Go and libffi spelling, consulting the
// known value types first.
func (im *importer) scalar(base parser.CType) (string, string, bool) {
	if t, ok := im.known[base.Name]; ok && t.Kind == api.Value && !base.IsUnsigned {
		return t.Go, t.FFI, true
	}
	if goType := cTypeToGoType(base); goType != "" {
		return goType, cTypeToFFIType(base), true
	}
	return "", "", false
}

// isHandle reports whether name is a known handle type such as cl_context.
func (im *importer) isHandle(name string) bool {
	t, ok := im.known[name]
	return ok && t.Kind == api.Opaque
}

func (im *importer) isStruct(name string) bool {
	for _, s := range im.header.Structs {
		if s.Name == name {
			return true
		}
	}
	return false
}

// cTypeToGoType returns the Go spelling of a scalar C type, or "" when ct
// is not a scalar.
func cTypeToGoType(ct parser.CType) string {
	switch ct.Name {
	case "bool", "_Bool":
		return "bool"
	case "char":
		if ct.IsUnsigned {
			return "uint8"
		}
		return "int8"
	case "short":
		if ct.IsUnsigned {
			return "uint16"
		}
		return "int16"
	case "int":
		if ct.IsUnsigned {
			return "uint32"
		}
		return "int32"
	case "long", "long long":
		if ct.IsUnsigned {
			return "uint64"
		}
		return "int64"
	case "int8_t":
		return "int8"
	case "uint8_t":
		return "uint8"
	case "int16_t":
		return "int16"
	case "uint16_t":
		return "uint16"
	case "int32_t":
		return "int32"
	case "uint32_t":
		return "uint32"
	case "int64_t":
		return "int64"
	case "uint64_t", "size_t", "uintptr_t":
		return "uint64"
	case "intptr_t", "ptrdiff_t":
		return "int64"
	case "float":
		return "float32"
	case "double":
		return "float64"
	default:
		return ""
	}
}

func cTypeToFFIType(ct parser.CType) string {
	switch cTypeToGoType(ct) {
	case "bool", "uint8":
		return "&ffi.TypeUint8"
	case "int8":
		return "&ffi.TypeSint8"
	case "uint16":
		return "&ffi.TypeUint16"
	case "int16":
		return "&ffi.TypeSint16"
	case "uint32":
		return "&ffi.TypeUint32"
	case "int32":
		return "&ffi.TypeSint32"
	case "uint64":
		return "&ffi.TypeUint64"
	case "int64":
		return "&ffi.TypeSint64"
	case "float32":
		return "&ffi.TypeFloat"
	case "float64":
		return "&ffi.TypeDouble"
	default:
		return "&ffi.TypePointer"
	}
}
