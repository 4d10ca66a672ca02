package api

import (
	"fmt"
	"strings"
)

// Kind classifies how a native type crosses the FFI boundary.
type Kind int

const (
	Value Kind = iota
	Pointer
	Opaque
	String
	Void
)

var kindNames = map[Kind]string{
	Value:   "value",
	Pointer: "pointer",
	Opaque:  "opaque",
	String:  "string",
	Void:    "void",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return Value, fmt.Errorf("unknown type kind %q", s)
}

// Type describes a native type together with its Go and libffi spelling.
type Type struct {
	Name string
	Go   string
	FFI  string
	Kind Kind
}

// IsPointer reports whether values of t are passed as addresses.
func (t Type) IsPointer() bool {
	return t.Kind == Pointer || t.Kind == Opaque || t.Kind == String
}

// IN declares an input parameter of type t.
func (t Type) IN(name, doc string, links ...string) *Parameter {
	return &Parameter{
		Name:  name,
		Type:  t,
		Dir:   In,
		Doc:   doc,
		Links: strings.Fields(strings.Join(links, " ")),
	}
}

// OUT declares an output parameter of type t.
func (t Type) OUT(name, doc string) *Parameter {
	return &Parameter{
		Name: name,
		Type: t,
		Dir:  Out,
		Doc:  doc,
	}
}

// TypeSet resolves native type names used by serialized templates.
type TypeSet map[string]Type

// NewTypeSet indexes types by their native name.
func NewTypeSet(types ...Type) TypeSet {
	ts := make(TypeSet, len(types))
	for _, t := range types {
		ts[t.Name] = t
	}
	return ts
}

// Lookup returns the type registered under name.
func (ts TypeSet) Lookup(name string) (Type, error) {
	t, ok := ts[name]
	if !ok {
		return Type{}, fmt.Errorf("unknown native type %q", name)
	}
	return t, nil
}

// Merge returns a new set holding ts overridden by other.
func (ts TypeSet) Merge(other TypeSet) TypeSet {
	out := make(TypeSet, len(ts)+len(other))
	for k, v := range ts {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// PointerMapping selects the element types a data pointer parameter accepts.
type PointerMapping int

const (
	DataByte PointerMapping = iota
	DataShort
	DataInt
	DataLong
	DataFloat
	DataDouble
	DataPointer
)

var mappingNames = map[PointerMapping]string{
	DataByte:    "byte",
	DataShort:   "short",
	DataInt:     "int",
	DataLong:    "long",
	DataFloat:   "float",
	DataDouble:  "double",
	DataPointer: "data",
}

var mappingGoTypes = map[PointerMapping]string{
	DataByte:   "int8",
	DataShort:  "int16",
	DataInt:    "int32",
	DataLong:   "int64",
	DataFloat:  "float32",
	DataDouble: "float64",
}

func (m PointerMapping) String() string {
	if s, ok := mappingNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mapping(%d)", int(m))
}

// GoType returns the Go element type of a single-type mapping. DataPointer
// has no single element type and returns "".
func (m PointerMapping) GoType() string {
	return mappingGoTypes[m]
}

// ParsePointerMapping is the inverse of PointerMapping.String.
func ParsePointerMapping(s string) (PointerMapping, error) {
	for m, name := range mappingNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return DataByte, fmt.Errorf("unknown pointer mapping %q", s)
}

// Direction is the data flow of a parameter.
type Direction int

const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}
