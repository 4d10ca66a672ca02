package api

import "strings"

// Parameter is one argument of a native function.
type Parameter struct {
	Name  string
	Type  Type
	Dir   Direction
	Doc   string
	Links []string

	Nullable    bool
	MultiTypes  []PointerMapping
	AutoSizeFor string
	CheckCount  int
}

// Null marks the parameter as accepting a null pointer.
func (p *Parameter) Null() *Parameter {
	p.Nullable = true
	return p
}

// MultiType lets a data pointer parameter accept slices of the mapped types.
func (p *Parameter) MultiType(mappings ...PointerMapping) *Parameter {
	p.MultiTypes = append(p.MultiTypes, mappings...)
	return p
}

// AutoSize marks the parameter as carrying the size of target: a byte count
// for multi-typed data pointers, an element count for typed pointers.
func (p *Parameter) AutoSize(target string) *Parameter {
	p.AutoSizeFor = target
	return p
}

// Check requires at least n elements behind the pointer.
func (p *Parameter) Check(n int) *Parameter {
	p.CheckCount = n
	return p
}

// Function is a native entry point declared by a class.
type Function struct {
	Name   string
	Class  *NativeClass
	Return Type
	Doc    string
	Params []*Parameter
}

// NativeName is the symbol exported by the native library.
func (f *Function) NativeName() string {
	if f.Class == nil {
		return f.Name
	}
	return f.Class.FunctionPrefix() + f.Name
}

// Param returns the parameter with the given name or nil.
func (f *Function) Param(name string) *Parameter {
	for _, p := range f.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AutoSizeOf returns the parameter that carries the size of target.
func (f *Function) AutoSizeOf(target string) *Parameter {
	for _, p := range f.Params {
		if p.AutoSizeFor == target {
			return p
		}
	}
	return nil
}

// FunctionsByName orders functions by native name.
func FunctionsByName(a, b *Function) int {
	return strings.Compare(a.NativeName(), b.NativeName())
}
