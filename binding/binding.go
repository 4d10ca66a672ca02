// Package binding defines the generation policy an API family supplies to the
// generator, and the capabilities type shared by every binding.
package binding

import (
	"io"

	"github.com/ardanlabs/bindgen/api"
)

// Library describes how generated code locates the native library.
type Library struct {
	// Names maps GOOS to the library file name. The empty key is the
	// fallback for unlisted systems.
	Names map[string]string

	// LocalLookup is the native function resolving entry points local to a
	// handle. Empty when the API has no such function.
	LocalLookup string
}

// FileName returns the library file name for goos.
func (l Library) FileName(goos string) string {
	if name, ok := l.Names[goos]; ok {
		return name
	}
	return l.Names[""]
}

// Binding supplies generation policy for one API family: it decides how
// function addresses are looked up and validated and how the capabilities
// type is emitted.
type Binding interface {
	// Name is the API prefix, such as "ALC" or "CL".
	Name() string

	// Package is the Go package name of generated code.
	Package() string

	// CapabilitiesName is the name of the generated capabilities type.
	CapabilitiesName() string

	Documentation() string

	// Handle names the handle argument used for local address lookups.
	Handle() string

	Library() Library

	// IsCore reports whether the class is a core version of the API.
	IsCore(c *api.NativeClass) bool

	// CapName is the name the class is detected under at runtime.
	CapName(c *api.NativeClass) string

	// CapabilityField is the Go field holding the class flag.
	CapabilityField(c *api.NativeClass) string

	// HasAddressTable reports whether the functions of the class get a
	// field in the capabilities type.
	HasAddressTable(c *api.NativeClass) bool

	ShouldCheckFunctionAddress(fn *api.Function) bool

	// GenerateFunctionAddress writes the statement that loads the address of
	// fn into the __fn variable of a function wrapper.
	GenerateFunctionAddress(w io.Writer, fn *api.Function)

	// GenerateFunctionSetup writes the per-class availability check.
	GenerateFunctionSetup(w io.Writer, c *api.NativeClass)

	// GenerateCapabilities writes the capabilities type for classes.
	GenerateCapabilities(w io.Writer, classes []*api.NativeClass) error
}
