// Package alc is the binding of the OpenAL context API.
package alc

import (
	"fmt"
	"io"
	"strings"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
)

const (
	// Package is the Go package generated for OpenAL.
	Package = "openal"

	capabilitiesName = "ALCCapabilities"
)

type alcBinding struct{}

// Binding generates the ALCCapabilities type and the ALC function wrappers.
var Binding = binding.Register(alcBinding{})

func (alcBinding) Name() string             { return "ALC" }
func (alcBinding) Package() string          { return Package }
func (alcBinding) CapabilitiesName() string { return capabilitiesName }
func (alcBinding) Handle() string           { return "device" }

func (alcBinding) Documentation() string {
	return "Defines the capabilities of the OpenAL Context API."
}

func (alcBinding) Library() binding.Library {
	return binding.Library{
		Names: map[string]string{
			"linux":   "libopenal.so.1",
			"freebsd": "libopenal.so.1",
			"darwin":  "libopenal.dylib",
			"windows": "OpenAL32.dll",
			"":        "libopenal.so",
		},
		LocalLookup: "alcGetProcAddress",
	}
}

func (alcBinding) IsCore(c *api.NativeClass) bool {
	return strings.HasPrefix(c.TemplateName, "ALC")
}

func (alcBinding) CapName(c *api.NativeClass) string {
	return c.CapName("ALC")
}

func (b alcBinding) CapabilityField(c *api.NativeClass) string {
	return b.CapName(c)
}

func (alcBinding) HasAddressTable(c *api.NativeClass) bool {
	return c.HasNativeFunctions() && c.Prefix == "ALC"
}

// ALC 1.0 entry points are exported by every implementation.
func (alcBinding) ShouldCheckFunctionAddress(fn *api.Function) bool {
	return fn.Class.TemplateName != "ALC10"
}

func (alcBinding) GenerateFunctionAddress(w io.Writer, fn *api.Function) {
	fmt.Fprintf(w, "\t__fn := ICD().%s\n", binding.FunctionField(fn))
}

func (alcBinding) GenerateFunctionSetup(w io.Writer, c *api.NativeClass) {
	binding.WriteFunctionSetup(w, capabilitiesName, c)
}

func (b alcBinding) GenerateCapabilities(w io.Writer, classes []*api.NativeClass) error {
	caps, err := binding.NewCapabilities(b, classes)
	if err != nil {
		return err
	}
	binding.WriteCapabilities(w, caps)
	return nil
}
