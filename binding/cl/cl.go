// Package cl is the binding of the OpenCL API.
package cl

import (
	"fmt"
	"io"
	"strings"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
)

const (
	// Package is the Go package generated for OpenCL.
	Package = "opencl"

	capabilitiesName = "CLCapabilities"
)

type clBinding struct{}

// Binding generates the CLCapabilities type and the CL function wrappers.
var Binding = binding.Register(clBinding{})

func (clBinding) Name() string             { return "CL" }
func (clBinding) Package() string          { return Package }
func (clBinding) CapabilitiesName() string { return capabilitiesName }
func (clBinding) Handle() string           { return "platform" }

func (clBinding) Documentation() string {
	return "Defines the capabilities of an OpenCL platform."
}

func (clBinding) Library() binding.Library {
	return binding.Library{
		Names: map[string]string{
			"linux":   "libOpenCL.so.1",
			"freebsd": "libOpenCL.so.1",
			"darwin":  "/System/Library/Frameworks/OpenCL.framework/OpenCL",
			"windows": "OpenCL.dll",
			"":        "libOpenCL.so",
		},
		LocalLookup: "clGetExtensionFunctionAddressForPlatform",
	}
}

func (clBinding) IsCore(c *api.NativeClass) bool {
	return strings.HasPrefix(c.TemplateName, "CL")
}

func (clBinding) CapName(c *api.NativeClass) string {
	return c.CapName("CL")
}

// Extension names such as cl_apple_gl_sharing are not exported Go
// identifiers, so extension flags are spelled CL_apple_gl_sharing.
func (b clBinding) CapabilityField(c *api.NativeClass) string {
	if b.IsCore(c) {
		return b.CapName(c)
	}
	return "CL_" + c.TemplateName
}

func (clBinding) HasAddressTable(c *api.NativeClass) bool {
	return c.HasNativeFunctions() && c.Prefix == "CL"
}

func (clBinding) ShouldCheckFunctionAddress(fn *api.Function) bool {
	return fn.Class.TemplateName != "CL10"
}

func (clBinding) GenerateFunctionAddress(w io.Writer, fn *api.Function) {
	fmt.Fprintf(w, "\t__fn := ICD().%s\n", binding.FunctionField(fn))
}

func (clBinding) GenerateFunctionSetup(w io.Writer, c *api.NativeClass) {
	binding.WriteFunctionSetup(w, capabilitiesName, c)
}

func (b clBinding) GenerateCapabilities(w io.Writer, classes []*api.NativeClass) error {
	caps, err := binding.NewCapabilities(b, classes)
	if err != nil {
		return err
	}
	caps.Fields = stateFields
	binding.WriteCapabilities(w, caps)

	if !canBootstrap(b, caps.Classes) {
		return nil
	}
	return writeBootstrap(w, b)
}
