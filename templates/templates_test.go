package templates

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/templates/opencl"
)

func TestBuiltinValidates(t *testing.T) {
	for name, target := range Builtin() {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, target.Classes)
			for _, c := range target.Classes {
				require.NoError(t, c.Validate())
				assert.Equal(t, name, c.Binding)
				assert.Equal(t, target.Binding.Package(), c.Package)
			}
		})
	}
}

func TestAppleGLSharing(t *testing.T) {
	c := Builtin()["CL"].Class("apple_gl_sharing")
	require.NotNil(t, c)

	assert.Equal(t, "APPLEGLSharing", c.ClassName)
	assert.Equal(t, "APPLE", c.Postfix)
	assert.Equal(t, []string{"OpenCL.h"}, c.NativeImports)
	assert.Equal(t, "cl_apple_gl_sharing", c.CapName("CL"))

	want := []api.Constant{
		{Name: "INVALID_GL_CONTEXT_APPLE", Value: -1000},
		{Name: "CONTEXT_PROPERTY_USE_CGL_SHAREGROUP_APPLE", Value: 0x10000000},
		{Name: "CGL_DEVICES_FOR_SUPPORTED_VIRTUAL_SCREENS_APPLE", Value: 0x10000003},
		{Name: "CGL_DEVICE_FOR_CURRENT_VIRTUAL_SCREEN_APPLE", Value: 0x10000002},
	}
	assert.Equal(t, want, c.Constants())
	assert.Len(t, c.ConstantBlocks, 4)

	require.Len(t, c.Functions, 1)
	fn := c.Functions[0]
	assert.Equal(t, "clGetGLContextInfoAPPLE", fn.NativeName())
	assert.Equal(t, "cl_int", fn.Return.Name)

	var names []string
	for _, p := range fn.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"context", "platform_gl_ctx", "param_name", "param_value_size", "param_value", "param_value_size_ret"}, names)

	assert.Equal(t, []string{"CL_CGL_DEVICES_FOR_SUPPORTED_VIRTUAL_SCREENS_APPLE", "CL_CGL_DEVICE_FOR_CURRENT_VIRTUAL_SCREEN_APPLE"}, fn.Param("param_name").Links)
	assert.Equal(t, "param_value", fn.Param("param_value_size").AutoSizeFor)

	value := fn.Param("param_value")
	assert.True(t, value.Nullable)
	assert.Equal(t, []api.PointerMapping{api.DataPointer}, value.MultiTypes)

	ret := fn.Param("param_value_size_ret")
	assert.Equal(t, api.Out, ret.Dir)
	assert.True(t, ret.Nullable)
	assert.Equal(t, 1, ret.CheckCount)
}

func TestTargetAddExclude(t *testing.T) {
	target := Builtin()["ALC"]
	n := len(target.Classes)

	err := target.Add(api.NewClass("opencl", "X", "x", api.WithPrefix("CL"), api.WithBinding("CL")))
	assert.ErrorContains(t, err, "bound to \"CL\"")

	err = target.Add(api.NewClass("openal", "ALC10", "ALC10", api.WithPrefix("ALC"), api.WithBinding("ALC")))
	assert.ErrorContains(t, err, "already declared")

	require.NoError(t, target.Add(api.NewClass("openal", "EXTFoo", "EXT_foo", api.WithPrefix("ALC"), api.WithBinding("ALC"))))
	assert.Len(t, target.Classes, n+1)

	target.Exclude("EXT_foo", "SOFT_loopback")
	assert.Len(t, target.Classes, n-1)
	assert.Nil(t, target.Class("SOFT_loopback"))
	assert.NotNil(t, target.Class("ALC10"))
}

const vendorTemplate = `
class: VENDORQuery
template: vendor_query
binding: CL
prefix: CL
prefix_template: cl
postfix: VENDOR
doc: Native bindings to the cl_vendor_query extension.
types:
  - name: cl_query_info
    go: uint32
    ffi: "&ffi.TypeUint32"
    kind: value
constants:
  - doc: Accepted by QueryVENDOR.
    values:
      - name: QUERY_SPEED_VENDOR
        value: 0x4001
      - name: QUERY_ERROR_VENDOR
        value: -1100
        decimal: true
functions:
  - name: QueryVENDOR
    returns: cl_int
    doc: Queries a vendor value.
    params:
      - name: context
        type: cl_context
      - name: param_name
        type: cl_query_info
        links: [CL_QUERY_SPEED_VENDOR]
      - name: param_value_size
        type: size_t
        auto_size: param_value
      - name: param_value
        type: void *
        nullable: true
        multi_type: [int, float]
      - name: param_value_size_ret
        type: size_t *
        dir: out
        nullable: true
        check: 1
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(vendorTemplate), opencl.Types)
	require.NoError(t, err)

	assert.Equal(t, "opencl", c.Package, "package defaults to the binding package")
	assert.Equal(t, "cl_vendor_query", c.CapName("CL"))
	assert.Equal(t, []api.Constant{
		{Name: "QUERY_SPEED_VENDOR", Value: 0x4001},
		{Name: "QUERY_ERROR_VENDOR", Value: -1100, Decimal: true},
	}, c.Constants())

	require.Len(t, c.Functions, 1)
	fn := c.Functions[0]
	assert.Equal(t, "clQueryVENDOR", fn.NativeName())
	assert.Equal(t, "uint32", fn.Param("param_name").Type.Go)
	assert.Equal(t, []api.PointerMapping{api.DataInt, api.DataFloat}, fn.Param("param_value").MultiTypes)
	assert.Equal(t, api.Out, fn.Param("param_value_size_ret").Dir)
	assert.Equal(t, 1, fn.Param("param_value_size_ret").CheckCount)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "class: X\ntemplate: x\nbinding: CL\nprefix: CL\nbogus: 1\n", "decoding template"},
		{"unknown binding", "class: X\ntemplate: x\nbinding: GL\nprefix: GL\n", "unknown binding"},
		{"unknown type", "class: X\ntemplate: x\nbinding: CL\nprefix: CL\nfunctions:\n  - name: F\n    returns: cl_half\n", "unknown native type \"cl_half\""},
		{"bad direction", "class: X\ntemplate: x\nbinding: CL\nprefix: CL\nfunctions:\n  - name: F\n    returns: cl_int\n    params:\n      - name: p\n        type: cl_int\n        dir: sideways\n", "unknown direction"},
		{"invalid class", "class: X\ntemplate: x\nbinding: CL\nprefix: CL\nconstants:\n  - values:\n      - {name: A, value: 1}\n      - {name: A, value: 2}\n", "duplicate constant A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), opencl.Types)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeLoad(t *testing.T) {
	orig := Builtin()["CL"].Class("apple_gl_sharing")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, orig))

	c, err := Load(&buf, nil)
	require.NoError(t, err)

	assert.Equal(t, orig.Constants(), c.Constants())
	require.Len(t, c.Functions, 1)
	assert.Equal(t, orig.Functions[0].NativeName(), c.Functions[0].NativeName())
	for i, p := range orig.Functions[0].Params {
		got := c.Functions[0].Params[i]
		assert.Equal(t, p.Type, got.Type)
		assert.Equal(t, p.Dir, got.Dir)
		assert.Equal(t, p.Nullable, got.Nullable)
		assert.Equal(t, p.MultiTypes, got.MultiTypes)
		assert.Equal(t, p.AutoSizeFor, got.AutoSizeFor)
	}
}
