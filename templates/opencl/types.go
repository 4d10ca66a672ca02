package opencl

import (
	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding/cl"
)

var (
	clInt            = api.Type{Name: "cl_int", Go: "int32", FFI: "&ffi.TypeSint32", Kind: api.Value}
	clUint           = api.Type{Name: "cl_uint", Go: "uint32", FFI: "&ffi.TypeUint32", Kind: api.Value}
	clDeviceType     = api.Type{Name: "cl_device_type", Go: "uint64", FFI: "&ffi.TypeUint64", Kind: api.Value}
	clPlatformInfo   = api.Type{Name: "cl_platform_info", Go: "uint32", FFI: "&ffi.TypeUint32", Kind: api.Value}
	clDeviceInfo     = api.Type{Name: "cl_device_info", Go: "uint32", FFI: "&ffi.TypeUint32", Kind: api.Value}
	clGLPlatformInfo = api.Type{Name: "cl_gl_platform_info", Go: "uint32", FFI: "&ffi.TypeUint32", Kind: api.Value}
	sizeT            = api.Type{Name: "size_t", Go: "uint64", FFI: "&ffi.TypeUint64", Kind: api.Value}

	clContext    = api.Type{Name: "cl_context", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}
	clPlatformID = api.Type{Name: "cl_platform_id", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}
	clDeviceID   = api.Type{Name: "cl_device_id", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}

	clUintP       = api.Type{Name: "cl_uint *", Go: "*uint32", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	clPlatformIDP = api.Type{Name: "cl_platform_id *", Go: "*uintptr", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	clDeviceIDP   = api.Type{Name: "cl_device_id *", Go: "*uintptr", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	sizeTP        = api.Type{Name: "size_t *", Go: "*uint64", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	voidptr       = api.Type{Name: "void *", Go: "unsafe.Pointer", FFI: "&ffi.TypePointer", Kind: api.Pointer}
)

// Types resolves the OpenCL type names used by serialized templates.
var Types = api.NewTypeSet(
	clInt, clUint, clDeviceType, clPlatformInfo, clDeviceInfo, clGLPlatformInfo, sizeT,
	clContext, clPlatformID, clDeviceID,
	clUintP, clPlatformIDP, clDeviceIDP, sizeTP, voidptr,
)

// nativeClassCL declares an extension class. Extension names are built from
// the lower case cl prefix.
func nativeClassCL(className, templateName, postfix string) *api.NativeClass {
	return api.NewClass(cl.Package, className, templateName,
		api.WithPrefix("CL"),
		api.WithPrefixTemplate("cl"),
		api.WithPostfix(postfix),
		api.WithBinding(cl.Binding.Name()),
	)
}

// nativeClassCLCore declares a core version class such as CL10.
func nativeClassCLCore(templateName string) *api.NativeClass {
	return api.NewClass(cl.Package, templateName, templateName,
		api.WithPrefix("CL"),
		api.WithBinding(cl.Binding.Name()),
	)
}

func paramValueSize() *api.Parameter {
	return sizeT.IN("param_value_size", "the size in bytes of memory pointed to by param_value").AutoSize("param_value")
}

func paramValueSizeRet() *api.Parameter {
	return sizeTP.OUT("param_value_size_ret", "the actual size in bytes of data being queried by param_value. If nil, it is ignored.").Null().Check(1)
}
