package openal

import (
	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding/alc"
)

var (
	alcBoolean = api.Type{Name: "ALCboolean", Go: "bool", FFI: "&ffi.TypeUint8", Kind: api.Value}
	alcEnum    = api.Type{Name: "ALCenum", Go: "int32", FFI: "&ffi.TypeSint32", Kind: api.Value}
	alcInt     = api.Type{Name: "ALCint", Go: "int32", FFI: "&ffi.TypeSint32", Kind: api.Value}
	alcUint    = api.Type{Name: "ALCuint", Go: "uint32", FFI: "&ffi.TypeUint32", Kind: api.Value}
	alcSizei   = api.Type{Name: "ALCsizei", Go: "int32", FFI: "&ffi.TypeSint32", Kind: api.Value}
	alcVoid    = api.Type{Name: "ALCvoid", Go: "", FFI: "&ffi.TypeVoid", Kind: api.Void}

	alcDeviceP  = api.Type{Name: "ALCdevice *", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}
	alcContextP = api.Type{Name: "ALCcontext *", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}

	alcCharP = api.Type{Name: "const ALCchar *", Go: "string", FFI: "&ffi.TypePointer", Kind: api.String}
	alcIntP  = api.Type{Name: "ALCint *", Go: "*int32", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	alcVoidP = api.Type{Name: "ALCvoid *", Go: "unsafe.Pointer", FFI: "&ffi.TypePointer", Kind: api.Pointer}
	opaqueP  = api.Type{Name: "void *", Go: "uintptr", FFI: "&ffi.TypePointer", Kind: api.Opaque}
)

// Types resolves the OpenAL type names used by serialized templates.
var Types = api.NewTypeSet(
	alcBoolean, alcEnum, alcInt, alcUint, alcSizei, alcVoid,
	alcDeviceP, alcContextP,
	alcCharP, alcIntP, alcVoidP, opaqueP,
)

// nativeClassALC declares a class generated by the ALC binding.
func nativeClassALC(className, templateName string, opts ...api.ClassOption) *api.NativeClass {
	opts = append([]api.ClassOption{
		api.WithPrefix("ALC"),
		api.WithPrefixTemplate("ALC"),
		api.WithBinding(alc.Binding.Name()),
	}, opts...)

	return api.NewClass(alc.Package, className, templateName, opts...)
}
