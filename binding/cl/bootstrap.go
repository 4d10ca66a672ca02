package cl

import (
	"io"
	"text/template"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/binding"
)

// bootstrapFunctions are the entry points CreateCapabilities calls before any
// capabilities are installed.
var bootstrapFunctions = []string{"clGetPlatformInfo", "clGetDeviceIDs", "clGetDeviceInfo"}

var bootstrapConstants = []string{
	"CL_SUCCESS",
	"CL_DEVICE_NOT_FOUND",
	"CL_PLATFORM_VERSION",
	"CL_PLATFORM_EXTENSIONS",
	"CL_DEVICE_TYPE_ALL",
	"CL_DEVICE_EXTENSIONS",
}

// stateFields are set by CreateCapabilities only.
var stateFields = []binding.Field{
	{Name: "Platform", Type: "uintptr", Doc: "is the platform the capabilities were created for."},
	{Name: "MajorVersion", Type: "int", Doc: "is the major OpenCL version of the platform."},
	{Name: "MinorVersion", Type: "int", Doc: "is the minor OpenCL version of the platform."},
}

const bootstrapTemplate = `
// ErrNoDevices is returned by CreateCapabilities for a platform without
// devices.
var ErrNoDevices = errors.New("{{.Package}}: platform has no devices")

// CreateCapabilities detects the capabilities of platform. The extension set
// is the union of the platform extensions and the extensions of every device,
// plus the core versions implied by the platform version.
func CreateCapabilities(provider apiutil.FunctionProviderLocal, platform uintptr) (*{{.Capabilities}}, error) {
	getPlatformInfo := provider.FunctionAddress("clGetPlatformInfo")
	getDeviceIDs := provider.FunctionAddress("clGetDeviceIDs")
	getDeviceInfo := provider.FunctionAddress("clGetDeviceInfo")
	if !apiutil.CheckFunctions(getPlatformInfo, getDeviceIDs, getDeviceInfo) {
		return nil, fmt.Errorf("%w: a core OpenCL function is missing", apiutil.ErrFunctionNotAvailable)
	}

	ext := mapset.NewSet[string]()

	extensions, err := infoString("clGetPlatformInfo", cifGetPlatformInfo(), getPlatformInfo, platform, CL_PLATFORM_EXTENSIONS)
	if err != nil {
		return nil, err
	}
	apiutil.AddExtensions(extensions, ext)

	devices, err := deviceIDs(getDeviceIDs, platform)
	if err != nil {
		return nil, err
	}
	for _, device := range devices {
		extensions, err := infoString("clGetDeviceInfo", cifGetDeviceInfo(), getDeviceInfo, device, CL_DEVICE_EXTENSIONS)
		if err != nil {
			return nil, err
		}
		apiutil.AddExtensions(extensions, ext)
	}

	version, err := infoString("clGetPlatformInfo", cifGetPlatformInfo(), getPlatformInfo, platform, CL_PLATFORM_VERSION)
	if err != nil {
		return nil, err
	}
	major, minor, err := apiutil.ParseCLVersion(version)
	if err != nil {
		return nil, err
	}
	apiutil.AddCLVersions(major, minor, ext)

	caps := New{{.Capabilities}}(provider, platform, ext)
	caps.Platform = platform
	caps.MajorVersion = major
	caps.MinorVersion = minor

	return caps, nil
}

func callCL(cif *ffi.Cif, fn uintptr, args ...unsafe.Pointer) int32 {
	var ret ffi.Arg
	ffi.Call(cif, fn, unsafe.Pointer(&ret), args...)
	return int32(ret)
}

// infoString reads a string valued query of clGetPlatformInfo or
// clGetDeviceInfo, asking for the size first.
func infoString(name string, cif *ffi.Cif, fn uintptr, handle uintptr, param uint32) (string, error) {
	var (
		size    uint64
		value   unsafe.Pointer
		sizeRet = &size
	)
	if code := callCL(cif, fn, unsafe.Pointer(&handle), unsafe.Pointer(&param), unsafe.Pointer(&size), unsafe.Pointer(&value), unsafe.Pointer(&sizeRet)); code != CL_SUCCESS {
		return "", fmt.Errorf("%s failed with error %d", name, code)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, size)
	value = unsafe.Pointer(&buf[0])
	sizeRet = nil
	if code := callCL(cif, fn, unsafe.Pointer(&handle), unsafe.Pointer(&param), unsafe.Pointer(&size), unsafe.Pointer(&value), unsafe.Pointer(&sizeRet)); code != CL_SUCCESS {
		return "", fmt.Errorf("%s failed with error %d", name, code)
	}

	return unix.ByteSliceToString(buf), nil
}

func deviceIDs(fn uintptr, platform uintptr) ([]uintptr, error) {
	var (
		deviceType = uint64(CL_DEVICE_TYPE_ALL)
		numEntries uint32
		devices    *uintptr
		count      uint32
		countRet   = &count
	)
	code := callCL(cifGetDeviceIDs(), fn, unsafe.Pointer(&platform), unsafe.Pointer(&deviceType), unsafe.Pointer(&numEntries), unsafe.Pointer(&devices), unsafe.Pointer(&countRet))
	switch {
	case code == CL_DEVICE_NOT_FOUND, code == CL_SUCCESS && count == 0:
		return nil, ErrNoDevices
	case code != CL_SUCCESS:
		return nil, fmt.Errorf("clGetDeviceIDs failed with error %d", code)
	}

	ids := make([]uintptr, count)
	numEntries = count
	devices = &ids[0]
	countRet = nil
	if code := callCL(cifGetDeviceIDs(), fn, unsafe.Pointer(&platform), unsafe.Pointer(&deviceType), unsafe.Pointer(&numEntries), unsafe.Pointer(&devices), unsafe.Pointer(&countRet)); code != CL_SUCCESS {
		return nil, fmt.Errorf("clGetDeviceIDs failed with error %d", code)
	}

	return ids, nil
}
`

var bootstrap = template.Must(template.New("bootstrap").Parse(bootstrapTemplate))

// canBootstrap reports whether the core classes declare every function and
// constant CreateCapabilities relies on.
func canBootstrap(b binding.Binding, classes []*api.NativeClass) bool {
	names := make(map[string]bool)
	for _, c := range classes {
		if !b.IsCore(c) {
			continue
		}
		for _, fn := range c.Functions {
			names[fn.NativeName()] = true
		}
		for _, k := range c.Constants() {
			names[c.ConstantPrefix()+k.Name] = true
		}
	}

	for _, list := range [][]string{bootstrapFunctions, bootstrapConstants} {
		for _, name := range list {
			if !names[name] {
				return false
			}
		}
	}
	return true
}

func writeBootstrap(w io.Writer, b binding.Binding) error {
	return bootstrap.Execute(w, struct {
		Package      string
		Capabilities string
	}{
		Package:      b.Package(),
		Capabilities: b.CapabilitiesName(),
	})
}
