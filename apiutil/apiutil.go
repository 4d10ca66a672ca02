// Package apiutil is the runtime support imported by generated bindings.
package apiutil

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"
)

// ErrFunctionNotAvailable is raised when a checked entry point was not
// resolved.
var ErrFunctionNotAvailable = errors.New("function is not available")

// FunctionProvider resolves global entry points of a native library.
type FunctionProvider interface {
	FunctionAddress(name string) uintptr
}

// FunctionProviderLocal additionally resolves entry points local to a native
// handle, such as an OpenAL device or an OpenCL platform.
type FunctionProviderLocal interface {
	FunctionProvider
	FunctionAddressLocal(handle uintptr, name string) uintptr
}

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for API diagnostics. A nil logger
// restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger used for API diagnostics.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// CheckFunctions reports whether every address is non-zero.
func CheckFunctions(addrs ...uintptr) bool {
	for _, addr := range addrs {
		if addr == 0 {
			return false
		}
	}
	return true
}

// CheckFunctionAddress panics when addr is zero. Calling through a null
// function pointer would crash the process anyway.
func CheckFunctionAddress(name string, addr uintptr) uintptr {
	if addr == 0 {
		panic(fmt.Errorf("%w: %s", ErrFunctionNotAvailable, name))
	}
	return addr
}

// CheckExtension returns supported. When the extension was reported as
// available but supported is false, a single warning is logged.
func CheckExtension(api, extension string, supported bool) bool {
	if supported {
		return true
	}

	Logger().Warn(fmt.Sprintf("[%s] %s was reported as available but an entry point is missing.", api, extension),
		"api", api,
		"extension", extension,
	)
	return false
}

// Data is the set of element types a data pointer may address.
type Data interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~uintptr | ~float32 | ~float64
}

// SlicePointer returns the address of the first element of s, or nil when s
// is empty.
func SlicePointer[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(s))
}

// ByteSize returns the size of s in bytes.
func ByteSize[T any](s []T) uint64 {
	var zero T
	return uint64(len(s)) * uint64(unsafe.Sizeof(zero))
}
