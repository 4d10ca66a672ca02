package generator

import (
	"bytes"
	"sort"
	"text/template"
)

const loaderTemplate = `// Code generated by bindgen. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
	"path/filepath"
	"runtime"
	"unsafe"

	"github.com/jupiterrider/ffi"
	"golang.org/x/sys/unix"

	apiutil "{{.Runtime}}"
)

// Library is a loaded {{.Name}} implementation. It resolves the entry points
// stored in {{.Capabilities}}.
type Library struct {
	lib   ffi.Lib
	local uintptr
}

var _ apiutil.FunctionProviderLocal = (*Library)(nil)

// Load opens the {{.Name}} library found in path. An empty path searches the
// system library path.
func Load(path string) (*Library, error) {
	lib, err := ffi.Load(getLibraryPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	l := Library{lib: lib}
	{{- if .LocalLookup}}
	l.local = l.FunctionAddress("{{.LocalLookup}}")
	{{- end}}

	return &l, nil
}

// FunctionAddress returns the address of an exported symbol, or 0 when the
// library does not export it.
func (l *Library) FunctionAddress(name string) uintptr {
	addr, err := l.lib.Get(name)
	if err != nil {
		apiutil.Logger().Debug("failed to locate address for {{.Name}} function", "function", name)
		return 0
	}
	return addr
}

// FunctionAddressLocal returns the address of name as seen by handle.
func (l *Library) FunctionAddressLocal(handle uintptr, name string) uintptr {
	if l.local == 0 {
		return l.FunctionAddress(name)
	}

	cname, err := unix.BytePtrFromString(name)
	if err != nil {
		return 0
	}

	var cif ffi.Cif
	if status := ffi.PrepCif(&cif, ffi.DefaultAbi, 2, &ffi.TypePointer, &ffi.TypePointer, &ffi.TypePointer); status != ffi.OK {
		return 0
	}

	var addr uintptr
	ffi.Call(&cif, l.local, unsafe.Pointer(&addr), unsafe.Pointer(&handle), unsafe.Pointer(&cname))
	if addr == 0 {
		apiutil.Logger().Debug("failed to locate address for {{.Name}} function", "function", name, "handle", handle)
	}
	return addr
}

// Close releases the library.
func (l *Library) Close() error {
	return l.lib.Close()
}

func getLibraryPath(basePath string) string {
	var filename string
	switch runtime.GOOS {
	{{- range .Libraries}}
	case "{{.GOOS}}":
		filename = "{{.File}}"
	{{- end}}
	default:
		filename = "{{.Default}}"
	}
	if basePath == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(basePath, filename)
}
`

var loader = template.Must(template.New("loader").Parse(loaderTemplate))

type libraryFile struct {
	GOOS string
	File string
}

func (g *Generator) generateLoader() (string, error) {
	lib := g.binding.Library()

	var files []libraryFile
	for goos, file := range lib.Names {
		if goos != "" {
			files = append(files, libraryFile{GOOS: goos, File: file})
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].GOOS < files[j].GOOS
	})

	var buf bytes.Buffer
	err := loader.Execute(&buf, map[string]any{
		"Package":      g.binding.Package(),
		"Name":         g.binding.Name(),
		"Capabilities": g.binding.CapabilitiesName(),
		"Runtime":      g.runtime,
		"Libraries":    files,
		"Default":      lib.FileName(""),
		"LocalLookup":  lib.LocalLookup,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
