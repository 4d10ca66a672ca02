package generator

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/templates"
)

// stubSources declare the part of the third-party API generated code calls,
// with the signatures of the real packages.
var stubSources = map[string]string{
	"github.com/jupiterrider/ffi": `package ffi

import "unsafe"

type Abi uint32

const DefaultAbi Abi = 2

type Status uint32

const OK Status = 0

type Arg uint64

func (a Arg) Bool() bool { return a != 0 }

type Type struct {
	Size      uint64
	Alignment uint16
	Type      uint16
	Elements  **Type
}

var (
	TypeVoid, TypePointer  Type
	TypeUint8, TypeSint8   Type
	TypeUint16, TypeSint16 Type
	TypeUint32, TypeSint32 Type
	TypeUint64, TypeSint64 Type
	TypeFloat, TypeDouble  Type
)

type Cif struct {
	Abi      uint32
	NArgs    uint32
	ArgTypes **Type
	RType    *Type
	Bytes    uint32
	Flags    uint32
}

func PrepCif(cif *Cif, abi Abi, nArgs uint32, rType *Type, aTypes ...*Type) Status { return OK }

func Call(cif *Cif, fn uintptr, rValue unsafe.Pointer, aValues ...unsafe.Pointer) {}

type Lib struct {
	Addr uintptr
}

func Load(name string) (l Lib, err error) { return }

func (l Lib) Get(name string) (addr uintptr, err error) { return }

func (l Lib) Close() error { return nil }
`,
	"golang.org/x/sys/unix": `package unix

func BytePtrFromString(s string) (*byte, error) { return nil, nil }

func BytePtrToString(p *byte) string { return "" }

func ByteSliceToString(s []byte) string { return "" }
`,
	"github.com/deckarep/golang-set/v2": `package mapset

type Set[T comparable] interface {
	Add(val T) bool
	Contains(val ...T) bool
	Cardinality() int
	ToSlice() []T
}

func NewSet[T comparable](vals ...T) Set[T] { return nil }
`,
}

// sourceImporter type-checks stubSources and the runtime support package
// from source, deferring to the default importer for the standard library.
type sourceImporter struct {
	fset  *token.FileSet
	std   types.Importer
	cache map[string]*types.Package
}

func newSourceImporter() *sourceImporter {
	return &sourceImporter{
		fset:  token.NewFileSet(),
		std:   importer.Default(),
		cache: make(map[string]*types.Package),
	}
}

func (imp *sourceImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := imp.cache[path]; ok {
		return pkg, nil
	}

	var files []*ast.File
	switch {
	case stubSources[path] != "":
		f, err := parser.ParseFile(imp.fset, path+"/stub.go", stubSources[path], 0)
		if err != nil {
			return nil, err
		}
		files = append(files, f)

	case path == DefaultRuntime:
		names, err := filepath.Glob(filepath.Join("..", "apiutil", "*.go"))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			src, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			f, err := parser.ParseFile(imp.fset, name, src, 0)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}

	default:
		return imp.std.Import(path)
	}

	pkg, err := imp.check(path, files)
	if err != nil {
		return nil, err
	}
	imp.cache[path] = pkg
	return pkg, nil
}

func (imp *sourceImporter) check(path string, files []*ast.File) (*types.Package, error) {
	conf := types.Config{Importer: imp}
	return conf.Check(path, imp.fset, files, nil)
}

func typeCheck(t *testing.T, pkgPath string, files map[string]string) {
	t.Helper()

	imp := newSourceImporter()

	names := keys(files)
	sort.Strings(names)

	parsed := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parser.ParseFile(imp.fset, name, files[name], parser.ParseComments)
		require.NoError(t, err, name)
		parsed = append(parsed, f)
	}

	var errs []string
	conf := types.Config{
		Importer: imp,
		Error: func(err error) {
			errs = append(errs, err.Error())
		},
	}
	conf.Check(pkgPath, imp.fset, parsed, nil)
	require.Empty(t, errs)
}

func TestGeneratedPackagesTypeCheck(t *testing.T) {
	for _, name := range []string{"ALC", "CL"} {
		t.Run(name, func(t *testing.T) {
			files := generate(t, name)
			typeCheck(t, "example.com/gen/"+strings.ToLower(name), files)
		})
	}
}

func TestGeneratedExtensionOnlyTypeCheck(t *testing.T) {
	target := templates.Builtin()["CL"]
	require.NotNil(t, target)

	var classes []*api.NativeClass
	for _, c := range target.Classes {
		if !target.Binding.IsCore(c) {
			classes = append(classes, c)
		}
	}
	require.NotEmpty(t, classes)

	files, err := New(target.Binding, classes).Generate()
	require.NoError(t, err)
	require.NotContains(t, files["cl_capabilities.go"], "CreateCapabilities")

	typeCheck(t, "example.com/gen/opencl", files)
}
