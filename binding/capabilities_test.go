package binding

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/apiutil"
)

var tVoid = api.Type{Name: "void", Go: "", FFI: "&ffi.TypeVoid", Kind: api.Void}

type fakeBinding struct {
	name string
}

func (f fakeBinding) Name() string {
	return f.name
}

func (fakeBinding) Package() string {
	return "fake"
}

func (fakeBinding) CapabilitiesName() string {
	return "FakeCapabilities"
}

func (fakeBinding) Documentation() string {
	return "Defines fake capabilities."
}

func (fakeBinding) Handle() string {
	return "device"
}

func (fakeBinding) Library() Library {
	return Library{}
}

func (fakeBinding) IsCore(c *api.NativeClass) bool {
	return strings.HasPrefix(c.TemplateName, "FK")
}

func (fakeBinding) CapName(c *api.NativeClass) string {
	return c.CapName("FK")
}

func (f fakeBinding) CapabilityField(c *api.NativeClass) string {
	return f.CapName(c)
}

func (fakeBinding) HasAddressTable(c *api.NativeClass) bool {
	return c.HasNativeFunctions() && c.Prefix == "FK"
}

func (fakeBinding) ShouldCheckFunctionAddress(*api.Function) bool {
	return true
}

func (fakeBinding) GenerateFunctionAddress(io.Writer, *api.Function) {}

func (fakeBinding) GenerateFunctionSetup(io.Writer, *api.NativeClass) {}

func (fakeBinding) GenerateCapabilities(io.Writer, []*api.NativeClass) error {
	return nil
}

func class(template string, prefix string, funcs ...string) *api.NativeClass {
	c := api.NewClass("fake", strings.ReplaceAll(template, "_", ""), template, api.WithPrefix(prefix))
	for _, name := range funcs {
		c.Func(tVoid, name, "")
	}
	return c
}

func templateNames(classes []*api.NativeClass) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.TemplateName
	}
	return out
}

func nativeNames(fns []*api.Function) []string {
	out := make([]string, len(fns))
	for i, fn := range fns {
		out[i] = fn.NativeName()
	}
	return out
}

func TestSortClasses(t *testing.T) {
	b := fakeBinding{name: "FK"}
	classes := []*api.NativeClass{
		class("zeta_ext", "FK"),
		class("FK11", "FK"),
		class("Alpha_ext", "FK"),
		class("beta_ext", "FK"),
		class("FK10", "FK"),
		class("ALPHA_EXT2", "FK"),
	}

	sorted := SortClasses(classes, b.IsCore)

	assert.Equal(t, []string{"FK10", "FK11", "Alpha_ext", "ALPHA_EXT2", "beta_ext", "zeta_ext"}, templateNames(sorted))
	assert.Equal(t, "zeta_ext", classes[0].TemplateName, "input must not be reordered")
}

func TestAddressTable(t *testing.T) {
	b := fakeBinding{name: "FK"}
	first := class("FK10", "FK", "Open", "Close")
	second := class("dup_ext", "FK", "Close", "Pause")
	foreign := class("other", "XX", "Foreign")
	empty := class("empty_ext", "FK")

	table := AddressTable([]*api.NativeClass{first, second, foreign, empty}, b.HasAddressTable)

	assert.Equal(t, []string{"fkClose", "fkOpen", "fkPause"}, nativeNames(table))
	assert.Same(t, first, table[0].Class, "first declaration wins")
}

func TestNewCapabilities(t *testing.T) {
	b := fakeBinding{name: "FK"}
	classes := []*api.NativeClass{
		class("pause_ext", "FK", "Pause"),
		class("FK10", "FK", "Open"),
		class("flag_ext", "FK"),
	}

	caps, err := NewCapabilities(b, classes)
	require.NoError(t, err)

	require.Len(t, caps.Flags, 3)
	assert.Equal(t, "OpenFK10", caps.Flags[0].CapName)
	assert.Equal(t, "FK_flag_ext", caps.Flags[1].CapName)
	assert.Empty(t, caps.Flags[1].Functions)
	assert.Equal(t, "FK_pause_ext", caps.Flags[2].CapName)
	assert.Len(t, caps.Flags[2].Functions, 1)

	_, err = NewCapabilities(b, []*api.NativeClass{class("a_ext", "FK"), class("a_ext", "FK")})
	assert.ErrorContains(t, err, "share capability field FK_a_ext")
}

func TestEvaluate(t *testing.T) {
	var buf bytes.Buffer
	apiutil.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { apiutil.SetLogger(nil) })

	b := fakeBinding{name: "FK"}
	caps, err := NewCapabilities(b, []*api.NativeClass{
		class("FK10", "FK", "Open"),
		class("pause_ext", "FK", "Pause", "Resume"),
		class("flag_ext", "FK"),
		class("absent_ext", "FK", "Absent"),
	})
	require.NoError(t, err)

	missing := map[string]bool{"fkResume": true, "fkAbsent": true}
	lookup := func(fn *api.Function) uintptr {
		if missing[fn.NativeName()] {
			return 0
		}
		return 0x1000
	}

	got := caps.Evaluate(mapset.NewSet("OpenFK10", "FK_pause_ext", "FK_flag_ext"), lookup)

	assert.Equal(t, map[string]bool{
		"OpenFK10":      true,
		"FK_pause_ext":  false,
		"FK_flag_ext":   true,
		"FK_absent_ext": false,
	}, got)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "only the advertised extension with a missing entry point logs")
	assert.Contains(t, lines[0], "[FK] FK_pause_ext was reported as available but an entry point is missing.")
}

func TestWriteCapabilities(t *testing.T) {
	b := fakeBinding{name: "FK"}
	caps, err := NewCapabilities(b, []*api.NativeClass{
		class("pause_ext", "FK", "Pause"),
		class("FK10", "FK", "Open", "Close"),
		class("flag_ext", "FK"),
	})
	require.NoError(t, err)
	caps.Fields = []Field{{Name: "Device", Type: "uintptr", Doc: "is the device."}}

	var buf bytes.Buffer
	WriteCapabilities(&buf, caps)
	out := buf.String()

	assert.Contains(t, out, "// FakeCapabilities defines fake capabilities.\ntype FakeCapabilities struct {\n")
	assert.Contains(t, out, "struct {\n\t// Device is the device.\n\tDevice uintptr\n\n\tFkClose,\n")
	assert.Contains(t, out, "\tFkClose,\n\tFkOpen,\n\tFkPause uintptr\n")
	assert.Contains(t, out, "\t// OpenFK10 is true when FK10 is supported.\n\tOpenFK10 bool\n")
	assert.Contains(t, out, "func NewFakeCapabilities(provider apiutil.FunctionProviderLocal, device uintptr, ext mapset.Set[string]) *FakeCapabilities {")
	assert.Contains(t, out, "\tcaps.FkOpen = provider.FunctionAddress(\"fkOpen\")\n")
	assert.Contains(t, out, "\tcaps.FkPause = provider.FunctionAddressLocal(device, \"fkPause\")\n")
	assert.Contains(t, out, "\tcaps.OpenFK10 = ext.Contains(\"OpenFK10\") && apiutil.CheckExtension(\"FK\", \"OpenFK10\", isAvailableFK10(caps))\n")
	assert.Contains(t, out, "\tcaps.FK_flag_ext = ext.Contains(\"FK_flag_ext\")\n")
	assert.Contains(t, out, "var icd atomic.Pointer[FakeCapabilities]")
	assert.Contains(t, out, "panic(\"fake: no FakeCapabilities installed, call SetICD first\")")

	assert.Less(t, strings.Index(out, "OpenFK10 bool"), strings.Index(out, "FK_flag_ext bool"), "core flags come first")
}

func TestWriteFunctionSetup(t *testing.T) {
	var buf bytes.Buffer
	WriteFunctionSetup(&buf, "FakeCapabilities", class("pause_ext", "FK", "Pause", "Resume"))

	assert.Equal(t, "\nfunc isAvailablepauseext(caps *FakeCapabilities) bool {\n\treturn apiutil.CheckFunctions(caps.FkPause, caps.FkResume)\n}\n", buf.String())
}

func TestRegistry(t *testing.T) {
	b := Register(fakeBinding{name: "FAKE_REGISTRY"})

	got, err := Lookup("FAKE_REGISTRY")
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.Contains(t, Names(), "FAKE_REGISTRY")

	_, err = Lookup("NOPE")
	assert.True(t, errors.Is(err, ErrUnknownBinding))

	assert.Panics(t, func() { Register(fakeBinding{name: "FAKE_REGISTRY"}) })
}

func TestLibraryFileName(t *testing.T) {
	lib := Library{Names: map[string]string{"linux": "liba.so.1", "": "liba.so"}}

	assert.Equal(t, "liba.so.1", lib.FileName("linux"))
	assert.Equal(t, "liba.so", lib.FileName("plan9"))
}

func TestCapitalise(t *testing.T) {
	assert.Equal(t, "AlcOpenDevice", Capitalise("alcOpenDevice"))
	assert.Equal(t, "X", Capitalise("__x"))
	assert.Equal(t, "", Capitalise("___"))
}
