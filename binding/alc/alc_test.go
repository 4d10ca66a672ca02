package alc_test

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/bindgen/api"
	"github.com/ardanlabs/bindgen/apiutil"
	"github.com/ardanlabs/bindgen/binding"
	"github.com/ardanlabs/bindgen/binding/alc"
	"github.com/ardanlabs/bindgen/templates/openal"
)

func classByTemplate(t *testing.T, name string) *api.NativeClass {
	t.Helper()

	for _, c := range openal.Classes() {
		if c.TemplateName == name {
			return c
		}
	}
	t.Fatalf("no class %s", name)
	return nil
}

func TestBinding(t *testing.T) {
	b := alc.Binding

	assert.Equal(t, "ALC", b.Name())
	assert.Equal(t, "openal", b.Package())
	assert.Equal(t, "ALCCapabilities", b.CapabilitiesName())
	assert.Equal(t, "device", b.Handle())

	lib := b.Library()
	assert.Equal(t, "libopenal.so.1", lib.FileName("linux"))
	assert.Equal(t, "OpenAL32.dll", lib.FileName("windows"))
	assert.Equal(t, "libopenal.so", lib.FileName("plan9"))
	assert.Equal(t, "alcGetProcAddress", lib.LocalLookup)

	registered, err := binding.Lookup("ALC")
	require.NoError(t, err)
	assert.Equal(t, b, registered)
}

func TestClassPolicy(t *testing.T) {
	tests := []struct {
		template string
		core     bool
		capName  string
		table    bool
	}{
		{"ALC10", true, "OpenALC10", true},
		{"ALC11", true, "OpenALC11", true},
		{"ENUMERATE_ALL_EXT", false, "ALC_ENUMERATE_ALL_EXT", false},
		{"EXT_disconnect", false, "ALC_EXT_disconnect", false},
		{"SOFT_pause_device", false, "ALC_SOFT_pause_device", true},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			c := classByTemplate(t, tt.template)
			assert.Equal(t, tt.core, alc.Binding.IsCore(c))
			assert.Equal(t, tt.capName, alc.Binding.CapName(c))
			assert.Equal(t, tt.capName, alc.Binding.CapabilityField(c))
			assert.Equal(t, tt.table, alc.Binding.HasAddressTable(c))
		})
	}
}

func TestFunctionAddress(t *testing.T) {
	core := classByTemplate(t, "ALC10").Functions[0]
	pause := classByTemplate(t, "SOFT_pause_device").Functions[0]

	assert.False(t, alc.Binding.ShouldCheckFunctionAddress(core))
	assert.True(t, alc.Binding.ShouldCheckFunctionAddress(pause))

	var buf bytes.Buffer
	alc.Binding.GenerateFunctionAddress(&buf, pause)
	assert.Equal(t, "\t__fn := ICD().AlcDevicePauseSOFT\n", buf.String())

	buf.Reset()
	alc.Binding.GenerateFunctionSetup(&buf, classByTemplate(t, "SOFT_pause_device"))
	assert.Contains(t, buf.String(), "func isAvailableSOFTPauseDevice(caps *ALCCapabilities) bool {")
	assert.Contains(t, buf.String(), "apiutil.CheckFunctions(caps.AlcDevicePauseSOFT, caps.AlcDeviceResumeSOFT)")
}

func TestCapabilitiesLayout(t *testing.T) {
	caps, err := binding.NewCapabilities(alc.Binding, openal.Classes())
	require.NoError(t, err)

	var flags []string
	for _, f := range caps.Flags {
		flags = append(flags, f.CapName)
	}
	assert.Equal(t, []string{
		"OpenALC10", "OpenALC11",
		"ALC_ENUMERATE_ALL_EXT", "ALC_EXT_disconnect", "ALC_SOFT_loopback", "ALC_SOFT_pause_device",
	}, flags)

	names := make([]string, len(caps.Addresses))
	for i, fn := range caps.Addresses {
		names[i] = fn.NativeName()
		assert.True(t, strings.HasPrefix(names[i], "alc"), names[i])
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, names, 25)
	assert.Len(t, mapset.NewSet(names...).ToSlice(), len(names))
}

func TestCapabilitiesEvaluate(t *testing.T) {
	var log bytes.Buffer
	apiutil.SetLogger(slog.New(slog.NewTextHandler(&log, nil)))
	t.Cleanup(func() { apiutil.SetLogger(nil) })

	caps, err := binding.NewCapabilities(alc.Binding, openal.Classes())
	require.NoError(t, err)

	ext := apiutil.ParseExtensions("OpenALC10 ALC_EXT_disconnect ALC_SOFT_pause_device")
	resolved := func(*api.Function) uintptr { return 1 }

	got := caps.Evaluate(ext, resolved)
	assert.True(t, got["OpenALC10"])
	assert.True(t, got["ALC_EXT_disconnect"])
	assert.True(t, got["ALC_SOFT_pause_device"])
	assert.False(t, got["OpenALC11"])
	assert.False(t, got["ALC_SOFT_loopback"])
	assert.Empty(t, log.String())

	got = caps.Evaluate(ext, func(fn *api.Function) uintptr {
		if fn.NativeName() == "alcDeviceResumeSOFT" {
			return 0
		}
		return 1
	})
	assert.False(t, got["ALC_SOFT_pause_device"])
	assert.True(t, got["OpenALC10"])
	assert.Equal(t, 1, strings.Count(log.String(), "[ALC] ALC_SOFT_pause_device was reported as available but an entry point is missing."))
	assert.Equal(t, 1, strings.Count(log.String(), "\n"))
}
