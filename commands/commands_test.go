package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	verbose = false
	cfgFile = ""
	generateOutput = ""
	generateBindings = nil
	generateDryRun = false
	importOpts = importFlags{}
	capsOpts = capsFlags{}

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "bindgen "))

	stdout, _, err = runCmd(t, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bindings: [ALC CL]")
}

func TestList(t *testing.T) {
	stdout, _, err := runCmd(t, "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "TEMPLATE")
	assert.Regexp(t, `CL\s+apple_gl_sharing\s+APPLEGLSharing\s+cl_apple_gl_sharing\s+1`, stdout)
	assert.Regexp(t, `ALC\s+ALC10\s+\S+\s+OpenALC10\s+core`, stdout)

	stdout, _, err = runCmd(t, "ls", "CL")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "OpenALC10")

	_, _, err = runCmd(t, "list", "GL")
	assert.ErrorContains(t, err, "binding GL is not configured")
}

func TestGenerate(t *testing.T) {
	out := t.TempDir()

	stdout, _, err := runCmd(t, "generate", "-o", out)
	require.NoError(t, err)

	for _, name := range []string{
		filepath.Join("opencl", "apple_gl_sharing.go"),
		filepath.Join("opencl", "cl_capabilities.go"),
		filepath.Join("opencl", "loader.go"),
		filepath.Join("openal", "alc_capabilities.go"),
		filepath.Join("openal", "alc10.go"),
	} {
		path := filepath.Join(out, name)
		assert.FileExists(t, path)
		assert.Contains(t, stdout, "Generated: "+path)
	}

	src, err := os.ReadFile(filepath.Join(out, "opencl", "apple_gl_sharing.go"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(src, []byte("// Code generated by bindgen. DO NOT EDIT.")))
}

func TestGenerateDryRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen")

	stdout, _, err := runCmd(t, "generate", "-o", out, "--dry-run", "-b", "CL")
	require.NoError(t, err)

	assert.Contains(t, stdout, filepath.Join(out, "opencl", "apple_gl_sharing.go"))
	assert.NotContains(t, stdout, "openal")
	assert.NoDirExists(t, out)
}

func TestImportAndGenerate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "vendor_query.yaml")

	_, _, err := runCmd(t, "import", "../testdata/vendor_query.h",
		"-b", "CL", "-t", "vendor_query", "-p", "CL", "--postfix", "VENDOR",
		"-o", tmpl)
	require.NoError(t, err)
	require.FileExists(t, tmpl)

	cfg := filepath.Join(dir, "bindgen.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
output: `+filepath.Join(dir, "out")+`
targets:
  - binding: CL
    output: cl
    templates: [vendor_query.yaml]
`), 0644))

	stdout, _, err := runCmd(t, "generate", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "out", "cl", "vendor_query.go"))

	caps, err := os.ReadFile(filepath.Join(dir, "out", "cl", "cl_capabilities.go"))
	require.NoError(t, err)
	assert.Contains(t, string(caps), "cl_vendor_query")

	stdout, _, err = runCmd(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "VENDORQuery")
}

func TestImportStdout(t *testing.T) {
	stdout, stderr, err := runCmd(t, "import", "../testdata/vendor_query.h",
		"-b", "CL", "-t", "vendor_query", "-p", "CL", "--postfix", "VENDOR")
	require.NoError(t, err)

	assert.Contains(t, stdout, "template: vendor_query")
	assert.Contains(t, stdout, "prefix_template: cl")
	assert.Contains(t, stderr, "skipping variadic function")
}

func TestImportErrors(t *testing.T) {
	_, _, err := runCmd(t, "import", "../testdata/vendor_query.h", "-b", "CL", "-t", "vendor_query")
	assert.True(t, errors.Is(err, errMissingFlag))
	assert.ErrorContains(t, err, "--prefix")

	_, _, err = runCmd(t, "import", "missing.h", "-b", "CL", "-t", "x", "-p", "CL")
	assert.ErrorContains(t, err, "reading header")

	_, _, err = runCmd(t, "import", "../testdata/vendor_query.h", "-b", "GL", "-t", "x", "-p", "CL")
	assert.ErrorContains(t, err, "unknown binding")
}

func TestCaps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		warning bool
	}{
		{
			name: "supported",
			args: []string{"--version", "OpenCL 1.1 Apple", "--ext", "cl_apple_gl_sharing"},
			want: []string{`OpenCL10\s+\S+\s+\d+\s+true`, `cl_apple_gl_sharing\s+\S+\s+1\s+true`},
		},
		{
			name:    "missing entry point",
			args:    []string{"--version", "OpenCL 1.1 Apple", "--ext", "cl_apple_gl_sharing", "--missing", "clGetGLContextInfoAPPLE"},
			want:    []string{`OpenCL10\s+\S+\s+\d+\s+true`, `cl_apple_gl_sharing\s+\S+\s+1\s+false`},
			warning: true,
		},
		{
			name: "not reported",
			args: []string{"--missing", "clGetGLContextInfoAPPLE"},
			want: []string{`OpenCL10\s+\S+\s+\d+\s+false`, `cl_apple_gl_sharing\s+\S+\s+1\s+false`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCmd(t, append([]string{"caps", "-b", "CL"}, tt.args...)...)
			require.NoError(t, err)

			for _, re := range tt.want {
				assert.Regexp(t, re, stdout)
			}

			warnings := strings.Count(stderr, "[CL] cl_apple_gl_sharing was reported as available but an entry point is missing.")
			if tt.warning {
				assert.Equal(t, 1, warnings)
			} else {
				assert.Zero(t, warnings)
			}
		})
	}
}

func TestCapsErrors(t *testing.T) {
	_, _, err := runCmd(t, "caps")
	assert.True(t, errors.Is(err, errMissingFlag))

	_, _, err = runCmd(t, "caps", "-b", "ALC", "--version", "OpenCL 1.2")
	assert.ErrorContains(t, err, "--version is only supported by CL")

	_, _, err = runCmd(t, "caps", "-b", "CL", "--version", "1.2")
	assert.ErrorContains(t, err, "malformed")
}
