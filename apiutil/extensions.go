package apiutil

import (
	"fmt"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ParseExtensions splits a space separated extension string into a set.
func ParseExtensions(s string) mapset.Set[string] {
	set := mapset.NewSet[string]()
	AddExtensions(s, set)
	return set
}

// AddExtensions adds every extension named in s to set.
func AddExtensions(s string, set mapset.Set[string]) {
	for _, ext := range strings.Fields(s) {
		set.Add(ext)
	}
}

// ParseCLVersion extracts the major and minor version from an OpenCL
// platform version string of the form "OpenCL <major>.<minor> <vendor>".
func ParseCLVersion(version string) (major, minor int, err error) {
	const prefix = "OpenCL "

	malformed := func(cause error) error {
		return fmt.Errorf("the platform major and/or minor OpenCL version %q is malformed: %w", version, cause)
	}

	if !strings.HasPrefix(version, prefix) {
		return 0, 0, malformed(fmt.Errorf("missing %q prefix", prefix))
	}

	fields := strings.FieldsFunc(version[len(prefix):], func(r rune) bool {
		return r == '.' || r == ' '
	})
	if len(fields) < 2 {
		return 0, 0, malformed(fmt.Errorf("expected <major>.<minor>"))
	}

	if major, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, malformed(err)
	}
	if minor, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, malformed(err)
	}

	return major, minor, nil
}

// AddCLVersions adds the OpenCL core capability names implied by the
// platform version. It must run after the platform and device extensions
// were added, since GL interop is detected from them.
func AddCLVersions(major, minor int, set mapset.Set[string]) {
	interopGL := set.Contains("cl_khr_gl_sharing") || set.Contains("cl_apple_gl_sharing")

	set.Add("OpenCL10")
	if interopGL {
		set.Add("OpenCL10GL")
	}

	if 1 < major || 1 <= minor {
		set.Add("OpenCL11")
	}
	if 1 < major || 2 <= minor {
		set.Add("OpenCL12")
		if interopGL {
			set.Add("OpenCL12GL")
		}
	}
}
