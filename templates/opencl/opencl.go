// Package opencl holds the OpenCL templates.
package opencl

import "github.com/ardanlabs/bindgen/api"

// Classes returns a fresh copy of every OpenCL class.
func Classes() []*api.NativeClass {
	return []*api.NativeClass{
		cl10(),
		appleGLSharing(),
	}
}
