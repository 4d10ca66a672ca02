package opencl

import "github.com/ardanlabs/bindgen/api"

func appleGLSharing() *api.NativeClass {
	c := nativeClassCL("APPLEGLSharing", "apple_gl_sharing", "APPLE")

	c.NativeImport("OpenCL.h")

	c.Documentation("Native bindings to the cl_apple_gl_sharing extension.")

	c.IntConstantBlock(
		"Error code returned by [GetGLContextInfoAPPLE] if an invalid platform_gl_ctx is provided.",

		api.IntConstant("INVALID_GL_CONTEXT_APPLE", -1000),
	)

	c.IntConstantBlock(`
		This enumerated value can be specified as part of the properties argument passed to clCreateContext to allow
		OpenCL compliant devices in an existing CGL share group to be used as the devices in the newly created CL
		context. GL objects that were allocated in the given CGL share group can now be shared between CL and GL.
		`,

		api.IntConstant("CONTEXT_PROPERTY_USE_CGL_SHAREGROUP_APPLE", 0x10000000),
	)

	c.IntConstantBlock(`
		Accepted as the param_name argument of [GetGLContextInfoAPPLE]. Returns an array of cl_device_ids for the CL
		device(s) corresponding to the virtual screen(s) for the given CGL context.
		`,

		api.IntConstant("CGL_DEVICES_FOR_SUPPORTED_VIRTUAL_SCREENS_APPLE", 0x10000003),
	)

	c.IntConstantBlock(`
		Accepted as the param_name argument of [GetGLContextInfoAPPLE]. Returns a cl_device_id for the CL device
		associated with the virtual screen for the given CGL context.
		`,

		api.IntConstant("CGL_DEVICE_FOR_CURRENT_VIRTUAL_SCREEN_APPLE", 0x10000002),
	)

	c.Func(clInt, "GetGLContextInfoAPPLE", `
		Provides a query mechanism to retrieve OpenGL context specific information from an OpenCL context to help
		identify device specific mappings and usage.

		For example, one possible usage would be to allow the client to map a CGL virtual screen index to an
		appropriate CL device id to insure that the rendering device and the compute device are the same, thus
		guaranteeing any shared OpenGL memory that is attached o a CL memory object remains resident on the active
		device.
		`,

		clContext.IN("context", "the context being queried"),
		voidptr.IN("platform_gl_ctx", "the OpenGL context handle"),
		clGLPlatformInfo.IN(
			"param_name",
			"a constant that specifies the GL context information to query",
			"CL_CGL_DEVICES_FOR_SUPPORTED_VIRTUAL_SCREENS_APPLE CL_CGL_DEVICE_FOR_CURRENT_VIRTUAL_SCREEN_APPLE",
		),
		paramValueSize(),
		voidptr.IN("param_value", "a pointer to memory where the appropriate result being queried is returned. If nil, it is ignored.").
			MultiType(api.DataPointer).
			Null(),
		paramValueSizeRet(),
	)

	return c
}
