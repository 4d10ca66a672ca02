package openal

import "github.com/ardanlabs/bindgen/api"

func alc10() *api.NativeClass {
	c := nativeClassALC("ALC10", "ALC10")

	c.NativeImport("alc.h")

	c.Documentation("Native bindings to ALC 1.0 functionality.")

	c.IntConstantBlock(
		"General tokens.",

		api.IntConstant("INVALID", 0xFFFFFFFF),
		api.IntConstant("FALSE", 0x0),
		api.IntConstant("TRUE", 0x1),
	)

	c.IntConstantBlock(
		"Context creation attributes.",

		api.IntConstant("FREQUENCY", 0x1007),
		api.IntConstant("REFRESH", 0x1008),
		api.IntConstant("SYNC", 0x1009),
	)

	c.IntConstantBlock(
		"Error conditions.",

		api.IntConstant("NO_ERROR", 0x0),
		api.IntConstant("INVALID_DEVICE", 0xA001),
		api.IntConstant("INVALID_CONTEXT", 0xA002),
		api.IntConstant("INVALID_ENUM", 0xA003),
		api.IntConstant("INVALID_VALUE", 0xA004),
		api.IntConstant("OUT_OF_MEMORY", 0xA005),
	)

	c.IntConstantBlock(
		"String queries.",

		api.IntConstant("DEFAULT_DEVICE_SPECIFIER", 0x1004),
		api.IntConstant("DEVICE_SPECIFIER", 0x1005),
		api.IntConstant("EXTENSIONS", 0x1006),
	)

	c.IntConstantBlock(
		"Integer queries.",

		api.IntConstant("MAJOR_VERSION", 0x1000),
		api.IntConstant("MINOR_VERSION", 0x1001),
		api.IntConstant("ATTRIBUTES_SIZE", 0x1002),
		api.IntConstant("ALL_ATTRIBUTES", 0x1003),
	)

	c.Func(alcDeviceP, "OpenDevice", `
		Allows the application to connect to a device.

		If the function returns 0, then no sound driver/device has been found.
		`,

		alcCharP.IN("deviceSpecifier", "the requested device or device configuration. An empty string selects the default device.").Null(),
	)

	c.Func(alcBoolean, "CloseDevice", "Allows the application to disconnect from a device.",
		alcDeviceP.IN("deviceHandle", "the device to close"),
	)

	c.Func(alcContextP, "CreateContext", "Creates an AL context.",
		alcDeviceP.IN("deviceHandle", "a valid device"),
		alcIntP.IN("attrList", "null or a zero terminated list of integer pairs composed of valid ALC attribute tokens and requested values").Null(),
	)

	c.Func(alcBoolean, "MakeContextCurrent", "Makes a context current with respect to OpenAL operation.",
		alcContextP.IN("context", "the context to make current"),
	)

	c.Func(alcVoid, "ProcessContext", "Signals that a context has finished suspending.",
		alcContextP.IN("context", "the context to mark for processing"),
	)

	c.Func(alcVoid, "SuspendContext", "Suspends processing on a specified context.",
		alcContextP.IN("context", "the context to mark as suspended"),
	)

	c.Func(alcVoid, "DestroyContext", "Destroys a context.",
		alcContextP.IN("context", "the context to destroy"),
	)

	c.Func(alcContextP, "GetCurrentContext", "Queries for, and obtains a handle to, the current context for the application.")

	c.Func(alcDeviceP, "GetContextsDevice", "Queries for, and obtains a handle to, the device of a given context.",
		alcContextP.IN("context", "the context to query"),
	)

	c.Func(alcBoolean, "IsExtensionPresent", "Verifies that a given extension is available for the current context and the device it is associated with.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
		alcCharP.IN("extName", "the extension name"),
	)

	c.Func(opaqueP, "GetProcAddress", "Retrieves extension entry points.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
		alcCharP.IN("funcName", "the function name"),
	)

	c.Func(alcEnum, "GetEnumValue", "Returns extension enum values.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
		alcCharP.IN("enumName", "the enum name"),
	)

	c.Func(alcEnum, "GetError", "Queries ALC errors.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
	)

	c.Func(alcCharP, "GetString", "Obtains string value(s) from ALC.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
		alcEnum.IN("token", "the information to query",
			"ALC_DEFAULT_DEVICE_SPECIFIER ALC_DEVICE_SPECIFIER ALC_EXTENSIONS"),
	)

	c.Func(alcVoid, "GetIntegerv", "Obtains integer value(s) from ALC.",
		alcDeviceP.IN("deviceHandle", "the device to query"),
		alcEnum.IN("token", "the information to query",
			"ALC_MAJOR_VERSION ALC_MINOR_VERSION ALC_ATTRIBUTES_SIZE ALC_ALL_ATTRIBUTES"),
		alcSizei.IN("size", "the size of the dest buffer").AutoSize("dest"),
		alcIntP.OUT("dest", "the destination buffer"),
	)

	return c
}
