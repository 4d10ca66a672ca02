package opencl

import "github.com/ardanlabs/bindgen/api"

// cl10 declares the part of OpenCL 1.0 needed to enumerate platforms and
// devices and to read their extension strings.
func cl10() *api.NativeClass {
	c := nativeClassCLCore("CL10")

	c.NativeImport("OpenCL.h")

	c.Documentation("Native bindings to the platform and device queries of OpenCL 1.0.")

	c.IntConstantBlock(
		"Error codes.",

		api.DecimalConstant("SUCCESS", 0),
		api.DecimalConstant("DEVICE_NOT_FOUND", -1),
		api.DecimalConstant("INVALID_VALUE", -30),
		api.DecimalConstant("INVALID_PLATFORM", -32),
		api.DecimalConstant("INVALID_DEVICE", -33),
	)

	c.IntConstantBlock(
		"Accepted as the param_name argument of [GetPlatformInfo].",

		api.IntConstant("PLATFORM_PROFILE", 0x0900),
		api.IntConstant("PLATFORM_VERSION", 0x0901),
		api.IntConstant("PLATFORM_NAME", 0x0902),
		api.IntConstant("PLATFORM_VENDOR", 0x0903),
		api.IntConstant("PLATFORM_EXTENSIONS", 0x0904),
	)

	c.IntConstantBlock(
		"Device types, accepted as the device_type argument of [GetDeviceIDs].",

		api.IntConstant("DEVICE_TYPE_DEFAULT", 1<<0),
		api.IntConstant("DEVICE_TYPE_CPU", 1<<1),
		api.IntConstant("DEVICE_TYPE_GPU", 1<<2),
		api.IntConstant("DEVICE_TYPE_ACCELERATOR", 1<<3),
		api.IntConstant("DEVICE_TYPE_ALL", 0xFFFFFFFF),
	)

	c.IntConstantBlock(
		"Accepted as the param_name argument of [GetDeviceInfo].",

		api.IntConstant("DEVICE_TYPE", 0x1000),
		api.IntConstant("DEVICE_VENDOR_ID", 0x1001),
		api.IntConstant("DEVICE_NAME", 0x102B),
		api.IntConstant("DEVICE_VENDOR", 0x102C),
		api.IntConstant("DRIVER_VERSION", 0x102D),
		api.IntConstant("DEVICE_PROFILE", 0x102E),
		api.IntConstant("DEVICE_VERSION", 0x102F),
		api.IntConstant("DEVICE_EXTENSIONS", 0x1030),
	)

	c.Func(clInt, "GetPlatformIDs", "Obtains the list of available platforms.",
		clUint.IN("num_entries", "the number of platform entries that can be added to platforms"),
		clPlatformIDP.OUT("platforms", "returns the list of platforms found. If nil, it is ignored.").Null(),
		clUintP.OUT("num_platforms", "returns the number of platforms available. If nil, it is ignored.").Null(),
	)

	c.Func(clInt, "GetPlatformInfo", "Returns information about the specified platform.",
		clPlatformID.IN("platform", "the platform to query"),
		clPlatformInfo.IN("param_name", "the information to query",
			"CL_PLATFORM_PROFILE CL_PLATFORM_VERSION CL_PLATFORM_NAME CL_PLATFORM_VENDOR CL_PLATFORM_EXTENSIONS"),
		paramValueSize(),
		voidptr.IN("param_value", "a pointer to memory where the queried value is returned. If nil, it is ignored.").
			MultiType(api.DataByte).
			Null(),
		paramValueSizeRet(),
	)

	c.Func(clInt, "GetDeviceIDs", "Obtains the list of devices available on a platform.",
		clPlatformID.IN("platform", "the platform to query"),
		clDeviceType.IN("device_type", "a bitfield that identifies the type of OpenCL device",
			"CL_DEVICE_TYPE_DEFAULT CL_DEVICE_TYPE_CPU CL_DEVICE_TYPE_GPU CL_DEVICE_TYPE_ACCELERATOR CL_DEVICE_TYPE_ALL"),
		clUint.IN("num_entries", "the number of device entries that can be added to devices"),
		clDeviceIDP.OUT("devices", "returns the list of devices found. If nil, it is ignored.").Null(),
		clUintP.OUT("num_devices", "returns the number of devices available. If nil, it is ignored.").Null(),
	)

	c.Func(clInt, "GetDeviceInfo", "Returns information about an OpenCL device.",
		clDeviceID.IN("device", "the device to query"),
		clDeviceInfo.IN("param_name", "the information to query",
			"CL_DEVICE_TYPE CL_DEVICE_VENDOR_ID CL_DEVICE_NAME CL_DEVICE_VENDOR CL_DRIVER_VERSION CL_DEVICE_PROFILE CL_DEVICE_VERSION CL_DEVICE_EXTENSIONS"),
		paramValueSize(),
		voidptr.IN("param_value", "a pointer to memory where the queried value is returned. If nil, it is ignored.").
			MultiType(api.DataPointer).
			Null(),
		paramValueSizeRet(),
	)

	return c
}
