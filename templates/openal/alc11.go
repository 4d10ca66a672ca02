package openal

import "github.com/ardanlabs/bindgen/api"

func alc11() *api.NativeClass {
	c := nativeClassALC("ALC11", "ALC11")

	c.NativeImport("alc.h")

	c.Documentation("Native bindings to ALC 1.1 functionality.")

	c.IntConstantBlock(
		"Context creation attributes.",

		api.IntConstant("MONO_SOURCES", 0x1010),
		api.IntConstant("STEREO_SOURCES", 0x1011),
	)

	c.IntConstantBlock(
		"String queries.",

		api.IntConstant("DEFAULT_ALL_DEVICES_SPECIFIER", 0x1012),
		api.IntConstant("ALL_DEVICES_SPECIFIER", 0x1013),
		api.IntConstant("CAPTURE_DEVICE_SPECIFIER", 0x310),
		api.IntConstant("CAPTURE_DEFAULT_DEVICE_SPECIFIER", 0x311),
	)

	c.IntConstantBlock(
		"Integer queries.",

		api.IntConstant("CAPTURE_SAMPLES", 0x312),
	)

	c.Func(alcDeviceP, "CaptureOpenDevice", "Allows the application to connect to a capture device.",
		alcCharP.IN("deviceName", "the device or device configuration").Null(),
		alcUint.IN("frequency", "the audio frequency"),
		alcEnum.IN("format", "the audio format"),
		alcSizei.IN("samples", "the number of sample frames to buffer in the AL"),
	)

	c.Func(alcBoolean, "CaptureCloseDevice", "Allows the application to disconnect from a capture device.",
		alcDeviceP.IN("device", "the capture device to close"),
	)

	c.Func(alcVoid, "CaptureStart", "Starts recording audio on the specific capture device.",
		alcDeviceP.IN("device", "the capture device"),
	)

	c.Func(alcVoid, "CaptureStop", "Halts audio capturing without closing the capture device.",
		alcDeviceP.IN("device", "the capture device"),
	)

	c.Func(alcVoid, "CaptureSamples", "Completes a capture operation, and does not block.",
		alcDeviceP.IN("device", "the capture device"),
		alcVoidP.OUT("buffer", "the buffer that will receive the samples").MultiType(api.DataByte, api.DataShort, api.DataFloat),
		alcSizei.IN("samples", "the buffer size, in sample frames"),
	)

	return c
}
