package openal

import "github.com/ardanlabs/bindgen/api"

func enumerateAllExt() *api.NativeClass {
	c := nativeClassALC("EnumerateAllExt", "ENUMERATE_ALL_EXT")

	c.Documentation("Native bindings to the ALC_ENUMERATE_ALL_EXT extension.")

	c.IntConstantBlock(
		"Accepted by the token parameter of [GetString].",

		api.IntConstant("DEFAULT_ALL_DEVICES_SPECIFIER", 0x1012),
		api.IntConstant("ALL_DEVICES_SPECIFIER", 0x1013),
	)

	return c
}

func extDisconnect() *api.NativeClass {
	c := nativeClassALC("EXTDisconnect", "EXT_disconnect")

	c.Documentation("Native bindings to the ALC_EXT_disconnect extension.")

	c.IntConstantBlock(
		"Accepted by the token parameter of [GetIntegerv].",

		api.IntConstant("CONNECTED", 0x313),
	)

	return c
}

func softPauseDevice() *api.NativeClass {
	c := nativeClassALC("SOFTPauseDevice", "SOFT_pause_device")

	c.Documentation(`
		Native bindings to the ALC_SOFT_pause_device extension.

		This extension allows applications to pause a playback device. The main purpose of this is to conserve
		system resources when the application is not producing sound.
		`)

	c.Func(alcVoid, "DevicePauseSOFT", "Pauses a playback device.",
		alcDeviceP.IN("device", "the device to pause"),
	)

	c.Func(alcVoid, "DeviceResumeSOFT", "Resumes playback of a paused device.",
		alcDeviceP.IN("device", "the device to resume"),
	)

	return c
}

func softLoopback() *api.NativeClass {
	c := nativeClassALC("SOFTLoopback", "SOFT_loopback")

	c.Documentation(`
		Native bindings to the ALC_SOFT_loopback extension.

		This extension allows an application to read back OpenAL's rendered audio instead of having it output to
		an audio device on the system.
		`)

	c.IntConstantBlock(
		"Accepted by the type parameter of [IsRenderFormatSupportedSOFT].",

		api.IntConstant("BYTE_SOFT", 0x1400),
		api.IntConstant("UNSIGNED_BYTE_SOFT", 0x1401),
		api.IntConstant("SHORT_SOFT", 0x1402),
		api.IntConstant("UNSIGNED_SHORT_SOFT", 0x1403),
		api.IntConstant("INT_SOFT", 0x1404),
		api.IntConstant("UNSIGNED_INT_SOFT", 0x1405),
		api.IntConstant("FLOAT_SOFT", 0x1406),
	)

	c.IntConstantBlock(
		"Accepted by the channels parameter of [IsRenderFormatSupportedSOFT].",

		api.IntConstant("MONO_SOFT", 0x1500),
		api.IntConstant("STEREO_SOFT", 0x1501),
		api.IntConstant("QUAD_SOFT", 0x1503),
		api.IntConstant("5POINT1_SOFT", 0x1504),
		api.IntConstant("6POINT1_SOFT", 0x1505),
		api.IntConstant("7POINT1_SOFT", 0x1506),
	)

	c.IntConstantBlock(
		"Accepted as part of the attrList parameter of [CreateContext].",

		api.IntConstant("FORMAT_CHANNELS_SOFT", 0x1990),
		api.IntConstant("FORMAT_TYPE_SOFT", 0x1991),
	)

	c.Func(alcDeviceP, "LoopbackOpenDeviceSOFT", "Opens a loopback device.",
		alcCharP.IN("deviceName", "which device or device driver to use for subsequent rendering").Null(),
	)

	c.Func(alcBoolean, "IsRenderFormatSupportedSOFT", "Checks if a given format is supported for rendering by a loopback device.",
		alcDeviceP.IN("device", "the loopback device to query"),
		alcSizei.IN("frequency", "the sample rate of the rendered audio"),
		alcEnum.IN("channels", "the channel configuration used for rendering"),
		alcEnum.IN("type", "sample type of the written audio"),
	)

	c.Func(alcVoid, "RenderSamplesSOFT", "Renders samples from a loopback device.",
		alcDeviceP.IN("device", "the loopback device which samples are rendered from"),
		alcVoidP.OUT("buffer", "the buffer to write to").MultiType(api.DataByte, api.DataShort, api.DataInt, api.DataFloat),
		alcSizei.IN("samples", "the number of sample frames to render"),
	)

	return c
}
