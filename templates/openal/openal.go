// Package openal holds the OpenAL context API templates.
package openal

import "github.com/ardanlabs/bindgen/api"

// Classes returns a fresh copy of every ALC class.
func Classes() []*api.NativeClass {
	return []*api.NativeClass{
		alc10(),
		alc11(),
		enumerateAllExt(),
		extDisconnect(),
		softLoopback(),
		softPauseDevice(),
	}
}
