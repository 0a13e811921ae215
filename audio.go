package main

import "fmt"

// AudioOutput is a running audio stream pulling blocks from a Mixer.
type AudioOutput interface {
	Start() error
	Close() error
}

func openAudioOutput(backend, device string, mixer *Mixer) (AudioOutput, error) {
	switch backend {
	case "oto":
		if device != "" {
			return nil, fmt.Errorf("the oto backend always plays on the default device; use -backend portaudio to select %q", device)
		}
		return newOtoOutput(mixer)
	case "portaudio":
		return newPortaudioOutput(mixer, device)
	default:
		return nil, fmt.Errorf("unknown audio backend %q (want oto or portaudio)", backend)
	}
}

// blockToFloat32 clamps and narrows a rendered block for the device.
func blockToFloat32(block []Smp, out []float32) {
	for i, smp := range block {
		out[i] = float32(clamp(smp, -1, 1))
	}
}
