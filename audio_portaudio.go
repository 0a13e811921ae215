package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gordonklaus/portaudio"
)

const paFramesPerBlock = 512

// portaudioOutput drives a fixed-size callback stream, optionally on an
// explicitly selected output device.
type portaudioOutput struct {
	stream *portaudio.Stream
}

func newPortaudioOutput(mixer *Mixer, device string) (*portaudioOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	callback := func(out []float32) {
		blockToFloat32(mixer.RenderBlock(len(out)), out)
	}
	var stream *portaudio.Stream
	var err error
	if device == "" {
		stream, err = portaudio.OpenDefaultStream(0, 1, sampleRate, paFramesPerBlock, callback)
	} else {
		var dev *portaudio.DeviceInfo
		dev, err = findOutputDevice(device)
		if err != nil {
			portaudio.Terminate()
			return nil, err
		}
		params := portaudio.LowLatencyParameters(nil, dev)
		params.Output.Channels = 1
		params.SampleRate = sampleRate
		params.FramesPerBuffer = paFramesPerBlock
		stream, err = portaudio.OpenStream(params, callback)
	}
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening audio device %q: %w", deviceLabel(device), err)
	}
	return &portaudioOutput{stream: stream}, nil
}

// findOutputDevice resolves a device identifier: a numeric index into the
// device list, or a case-insensitive substring of a device name.
func findOutputDevice(query string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing audio devices: %w", err)
	}
	if index, err := strconv.Atoi(query); err == nil {
		if index < 0 || index >= len(devices) {
			return nil, fmt.Errorf("audio device index %d out of range (have %d devices)", index, len(devices))
		}
		if devices[index].MaxOutputChannels < 1 {
			return nil, fmt.Errorf("audio device %d (%s) has no outputs", index, devices[index].Name)
		}
		return devices[index], nil
	}
	for _, dev := range devices {
		if dev.MaxOutputChannels < 1 {
			continue
		}
		if strings.Contains(strings.ToLower(dev.Name), strings.ToLower(query)) {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("no output device matching %q", query)
}

func deviceLabel(device string) string {
	if device == "" {
		return "default"
	}
	return device
}

func (o *portaudioOutput) Start() error {
	if err := o.stream.Start(); err != nil {
		return fmt.Errorf("starting audio stream: %w", err)
	}
	return nil
}

func (o *portaudioOutput) Close() error {
	err := o.stream.Close()
	portaudio.Terminate()
	return err
}
