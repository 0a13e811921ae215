package main

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
)

// otoOutput plays the mix on the default output device. oto pulls samples
// through Read, so the block size follows whatever the device layer asks for.
type otoOutput struct {
	ctx    *oto.Context
	player *oto.Player
	mixer  *Mixer
	f32    []float32
}

func newOtoOutput(mixer *Mixer) (*otoOutput, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, readyChan, err := oto.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("opening default audio device: %w", err)
	}
	<-readyChan
	return &otoOutput{ctx: ctx, mixer: mixer}, nil
}

func (o *otoOutput) Start() error {
	o.player = o.ctx.NewPlayer(o)
	o.player.Play()
	return nil
}

// Read renders one block per pull. Only whole frames are produced.
func (o *otoOutput) Read(p []byte) (int, error) {
	frames := len(p) / 4
	block := o.mixer.RenderBlock(frames)
	if len(o.f32) < frames {
		o.f32 = make([]float32, frames)
	}
	samples := o.f32[:frames]
	blockToFloat32(block, samples)
	for i, smp := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(smp))
	}
	return frames * 4, nil
}

func (o *otoOutput) Close() error {
	if o.player != nil {
		return o.player.Close()
	}
	return nil
}
