package main

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	sampleRate  = 44100
	minCycleLen = 16
)

// Mixer renders blocks of mono samples from the held voices.
type Mixer struct {
	reg *Registry
}

func NewMixer(reg *Registry) *Mixer {
	return &Mixer{reg: reg}
}

// samplesPerCycle converts a frequency to a whole cycle length. The clamp
// keeps extreme pitch shifts from shrinking a cycle into degeneracy.
func samplesPerCycle(freq float64) int {
	return max(int(math.Round(sampleRate/freq)), minCycleLen)
}

// RenderBlock produces one block of frames mono samples. The active set and
// pitch shift are snapshotted once up front, so a voice released mid-block
// keeps sounding until the next block. Rebuild requests go to the oscillator
// workers; this path only ever reads the latest published tables and is safe
// against the block deadline.
func (m *Mixer) RenderBlock(frames int) []Smp {
	out := make([]Smp, frames)
	ids, shift := m.reg.Snapshot()
	if len(ids) == 0 {
		return out
	}
	now := time.Now()
	for _, id := range ids {
		osc := m.reg.Osc(id)
		osc.RequestRefresh(now)
		freq := baseFrequencies[id] * math.Exp2(shift)
		cycle := resampleCycle(osc.Pulse(), samplesPerCycle(freq))
		tileInto(out, cycle)
	}
	floats.Scale(1/float64(len(ids)), out)
	return out
}
