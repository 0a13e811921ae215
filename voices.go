package main

import (
	"sync"

	"gonum.org/v1/gonum/floats"
)

var baseFrequencies = map[string]float64{
	"1": 110.0,
	"2": 220.0,
	"3": 330.0,
	"4": 440.0,
}

// voiceIDs is sorted so iteration order (and float summation order downstream)
// is deterministic.
var voiceIDs = []string{"1", "2", "3", "4"}

// Registry owns the four oscillators and the state shared between the control
// context (key events) and the render context. active and pitchShift are
// guarded by mu, held only for brief field access; pulse tables go through
// each oscillator's atomic publication, so neither context ever holds mu
// while doing real work.
type Registry struct {
	oscs map[string]*LorenzOsc

	mu         sync.Mutex
	active     map[string]bool
	pitchShift float64
}

func NewRegistry() *Registry {
	r := &Registry{
		oscs:   make(map[string]*LorenzOsc, len(voiceIDs)),
		active: make(map[string]bool, len(voiceIDs)),
	}
	for _, id := range voiceIDs {
		osc := NewLorenzOsc()
		osc.Start()
		r.oscs[id] = osc
	}
	return r
}

func (r *Registry) Close() {
	for _, osc := range r.oscs {
		osc.Stop()
	}
}

func (r *Registry) Activate(id string) {
	if _, ok := r.oscs[id]; !ok {
		return
	}
	r.mu.Lock()
	r.active[id] = true
	r.mu.Unlock()
}

func (r *Registry) Deactivate(id string) {
	r.mu.Lock()
	delete(r.active, id)
	r.mu.Unlock()
}

// AdjustPitch shifts all voices by delta octaves. No bounds: the renderer
// clamps the resulting cycle length instead.
func (r *Registry) AdjustPitch(delta float64) {
	r.mu.Lock()
	r.pitchShift += delta
	r.mu.Unlock()
}

// Snapshot returns the held voices in fixed id order plus the pitch shift.
// One brief lock per audio block; the block then renders from the snapshot
// even if keys are released mid-block.
func (r *Registry) Snapshot() ([]string, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.active))
	for _, id := range voiceIDs {
		if r.active[id] {
			ids = append(ids, id)
		}
	}
	return ids, r.pitchShift
}

func (r *Registry) Osc(id string) *LorenzOsc {
	return r.oscs[id]
}

func (r *Registry) Active(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[id]
}

func (r *Registry) Entropy(id string) float64 {
	if osc, ok := r.oscs[id]; ok {
		return osc.Entropy()
	}
	return 0
}

// Blend averages the published pulse tables of the held voices and hands the
// result to the greatest held id, merging their timbres into that voice.
// No-op when nothing is held. Publication uses the same atomic store as the
// refresh workers; if a worker republishes concurrently the later store wins.
func (r *Registry) Blend() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.active) == 0 {
		return
	}
	combined := new([pulseLen]Smp)
	target := ""
	n := 0
	for _, id := range voiceIDs {
		if !r.active[id] {
			continue
		}
		floats.Add(combined[:], r.oscs[id].Pulse())
		target = id
		n++
	}
	floats.Scale(1/float64(n), combined[:])
	r.oscs[target].publishPulse(combined)
}
