package main

import (
	"math"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	pulseLen        = 512
	entropyStep     = 0.02
	refreshInterval = 2 * time.Second

	attractorDt    = 0.005
	attractorSteps = 400
	smoothTaps     = 21
	shaperAmount   = 0.4
)

// LorenzOsc couples a Lorenz attractor with a one-cycle pulse table distilled
// from its trajectory. The attractor fields and lastUpdate belong to the
// refresh worker; everyone else sees only the atomically published pulse
// table and entropy, so the render path never waits on a rebuild.
type LorenzOsc struct {
	x, y, z          float64
	sigma, rho, beta float64

	entropyBits atomic.Uint64
	pulse       atomic.Pointer[[pulseLen]Smp]

	lastUpdate time.Time
	refresh    chan time.Time
	done       chan struct{}
}

func NewLorenzOsc() *LorenzOsc {
	o := &LorenzOsc{
		x:          0.1,
		sigma:      10,
		rho:        28,
		beta:       8.0 / 3.0,
		lastUpdate: time.Now(),
		refresh:    make(chan time.Time, 1),
		done:       make(chan struct{}),
	}
	o.pulse.Store(new([pulseLen]Smp))
	return o
}

// Start runs the refresh worker. Rebuilds requested through RequestRefresh
// happen on this goroutine, never on the caller's.
func (o *LorenzOsc) Start() {
	go o.run()
}

func (o *LorenzOsc) Stop() {
	close(o.done)
}

func (o *LorenzOsc) run() {
	for {
		select {
		case <-o.done:
			return
		case now := <-o.refresh:
			if now.Sub(o.lastUpdate) <= refreshInterval {
				continue
			}
			o.bumpEntropy()
			o.buildPulse()
			o.lastUpdate = now
		}
	}
}

// RequestRefresh posts a refresh check for the given time. Non-blocking: if
// the worker is busy or a check is already queued, the request is dropped and
// a later block posts the next one.
func (o *LorenzOsc) RequestRefresh(now time.Time) {
	select {
	case o.refresh <- now:
	default:
	}
}

func (o *LorenzOsc) Entropy() float64 {
	return math.Float64frombits(o.entropyBits.Load())
}

func (o *LorenzOsc) setEntropy(e float64) {
	o.entropyBits.Store(math.Float64bits(e))
}

// Pulse returns the latest published table. Callers must treat it as
// read-only; replacement tables are always published whole.
func (o *LorenzOsc) Pulse() []Smp {
	return o.pulse.Load()[:]
}

func (o *LorenzOsc) publishPulse(table *[pulseLen]Smp) {
	o.pulse.Store(table)
}

// step advances the attractor by one explicit Euler step.
func (o *LorenzOsc) step(dt float64) {
	dx := o.sigma * (o.y - o.x)
	dy := o.x*(o.rho-o.z) - o.y
	dz := o.x*o.y - o.beta*o.z
	o.x += dx * dt
	o.y += dy * dt
	o.z += dz * dt
}

// bumpEntropy accumulates turbulence and retunes the attractor with it.
// Entropy saturates at 1, where the dynamics are at their most unstable.
func (o *LorenzOsc) bumpEntropy() {
	e := math.Min(o.Entropy()+entropyStep, 1.0)
	o.setEntropy(e)
	o.sigma = 10 + 6*e
	o.rho = 28 + 20*e
	o.beta = 8.0/3.0 + 2.5*e
}

// buildPulse runs the attractor for a burst, reduces the trajectory to three
// landmark nodes (bottom, center, crest), shapes a stepped one-cycle table
// from them, smooths it with a Hann kernel, applies entropy-scaled cubic
// distortion and publishes the normalized result.
func (o *LorenzOsc) buildPulse() {
	xs := make([]float64, attractorSteps)
	ys := make([]float64, attractorSteps)
	zs := make([]float64, attractorSteps)
	for i := range attractorSteps {
		o.step(attractorDt)
		xs[i] = o.x
		ys[i] = o.y
		zs[i] = o.z
	}

	nodes := []Smp{stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)}
	floats.AddConst(-stat.Mean(nodes, nil), nodes)
	floats.Scale(1/(peak(nodes)+normEps), nodes)

	// Three equal thirds; the last one takes the remainder.
	stepped := make([]Smp, pulseLen)
	third := pulseLen / 3
	for i := range stepped {
		switch {
		case i < third:
			stepped[i] = nodes[0]
		case i < 2*third:
			stepped[i] = nodes[1]
		default:
			stepped[i] = nodes[2]
		}
	}

	smoothed := convolveSame(stepped, hannKernel(smoothTaps))
	e := o.Entropy()
	for i, v := range smoothed {
		smoothed[i] = v + e*shaperAmount*v*v*v
	}
	normalizePeak(smoothed)

	table := new([pulseLen]Smp)
	copy(table[:], smoothed)
	o.publishPulse(table)
}
