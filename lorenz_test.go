package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulseStartsSilent(t *testing.T) {
	o := NewLorenzOsc()
	pulse := o.Pulse()
	require.Len(t, pulse, pulseLen)
	for _, smp := range pulse {
		require.Zero(t, smp)
	}
}

func TestEntropySaturates(t *testing.T) {
	o := NewLorenzOsc()
	prev := o.Entropy()
	for range 60 {
		o.bumpEntropy()
		e := o.Entropy()
		require.GreaterOrEqual(t, e, prev)
		require.LessOrEqual(t, e, 1.0)
		prev = e
	}
	// 60 steps of 0.02 overshoot the cap, so the value must sit exactly at 1.
	require.Equal(t, 1.0, o.Entropy())
	o.bumpEntropy()
	require.Equal(t, 1.0, o.Entropy())
}

func TestEntropyRetunesAttractor(t *testing.T) {
	o := NewLorenzOsc()
	o.bumpEntropy()
	assert.InDelta(t, 10+6*0.02, o.sigma, 1e-12)
	assert.InDelta(t, 28+20*0.02, o.rho, 1e-12)
	assert.InDelta(t, 8.0/3.0+2.5*0.02, o.beta, 1e-12)
}

func TestBuildPulseNormalized(t *testing.T) {
	o := NewLorenzOsc()
	for i := 0; i < 10; i++ {
		o.bumpEntropy()
		o.buildPulse()
		pulse := o.Pulse()
		require.Len(t, pulse, pulseLen)
		for _, smp := range pulse {
			require.False(t, math.IsNaN(smp) || math.IsInf(smp, 0))
		}
		// Peak sits at M/(M+1e-6), i.e. 1 within epsilon.
		assert.InDelta(t, 1.0, peak(pulse), 1e-4, "rebuild %d", i)
	}
}

func TestBuildPulsePublishesNewTable(t *testing.T) {
	o := NewLorenzOsc()
	o.buildPulse()
	first := o.Pulse()
	o.buildPulse()
	second := o.Pulse()
	// The attractor keeps evolving between rebuilds, so consecutive tables
	// differ, and the previous table is left untouched for readers holding it.
	assert.NotEqual(t, first, second)
}

func TestRefreshWorkerHonorsCadence(t *testing.T) {
	o := NewLorenzOsc()
	o.Start()
	defer o.Stop()

	// Within the refresh interval nothing may change.
	o.RequestRefresh(time.Now())
	time.Sleep(10 * time.Millisecond)
	require.Zero(t, o.Entropy())
	require.Zero(t, peak(o.Pulse()))

	// Past the interval the worker bumps entropy and publishes a real table.
	o.RequestRefresh(time.Now().Add(refreshInterval + time.Second))
	require.Eventually(t, func() bool {
		return peak(o.Pulse()) > 0
	}, time.Second, time.Millisecond)
	assert.InDelta(t, entropyStep, o.Entropy(), 1e-12)
}
