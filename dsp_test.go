package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHannKernel(t *testing.T) {
	kernel := hannKernel(smoothTaps)
	require.Len(t, kernel, smoothTaps)
	assert.InDelta(t, 0, kernel[0], 1e-12)
	assert.InDelta(t, 0, kernel[smoothTaps-1], 1e-12)
	assert.InDelta(t, 1, kernel[smoothTaps/2], 1e-12)
	for i := range smoothTaps / 2 {
		assert.InDelta(t, kernel[i], kernel[smoothTaps-1-i], 1e-12, "tap %d", i)
	}
}

func TestConvolveSameDelta(t *testing.T) {
	// Convolving a shifted delta reproduces the kernel, centered on the spike.
	x := make([]Smp, 16)
	x[5] = 1
	kernel := []Smp{1, 2, 3}
	out := convolveSame(x, kernel)
	expected := make([]Smp, 16)
	expected[4] = 1
	expected[5] = 2
	expected[6] = 3
	assert.Equal(t, expected, out)
}

func TestConvolveSameEdges(t *testing.T) {
	// At the edges the kernel runs off the signal; missing samples count as
	// zero, exactly like a zero-padded full convolution cut to size.
	x := []Smp{1, 1, 1, 1}
	kernel := []Smp{1, 1, 1}
	out := convolveSame(x, kernel)
	assert.Equal(t, []Smp{2, 3, 3, 2}, out)
}

func TestResampleCycleIdentity(t *testing.T) {
	table := []Smp{0, 1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, table, resampleCycle(table, len(table)))
}

func TestResampleCycleInterpolates(t *testing.T) {
	table := []Smp{0, 1}
	// Positions 0, 0.5, 1.0, 1.5; the tail clamps to the last sample.
	assert.Equal(t, []Smp{0, 0.5, 1, 1}, resampleCycle(table, 4))
}

func TestNormalizePeak(t *testing.T) {
	x := []Smp{0.1, -0.5, 0.25}
	normalizePeak(x)
	assert.InDelta(t, 1.0, peak(x), 1e-4)
	assert.Negative(t, x[1])

	silent := make([]Smp, 8)
	normalizePeak(silent)
	for _, smp := range silent {
		assert.Zero(t, smp)
	}
}

func TestTileInto(t *testing.T) {
	dst := make([]Smp, 7)
	tileInto(dst, []Smp{1, 2, 3})
	assert.Equal(t, []Smp{1, 2, 3, 1, 2, 3, 1}, dst)
}
