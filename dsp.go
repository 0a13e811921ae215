package main

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// normEps keeps peak normalization of an all-zero table at zero instead of
// dividing by zero.
const normEps = 1e-6

// hannKernel returns an n-tap symmetric Hann window.
func hannKernel(n int) []Smp {
	kernel := make([]Smp, n)
	for i := range kernel {
		kernel[i] = 1
	}
	return window.Hann(kernel)
}

// convolveSame convolves x with kernel and returns the center len(x) samples
// of the full convolution, so the output lines up with the input.
func convolveSame(x, kernel []Smp) []Smp {
	out := make([]Smp, len(x))
	offset := (len(kernel) - 1) / 2
	for n := range out {
		shift := n + offset
		kLo := max(0, shift-len(x)+1)
		kHi := min(len(kernel)-1, shift)
		var acc Smp
		for k := kLo; k <= kHi; k++ {
			acc += x[shift-k] * kernel[k]
		}
		out[n] = acc
	}
	return out
}

func peak(x []Smp) Smp {
	return floats.Norm(x, math.Inf(1))
}

// normalizePeak scales x in place to peak amplitude 1.
func normalizePeak(x []Smp) {
	floats.Scale(1/(peak(x)+normEps), x)
}

// resampleCycle maps a one-cycle table onto n evenly spaced points over
// [0, len(table)), linearly interpolating between neighbours. Positions past
// the last sample clamp to it, so the cycle length is free to be anything
// without reading out of bounds.
func resampleCycle(table []Smp, n int) []Smp {
	out := make([]Smp, n)
	last := len(table) - 1
	step := float64(len(table)) / float64(n)
	for i := range out {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= last {
			out[i] = table[last]
			continue
		}
		frac := pos - float64(lo)
		out[i] = table[lo] + (table[lo+1]-table[lo])*frac
	}
	return out
}

// tileInto adds cycle repeated end to end into dst, truncated to len(dst).
func tileInto(dst, cycle []Smp) {
	j := 0
	for i := range dst {
		dst[i] += cycle[j]
		j++
		if j == len(cycle) {
			j = 0
		}
	}
}
