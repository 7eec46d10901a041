// Package synth implements the FM synthesis engine
package synth

import "math"

// Params holds the FM synthesis parameters for a voice.
// It is a value type: replaced wholesale, never mutated field by field.
type Params struct {
	CarrierFreq   float64 // Carrier frequency in Hz
	ModulatorFreq float64 // Modulator frequency in Hz
	ModIndex      float64 // Modulation depth
	Amplitude     float64 // Output amplitude (0.0 - 1.0)
}

// DefaultParams returns the default parameter set (A4 with a 2:1 ratio)
func DefaultParams() Params {
	return Params{
		CarrierFreq:   440.0,
		ModulatorFreq: 220.0,
		ModIndex:      2.0,
		Amplitude:     0.3,
	}
}

// Oscillator is a two-operator FM oscillator: a modulator sine deviates
// the carrier's instantaneous frequency by ModIndex.
type Oscillator struct {
	SampleRate     float64
	CarrierPhase   float64 // 0.0 - 1.0, position within one carrier cycle
	ModulatorPhase float64
	Params         Params
}

// NewOscillator creates an oscillator at the given sample rate
func NewOscillator(sampleRate float64, params Params) *Oscillator {
	return &Oscillator{
		SampleRate: sampleRate,
		Params:     params,
	}
}

// SetParams replaces the active parameter set. Phases are not reset, so
// pitch or timbre changes mid-note stay continuous.
func (o *Oscillator) SetParams(params Params) {
	o.Params = params
}

// Step generates the next sample value (-Amplitude to Amplitude)
func (o *Oscillator) Step() float64 {
	modulator := math.Sin(2 * math.Pi * o.ModulatorPhase)
	instFreq := o.Params.CarrierFreq * (1.0 + o.Params.ModIndex*modulator)
	carrier := math.Sin(2 * math.Pi * o.CarrierPhase)

	o.CarrierPhase += instFreq / o.SampleRate
	o.ModulatorPhase += o.Params.ModulatorFreq / o.SampleRate

	// Single conditional subtraction, not modulo: valid while the per-sample
	// increment magnitude stays below 1.0 (|freq| < sample rate). The upward
	// wrap covers negative increments, which happen when a deep modulation
	// index pushes the instantaneous carrier frequency below zero.
	if o.CarrierPhase >= 1.0 {
		o.CarrierPhase -= 1.0
	} else if o.CarrierPhase < 0.0 {
		o.CarrierPhase += 1.0
	}
	if o.ModulatorPhase >= 1.0 {
		o.ModulatorPhase -= 1.0
	} else if o.ModulatorPhase < 0.0 {
		o.ModulatorPhase += 1.0
	}

	return carrier * o.Params.Amplitude
}
