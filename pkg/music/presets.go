package music

import (
	"strconv"
	"strings"

	"github.com/oisee/fmsynth/pkg/synth"
)

// Preset is a named FM parameter set. Preset frequencies are given at
// A4 (440 Hz); playing another pitch scales carrier and modulator
// together so the carrier:modulator ratio, and with it the timbre,
// stays fixed.
type Preset struct {
	Name   string
	Params synth.Params
}

// Presets is the built-in preset table
var Presets = []Preset{
	{"Bell", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 440.0, ModIndex: 7.0, Amplitude: 0.3}},
	{"Bass", synth.Params{CarrierFreq: 110.0, ModulatorFreq: 110.0, ModIndex: 1.5, Amplitude: 0.5}},
	{"Electric Piano", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 880.0, ModIndex: 3.0, Amplitude: 0.4}},
	{"Brass", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 440.0, ModIndex: 2.5, Amplitude: 0.4}},
	{"Organ", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 880.0, ModIndex: 1.0, Amplitude: 0.4}},
	{"Synth Lead", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 1320.0, ModIndex: 4.0, Amplitude: 0.35}},
	{"Marimba", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 440.0, ModIndex: 3.5, Amplitude: 0.4}},
	{"Strings", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 220.0, ModIndex: 0.8, Amplitude: 0.3}},
	{"Flute", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 440.0, ModIndex: 0.5, Amplitude: 0.25}},
	{"Metallic", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 567.0, ModIndex: 9.0, Amplitude: 0.3}},
	{"Glockenspiel", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 1760.0, ModIndex: 2.5, Amplitude: 0.3}},
	{"Wood Block", synth.Params{CarrierFreq: 440.0, ModulatorFreq: 300.0, ModIndex: 12.0, Amplitude: 0.4}},
}

// FindPreset looks a preset up by 1-based index or case-insensitive name
func FindPreset(name string) (Preset, bool) {
	if num, err := strconv.Atoi(name); err == nil {
		if num > 0 && num <= len(Presets) {
			return Presets[num-1], true
		}
		return Preset{}, false
	}
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// PitchParams returns the preset's parameters transposed to the given
// carrier frequency, preserving the carrier:modulator ratio.
func (p Preset) PitchParams(freq float64) synth.Params {
	ratio := freq / 440.0
	params := p.Params
	params.CarrierFreq *= ratio
	params.ModulatorFreq *= ratio
	return params
}
