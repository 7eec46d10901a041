package synth

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func assert[T comparable](t *testing.T, got, want T) {
	t.Helper()

	if got != want {
		t.Fatalf("assertion failed: got = %v want %v", got, want)
	}
}

func TestOscillator_PhaseWrapInvariant(t *testing.T) {
	cases := []struct {
		name   string
		rate   float64
		params Params
	}{
		{"default 44100", 44100, DefaultParams()},
		{"bell 48000", 48000, Params{CarrierFreq: 440, ModulatorFreq: 440, ModIndex: 7, Amplitude: 0.3}},
		{"deep modulation", 44100, Params{CarrierFreq: 440, ModulatorFreq: 300, ModIndex: 12, Amplitude: 0.4}},
		{"high carrier", 44100, Params{CarrierFreq: 880, ModulatorFreq: 1760, ModIndex: 2.5, Amplitude: 0.3}},
		{"zero modulator", 22050, Params{CarrierFreq: 220, ModulatorFreq: 0, ModIndex: 3, Amplitude: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOscillator(tc.rate, tc.params)
			for i := 0; i < 10000; i++ {
				o.Step()
				if o.CarrierPhase < 0 || o.CarrierPhase >= 1 {
					t.Fatalf("carrier phase out of [0,1) at sample %d: %v", i, o.CarrierPhase)
				}
				if o.ModulatorPhase < 0 || o.ModulatorPhase >= 1 {
					t.Fatalf("modulator phase out of [0,1) at sample %d: %v", i, o.ModulatorPhase)
				}
			}
		})
	}
}

// With the modulator at 0 Hz its phase never moves, sin(0) = 0, and the
// carrier must come out as a plain sine regardless of the index.
func TestOscillator_ZeroModulatorIsPureSine(t *testing.T) {
	const rate = 44100.0
	o := NewOscillator(rate, Params{CarrierFreq: 440, ModulatorFreq: 0, ModIndex: 5, Amplitude: 1})

	phase := 0.0
	for i := 0; i < 5000; i++ {
		want := math.Sin(2 * math.Pi * phase)
		got := o.Step()
		if got != want {
			t.Fatalf("sample %d: got %v want pure sine %v", i, got, want)
		}
		phase += 440.0 / rate
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
}

func TestOscillator_SetParamsKeepsPhase(t *testing.T) {
	params := DefaultParams()
	a := NewOscillator(44100, params)
	b := NewOscillator(44100, params)

	var got, want []float64
	for i := 0; i < 300; i++ {
		want = append(want, a.Step())
	}
	for i := 0; i < 100; i++ {
		got = append(got, b.Step())
	}
	// Re-applying identical parameters mid-note must not disturb the
	// phase accumulators.
	b.SetParams(params)
	for i := 0; i < 200; i++ {
		got = append(got, b.Step())
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("phase discontinuity after SetParams (-want +got):\n%s", diff)
	}
}

func TestOscillator_ChangingPitchKeepsPhase(t *testing.T) {
	o := NewOscillator(44100, DefaultParams())
	for i := 0; i < 100; i++ {
		o.Step()
	}

	carrier, modulator := o.CarrierPhase, o.ModulatorPhase
	o.SetParams(Params{CarrierFreq: 523.25, ModulatorFreq: 1046.5, ModIndex: 3, Amplitude: 0.4})
	assert(t, o.CarrierPhase, carrier)
	assert(t, o.ModulatorPhase, modulator)
}

func TestOscillator_NegativeModulatorFreqIsTotal(t *testing.T) {
	o := NewOscillator(44100, Params{CarrierFreq: 440, ModulatorFreq: -220, ModIndex: 2, Amplitude: 0.3})
	for i := 0; i < 1000; i++ {
		s := o.Step()
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatalf("sample %d not finite: %v", i, s)
		}
	}
}

func BenchmarkOscillator_Step(b *testing.B) {
	o := NewOscillator(44100, DefaultParams())
	for i := 0; i < b.N; i++ {
		o.Step()
	}
}
