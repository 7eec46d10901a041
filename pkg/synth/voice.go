package synth

import (
	"fmt"
	"sync"
)

// Voice combines one oscillator and one envelope into a single mono
// sample generator.
//
// A voice is shared between two goroutines: the audio output pulls
// samples at a fixed cadence while a control path fires NoteOn, NoteOff
// and SetParams asynchronously. One mutex guards every operation, so a
// sample never observes a half-replaced parameter set and control calls
// serialize in issue order. The producer side holds the lock only for
// one sample or one buffer fill.
type Voice struct {
	mu         sync.Mutex
	oscillator *Oscillator
	envelope   *Envelope
}

// NewVoice creates a voice bound to a sample rate. The sample rate is
// the only checked precondition; everything else degrades gracefully.
func NewVoice(sampleRate float64, params Params) (*Voice, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("synth: sample rate must be positive, got %v", sampleRate)
	}
	return &Voice{
		oscillator: NewOscillator(sampleRate, params),
		envelope:   NewEnvelope(sampleRate),
	}, nil
}

// NoteOn triggers the envelope attack
func (v *Voice) NoteOn() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.envelope.Trigger()
}

// NoteOff releases the envelope
func (v *Voice) NoteOff() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.envelope.ReleaseNote()
}

// SetParams replaces the oscillator parameters. The envelope stage is
// unaffected, so changing pitch mid-note does not retrigger.
func (v *Voice) SetParams(params Params) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.oscillator.SetParams(params)
}

// SetEnvelope replaces the ADSR contour
func (v *Voice) SetEnvelope(attack, decay, sustain, release float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.envelope.Attack = attack
	v.envelope.Decay = decay
	v.envelope.Sustain = sustain
	v.envelope.Release = release
}

// NextSample generates the next output sample
func (v *Voice) NextSample() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.oscillator.Step() * v.envelope.Step()
}

// GenerateSamples fills the buffer under a single lock acquisition
func (v *Voice) GenerateSamples(buffer []float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range buffer {
		buffer[i] = v.oscillator.Step() * v.envelope.Step()
	}
}

// Active reports whether the envelope is in any stage other than idle
func (v *Voice) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.envelope.State() != StageIdle
}
