package synth

// Stage identifies the current envelope stage
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String returns the stage name
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	}
	return "unknown"
}

// Envelope is a linear ADSR amplitude envelope driven by elapsed time
// in the current stage.
type Envelope struct {
	Attack  float64 // Attack time in seconds
	Decay   float64 // Decay time in seconds
	Sustain float64 // Sustain level (0.0 - 1.0)
	Release float64 // Release time in seconds

	sampleRate float64
	stage      Stage
	level      float64
	pos        int // Samples spent in current stage
}

// NewEnvelope creates an envelope with the default contour
func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{
		Attack:     0.01,
		Decay:      0.1,
		Sustain:    0.7,
		Release:    0.5,
		sampleRate: sampleRate,
	}
}

// Trigger starts the attack stage from any prior stage, including
// mid-release: retriggering restarts the note without waiting.
func (e *Envelope) Trigger() {
	e.stage = StageAttack
	e.pos = 0
}

// ReleaseNote moves to the release stage. Releasing an idle envelope
// has no effect.
func (e *Envelope) ReleaseNote() {
	if e.stage != StageIdle {
		e.stage = StageRelease
		e.pos = 0
	}
}

// State returns the current stage
func (e *Envelope) State() Stage {
	return e.stage
}

// Level returns the most recently computed level
func (e *Envelope) Level() float64 {
	return e.level
}

// Step advances the envelope by one sample and returns the level.
// Levels are not clamped: with very short stage times a single step can
// overshoot the target by at most one sample's worth of ramp before the
// stage transition catches it. Zero-length stages transition on the
// next step.
//
// Stage time is kept as a sample count and divided out here rather than
// accumulated, so stage boundaries land on exact sample offsets.
func (e *Envelope) Step() float64 {
	e.pos++
	elapsed := float64(e.pos) / e.sampleRate

	switch e.stage {
	case StageIdle:
		e.level = 0

	case StageAttack:
		e.level = elapsed / e.Attack
		if elapsed >= e.Attack {
			e.stage = StageDecay
			e.pos = 0
		}

	case StageDecay:
		e.level = 1.0 - (1.0-e.Sustain)*(elapsed/e.Decay)
		if elapsed >= e.Decay {
			e.stage = StageSustain
			e.pos = 0
		}

	case StageSustain:
		e.level = e.Sustain

	case StageRelease:
		e.level = e.Sustain * (1.0 - elapsed/e.Release)
		if elapsed >= e.Release {
			e.stage = StageIdle
			e.pos = 0
			e.level = 0
		}
	}

	return e.level
}
