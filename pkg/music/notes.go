// Package music holds the static note, preset and melody tables
package music

// noteFreqs maps note names to frequencies in Hz, C3 through A5
var noteFreqs = map[string]float64{
	"C3": 130.81, "C#3": 138.59, "D3": 146.83, "D#3": 155.56, "E3": 164.81,
	"F3": 174.61, "F#3": 185.00, "G3": 196.00, "G#3": 207.65, "A3": 220.00,
	"A#3": 233.08, "B3": 246.94,
	"C4": 261.63, "C#4": 277.18, "D4": 293.66, "D#4": 311.13, "E4": 329.63,
	"F4": 349.23, "F#4": 369.99, "G4": 392.00, "G#4": 415.30, "A4": 440.00,
	"A#4": 466.16, "B4": 493.88,
	"C5": 523.25, "C#5": 554.37, "D5": 587.33, "D#5": 622.25, "E5": 659.25,
	"F5": 698.46, "F#5": 739.99, "G5": 783.99, "G#5": 830.61, "A5": 880.00,
}

// NoteFreq returns the frequency for a note name. Unrecognized names
// (including "REST") return 0, which callers treat as silence.
func NoteFreq(note string) float64 {
	return noteFreqs[note]
}
