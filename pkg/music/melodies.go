package music

import (
	"strconv"
	"strings"
	"time"
)

// NoteEvent is one step of a melody: a note name and how long it lasts.
// A name that is not in the note table (such as "REST") is a rest.
type NoteEvent struct {
	Note     string
	Duration time.Duration
}

// Melody is a named sequence of note events
type Melody struct {
	Name  string
	Notes []NoteEvent
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Melodies is the built-in melody table
var Melodies = []Melody{
	{"Twinkle Twinkle", []NoteEvent{
		{"C4", ms(500)}, {"C4", ms(500)}, {"G4", ms(500)}, {"G4", ms(500)},
		{"A4", ms(500)}, {"A4", ms(500)}, {"G4", ms(1000)},
		{"F4", ms(500)}, {"F4", ms(500)}, {"E4", ms(500)}, {"E4", ms(500)},
		{"D4", ms(500)}, {"D4", ms(500)}, {"C4", ms(1000)},
	}},
	{"Happy Birthday", []NoteEvent{
		{"C4", ms(250)}, {"C4", ms(250)}, {"D4", ms(500)}, {"C4", ms(500)},
		{"F4", ms(500)}, {"E4", ms(1000)},
		{"C4", ms(250)}, {"C4", ms(250)}, {"D4", ms(500)}, {"C4", ms(500)},
		{"G4", ms(500)}, {"F4", ms(1000)},
	}},
	{"Ode to Joy", []NoteEvent{
		{"E4", ms(500)}, {"E4", ms(500)}, {"F4", ms(500)}, {"G4", ms(500)},
		{"G4", ms(500)}, {"F4", ms(500)}, {"E4", ms(500)}, {"D4", ms(500)},
		{"C4", ms(500)}, {"C4", ms(500)}, {"D4", ms(500)}, {"E4", ms(500)},
		{"E4", ms(750)}, {"D4", ms(250)}, {"D4", ms(1000)},
	}},
	{"Mary Had a Little Lamb", []NoteEvent{
		{"E4", ms(500)}, {"D4", ms(500)}, {"C4", ms(500)}, {"D4", ms(500)},
		{"E4", ms(500)}, {"E4", ms(500)}, {"E4", ms(1000)},
		{"D4", ms(500)}, {"D4", ms(500)}, {"D4", ms(1000)},
		{"E4", ms(500)}, {"G4", ms(500)}, {"G4", ms(1000)},
	}},
	{"Chromatic Scale", []NoteEvent{
		{"C4", ms(200)}, {"C#4", ms(200)}, {"D4", ms(200)}, {"D#4", ms(200)},
		{"E4", ms(200)}, {"F4", ms(200)}, {"F#4", ms(200)}, {"G4", ms(200)},
		{"G#4", ms(200)}, {"A4", ms(200)}, {"A#4", ms(200)}, {"B4", ms(200)},
		{"C5", ms(400)},
	}},
	{"Major Arpeggio", []NoteEvent{
		{"C4", ms(300)}, {"E4", ms(300)}, {"G4", ms(300)}, {"C5", ms(300)},
		{"G4", ms(300)}, {"E4", ms(300)}, {"C4", ms(600)},
	}},
	{"Minor Pentatonic", []NoteEvent{
		{"A3", ms(400)}, {"C4", ms(400)}, {"D4", ms(400)}, {"E4", ms(400)},
		{"G4", ms(400)}, {"A4", ms(400)}, {"G4", ms(400)}, {"E4", ms(400)},
		{"D4", ms(400)}, {"C4", ms(400)}, {"A3", ms(800)},
	}},
	{"Jazz Lick", []NoteEvent{
		{"C4", ms(200)}, {"E4", ms(200)}, {"G4", ms(200)}, {"A#4", ms(200)},
		{"A4", ms(400)}, {"F4", ms(200)}, {"D4", ms(400)},
		{"G4", ms(200)}, {"E4", ms(200)}, {"C4", ms(600)},
	}},
	{"Bach Invention", []NoteEvent{
		{"C4", ms(200)}, {"D4", ms(200)}, {"E4", ms(200)}, {"F4", ms(200)},
		{"D4", ms(200)}, {"E4", ms(200)}, {"C4", ms(400)},
		{"G4", ms(200)}, {"F4", ms(200)}, {"E4", ms(200)}, {"D4", ms(200)},
		{"B3", ms(200)}, {"C4", ms(600)},
	}},
	{"Synth Demo", []NoteEvent{
		{"C4", ms(150)}, {"E4", ms(150)}, {"G4", ms(150)}, {"C5", ms(150)},
		{"E5", ms(150)}, {"G5", ms(150)}, {"E5", ms(150)}, {"C5", ms(150)},
		{"G4", ms(150)}, {"E4", ms(150)}, {"C4", ms(300)},
		{"REST", ms(300)},
		{"F4", ms(150)}, {"A4", ms(150)}, {"C5", ms(150)}, {"F5", ms(150)},
		{"C5", ms(150)}, {"A4", ms(150)}, {"F4", ms(300)},
	}},
}

// Scale is the fixed scale used by demo mode
var Scale = Melody{"Scale", []NoteEvent{
	{"C4", ms(300)}, {"D4", ms(300)}, {"E4", ms(300)}, {"F4", ms(300)},
	{"G4", ms(300)}, {"A4", ms(300)}, {"B4", ms(300)}, {"C5", ms(600)},
}}

// FindMelody looks a melody up by 1-based index or case-insensitive
// substring of its name
func FindMelody(name string) (Melody, bool) {
	if num, err := strconv.Atoi(name); err == nil {
		if num > 0 && num <= len(Melodies) {
			return Melodies[num-1], true
		}
		return Melody{}, false
	}
	for _, m := range Melodies {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(name)) {
			return m, true
		}
	}
	return Melody{}, false
}

// Duration returns the total play time of the melody
func (m Melody) Duration() time.Duration {
	var total time.Duration
	for _, n := range m.Notes {
		total += n.Duration
	}
	return total
}
