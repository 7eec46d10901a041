// Package player sequences melodies onto a voice
package player

import (
	"sync"
	"time"

	"github.com/oisee/fmsynth/pkg/music"
	"github.com/oisee/fmsynth/pkg/synth"
)

// ReleaseTail is how long the voice keeps sounding after the last note
const ReleaseTail = 500 * time.Millisecond

// gateNum/gateDen split each note step: the note sounds for 80% of its
// duration and releases for the remaining 20%.
const (
	gateNum = 8
	gateDen = 10
)

// Segment pairs a preset with a melody to play it on
type Segment struct {
	Preset music.Preset
	Melody music.Melody
}

// Callbacks for playback events. They run on the audio goroutine while
// the player lock is held, so keep them short.
type Callbacks struct {
	OnNote    func(preset, note string)
	OnSegment func(preset string)
}

type eventKind int

const (
	evNoteOn eventKind = iota
	evNoteOff
	evSegment
)

// event is a control action scheduled at a sample offset
type event struct {
	at     int
	kind   eventKind
	params synth.Params
	preset string
	note   string
}

// Player drives note on/off events into a voice while samples are being
// pulled. Event timing is counted in samples inside GenerateSamples, so
// an offline render of the same segments is sample-exact and a realtime
// render hits the same offsets regardless of the device's buffer size.
type Player struct {
	Voice      *synth.Voice
	SampleRate int
	Callbacks  Callbacks

	mu       sync.Mutex
	events   []event
	eventIdx int
	pos      int
	total    int
	playing  bool

	curPreset string
	curNote   string
}

// NewPlayer creates a player around an existing voice
func NewPlayer(voice *synth.Voice, sampleRate int) *Player {
	return &Player{
		Voice:      voice,
		SampleRate: sampleRate,
	}
}

// samples converts a duration to a sample count
func (p *Player) samples(d time.Duration) int {
	return int(d.Seconds() * float64(p.SampleRate))
}

// SetSegments compiles segments into a schedule and rewinds. Notes that
// are not in the note table (rests) only advance time. Each segment
// ends with a release tail so the last note rings out.
func (p *Player) SetSegments(segments []Segment) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = p.events[:0]
	pos := 0
	for _, seg := range segments {
		p.events = append(p.events, event{at: pos, kind: evSegment, preset: seg.Preset.Name})
		for _, n := range seg.Melody.Notes {
			d := p.samples(n.Duration)
			if freq := music.NoteFreq(n.Note); freq > 0 {
				p.events = append(p.events, event{
					at:     pos,
					kind:   evNoteOn,
					params: seg.Preset.PitchParams(freq),
					preset: seg.Preset.Name,
					note:   n.Note,
				})
				p.events = append(p.events, event{at: pos + d*gateNum/gateDen, kind: evNoteOff})
			}
			pos += d
		}
		pos += p.samples(ReleaseTail)
	}
	p.total = pos
	p.eventIdx = 0
	p.pos = 0
}

// PlayMelody schedules a single melody with a preset and starts it
func (p *Player) PlayMelody(preset music.Preset, melody music.Melody) {
	p.SetSegments([]Segment{{Preset: preset, Melody: melody}})
	p.Play()
}

// Play starts or restarts playback of the current schedule
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventIdx = 0
	p.pos = 0
	p.playing = true
}

// Stop halts playback and releases the voice
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.curNote = ""
	p.Voice.NoteOff()
}

// GenerateSamples fills the buffer from the voice, firing any control
// events that fall inside it. Implements audio.Source.
func (p *Player) GenerateSamples(buffer []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range buffer {
		if p.playing {
			for p.eventIdx < len(p.events) && p.events[p.eventIdx].at <= p.pos {
				p.fire(p.events[p.eventIdx])
				p.eventIdx++
			}
			p.pos++
			if p.pos >= p.total {
				p.playing = false
				p.curNote = ""
			}
		}
		// The voice keeps producing when stopped so release tails ring
		// out instead of cutting off.
		buffer[i] = p.Voice.NextSample()
	}
}

func (p *Player) fire(ev event) {
	switch ev.kind {
	case evSegment:
		p.curPreset = ev.preset
		if p.Callbacks.OnSegment != nil {
			p.Callbacks.OnSegment(ev.preset)
		}
	case evNoteOn:
		p.Voice.SetParams(ev.params)
		p.Voice.NoteOn()
		p.curNote = ev.note
		if p.Callbacks.OnNote != nil {
			p.Callbacks.OnNote(ev.preset, ev.note)
		}
	case evNoteOff:
		p.Voice.NoteOff()
	}
}

// TotalSamples returns the length of the current schedule in samples
func (p *Player) TotalSamples() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Finished reports whether the schedule has run to its end
func (p *Player) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.playing && p.pos >= p.total
}

// NowPlaying returns the current preset name, note name and play state
func (p *Player) NowPlaying() (preset, note string, playing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.curPreset, p.curNote, p.playing
}
