package player

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oisee/fmsynth/pkg/music"
	"github.com/oisee/fmsynth/pkg/synth"
)

const testRate = 1000 // 1 kHz keeps sample counts small and readable

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	voice, err := synth.NewVoice(testRate, synth.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return NewPlayer(voice, testRate)
}

func testMelody() music.Melody {
	return music.Melody{Name: "test", Notes: []music.NoteEvent{
		{Note: "A4", Duration: 100 * time.Millisecond},
		{Note: "REST", Duration: 50 * time.Millisecond},
		{Note: "C4", Duration: 200 * time.Millisecond},
	}}
}

func TestPlayer_TotalSamples(t *testing.T) {
	p := newTestPlayer(t)
	p.SetSegments([]Segment{{Preset: music.Presets[0], Melody: testMelody()}})

	// 100ms + 50ms + 200ms of melody plus the 500ms release tail.
	want := (100 + 50 + 200 + 500) * testRate / 1000
	if got := p.TotalSamples(); got != want {
		t.Errorf("TotalSamples = %d, want %d", got, want)
	}
}

// The player must drive the voice exactly like a caller firing the same
// events by hand: note on at each step start, note off at 80% of the
// step, rests silent, release tail at the end.
func TestPlayer_ScheduleMatchesManualDrive(t *testing.T) {
	preset := music.Presets[0] // Bell
	melody := testMelody()

	p := newTestPlayer(t)
	p.PlayMelody(preset, melody)
	got := make([]float64, p.TotalSamples())
	p.GenerateSamples(got)

	voice, _ := synth.NewVoice(testRate, synth.DefaultParams())
	want := make([]float64, 0, len(got))
	step := func(n int) {
		for i := 0; i < n; i++ {
			want = append(want, voice.NextSample())
		}
	}

	// A4 for 100ms: on for 80, off for 20.
	voice.SetParams(preset.PitchParams(music.NoteFreq("A4")))
	voice.NoteOn()
	step(80)
	voice.NoteOff()
	step(20)
	// REST for 50ms: no events, time passes.
	step(50)
	// C4 for 200ms: on for 160, off for 40.
	voice.SetParams(preset.PitchParams(music.NoteFreq("C4")))
	voice.NoteOn()
	step(160)
	voice.NoteOff()
	step(40)
	// Release tail.
	step(500)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("schedule drive (-want +got):\n%s", diff)
	}
}

func TestPlayer_FinishedAfterSchedule(t *testing.T) {
	p := newTestPlayer(t)
	p.PlayMelody(music.Presets[0], testMelody())

	if p.Finished() {
		t.Fatal("finished before generating anything")
	}

	buf := make([]float64, p.TotalSamples())
	p.GenerateSamples(buf)

	if !p.Finished() {
		t.Error("not finished after generating the full schedule")
	}
	_, _, playing := p.NowPlaying()
	if playing {
		t.Error("still playing after the schedule ended")
	}
}

func TestPlayer_CallbacksFireInOrder(t *testing.T) {
	p := newTestPlayer(t)

	var notes []string
	var segments []string
	p.Callbacks.OnNote = func(preset, note string) {
		notes = append(notes, preset+" "+note)
	}
	p.Callbacks.OnSegment = func(preset string) {
		segments = append(segments, preset)
	}

	p.SetSegments([]Segment{
		{Preset: music.Presets[0], Melody: testMelody()},
		{Preset: music.Presets[1], Melody: testMelody()},
	})
	p.Play()
	buf := make([]float64, p.TotalSamples())
	p.GenerateSamples(buf)

	wantNotes := []string{
		"Bell A4", "Bell C4",
		"Bass A4", "Bass C4",
	}
	if diff := cmp.Diff(wantNotes, notes); diff != "" {
		t.Errorf("notes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Bell", "Bass"}, segments); diff != "" {
		t.Errorf("segments (-want +got):\n%s", diff)
	}
}

func TestPlayer_StopReleasesVoice(t *testing.T) {
	p := newTestPlayer(t)
	p.PlayMelody(music.Presets[0], testMelody())

	buf := make([]float64, 40)
	p.GenerateSamples(buf)
	_, note, playing := p.NowPlaying()
	if !playing || note != "A4" {
		t.Fatalf("NowPlaying = %q, %v; want A4, true", note, playing)
	}

	p.Stop()
	_, note, playing = p.NowPlaying()
	if playing || note != "" {
		t.Errorf("after Stop: NowPlaying = %q, %v", note, playing)
	}

	// The voice rings out its release instead of cutting hard, then
	// falls silent.
	tail := make([]float64, testRate)
	p.GenerateSamples(tail)
	if p.Voice.Active() {
		t.Error("voice still active a full second after Stop")
	}
	if tail[0] == 0 {
		t.Error("release tail expected directly after Stop, got silence")
	}
}

func TestPlayer_ReplaySchedule(t *testing.T) {
	p := newTestPlayer(t)
	p.PlayMelody(music.Presets[0], testMelody())
	first := make([]float64, p.TotalSamples())
	p.GenerateSamples(first)

	// Replaying the same schedule restarts from the top.
	p.Play()
	second := make([]float64, p.TotalSamples())
	p.GenerateSamples(second)

	_, _, playing := p.NowPlaying()
	if playing {
		t.Error("still playing after second full run")
	}
	if !p.Finished() {
		t.Error("second run did not finish")
	}
}
