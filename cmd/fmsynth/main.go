package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oisee/fmsynth/pkg/audio"
	"github.com/oisee/fmsynth/pkg/music"
	"github.com/oisee/fmsynth/pkg/player"
	"github.com/oisee/fmsynth/pkg/synth"
	"github.com/oisee/fmsynth/pkg/tui"
)

func main() {
	rate := flag.Int("rate", 44100, "Sample rate in Hz")
	list := flag.Bool("list", false, "List presets and melodies, then exit")
	presetName := flag.String("preset", "", "Preset to play (number or name)")
	melodyName := flag.String("melody", "", "Melody to play (number or name)")
	wavPath := flag.String("wav", "", "Render to a WAV file instead of the audio device")
	flag.Parse()

	if *list {
		fmt.Println("Presets:")
		for i, p := range music.Presets {
			fmt.Printf("  %2d. %s\n", i+1, p.Name)
		}
		fmt.Println("Melodies:")
		for i, m := range music.Melodies {
			fmt.Printf("  %2d. %s\n", i+1, m.Name)
		}
		return
	}

	voice, err := synth.NewVoice(float64(*rate), synth.DefaultParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := player.NewPlayer(voice, *rate)

	// Headless: a preset and melody were given on the command line
	if *presetName != "" || *melodyName != "" {
		preset, ok := music.FindPreset(*presetName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Preset %q not found, try -list\n", *presetName)
			os.Exit(1)
		}
		melody, ok := music.FindMelody(*melodyName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Melody %q not found, try -list\n", *melodyName)
			os.Exit(1)
		}

		if *wavPath != "" {
			if err := renderWAV(p, preset, melody, *rate, *wavPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing WAV: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Rendered '%s' with '%s' to %s\n", melody.Name, preset.Name, *wavPath)
			return
		}

		if err := playLive(p, preset, melody, *rate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive: audio device plus TUI
	out, err := audio.NewRealtimeOutput(p, *rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	model := tui.NewModel(p)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// renderWAV renders the melody offline, without an audio device
func renderWAV(p *player.Player, preset music.Preset, melody music.Melody, rate int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p.PlayMelody(preset, melody)
	return audio.ExportWAV(p, f, rate, p.TotalSamples())
}

// playLive plays the melody on the audio device and waits for it to end
func playLive(p *player.Player, preset music.Preset, melody music.Melody, rate int) error {
	p.Callbacks.OnNote = func(presetName, note string) {
		fmt.Printf("  %s %s\n", presetName, note)
	}

	out, err := audio.NewRealtimeOutput(p, rate)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Playing '%s' with '%s'...\n", melody.Name, preset.Name)
	p.PlayMelody(preset, melody)
	for !p.Finished() {
		time.Sleep(50 * time.Millisecond)
	}
	// Let the device buffer drain before closing
	time.Sleep(200 * time.Millisecond)
	fmt.Println("Done.")
	return nil
}
