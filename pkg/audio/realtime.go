// Package audio binds a sample source to the audio device and to WAV files
package audio

import (
	"encoding/binary"

	"github.com/ebitengine/oto/v3"
)

// Source produces mono float64 samples in batches. The implementation
// must tolerate being pulled from the audio device's own goroutine.
type Source interface {
	GenerateSamples(buffer []float64)
}

// RealtimeOutput pulls samples from a Source and plays them on the
// default audio device.
type RealtimeOutput struct {
	source    Source
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	buffer    []float64
	running   bool
}

// NewRealtimeOutput opens the audio device and starts pulling. Device
// setup failures are returned here; after this point the output never
// fails, it only goes silent when closed.
func NewRealtimeOutput(source Source, sampleRate int) (*RealtimeOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1, // Mono
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	rt := &RealtimeOutput{
		source:  source,
		otoCtx:  otoCtx,
		buffer:  make([]float64, 512),
		running: true,
	}

	rt.otoPlayer = otoCtx.NewPlayer(&sourceStream{rt: rt})
	rt.otoPlayer.SetBufferSize(sampleRate / 10) // 100ms buffer
	rt.otoPlayer.Play()

	return rt, nil
}

// Close stops the audio output
func (rt *RealtimeOutput) Close() {
	rt.running = false
	if rt.otoPlayer != nil {
		rt.otoPlayer.Close()
	}
}

// sourceStream implements io.Reader for oto
type sourceStream struct {
	rt *RealtimeOutput
}

func (s *sourceStream) Read(buf []byte) (int, error) {
	if !s.rt.running {
		// Fill with silence
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	samples := len(buf) / 2 // 16-bit = 2 bytes per sample
	if samples > len(s.rt.buffer) {
		s.rt.buffer = make([]float64, samples)
	}

	s.rt.source.GenerateSamples(s.rt.buffer[:samples])

	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(pcm16(s.rt.buffer[i])))
	}

	return samples * 2, nil
}

// pcm16 clamps a float sample and converts it to 16-bit signed PCM
func pcm16(sample float64) int16 {
	if sample > 1.0 {
		sample = 1.0
	}
	if sample < -1.0 {
		sample = -1.0
	}
	return int16(sample * 32767)
}
