package audio

import (
	"encoding/binary"
	"io"
)

// WAVWriter writes mono 16-bit audio in WAV format
type WAVWriter struct {
	writer     io.Writer
	sampleRate int
	channels   int
}

// NewWAVWriter creates a WAV writer
func NewWAVWriter(w io.Writer, sampleRate, channels int) *WAVWriter {
	return &WAVWriter{
		writer:     w,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// WriteHeader writes the WAV header for dataSize bytes of PCM
func (w *WAVWriter) WriteHeader(dataSize int) error {
	// RIFF header
	w.writer.Write([]byte("RIFF"))
	binary.Write(w.writer, binary.LittleEndian, uint32(dataSize+36))
	w.writer.Write([]byte("WAVE"))

	// fmt chunk
	w.writer.Write([]byte("fmt "))
	binary.Write(w.writer, binary.LittleEndian, uint32(16))           // Chunk size
	binary.Write(w.writer, binary.LittleEndian, uint16(1))            // PCM format
	binary.Write(w.writer, binary.LittleEndian, uint16(w.channels))   // Channels
	binary.Write(w.writer, binary.LittleEndian, uint32(w.sampleRate)) // Sample rate
	byteRate := w.sampleRate * w.channels * 2
	binary.Write(w.writer, binary.LittleEndian, uint32(byteRate)) // Byte rate
	blockAlign := w.channels * 2
	binary.Write(w.writer, binary.LittleEndian, uint16(blockAlign)) // Block align
	binary.Write(w.writer, binary.LittleEndian, uint16(16))         // Bits per sample

	// data chunk header
	w.writer.Write([]byte("data"))
	return binary.Write(w.writer, binary.LittleEndian, uint32(dataSize))
}

// WriteSamples writes float samples as clamped 16-bit PCM
func (w *WAVWriter) WriteSamples(samples []float64) error {
	for _, s := range samples {
		if err := binary.Write(w.writer, binary.LittleEndian, pcm16(s)); err != nil {
			return err
		}
	}
	return nil
}

// ExportWAV renders totalSamples samples from the source into a mono
// WAV stream.
func ExportWAV(source Source, writer io.Writer, sampleRate, totalSamples int) error {
	dataSize := totalSamples * 2 // 16-bit mono

	wavWriter := NewWAVWriter(writer, sampleRate, 1)
	if err := wavWriter.WriteHeader(dataSize); err != nil {
		return err
	}

	chunkSize := 4096
	buffer := make([]float64, chunkSize)
	for written := 0; written < totalSamples; {
		remaining := totalSamples - written
		if remaining < chunkSize {
			buffer = buffer[:remaining]
		}
		source.GenerateSamples(buffer)
		if err := wavWriter.WriteSamples(buffer); err != nil {
			return err
		}
		written += len(buffer)
	}

	return nil
}
