// ABOUTME: WAV file recording sink
// ABOUTME: Streams PCM to disk and patches the RIFF sizes on close
package output

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/funkfinger/sampler-go/internal/audio"
)

const wavHeaderSize = 44

// WAVWriter records every buffer written to it into a PCM WAV file.
// The RIFF and data chunk sizes are unknown until recording stops, so
// the header is written with placeholders and patched on Close.
type WAVWriter struct {
	f      *os.File
	format audio.Format
	frames int
	closed bool
}

// NewWAVWriter creates the file and writes the provisional header
func NewWAVWriter(path string, format audio.Format) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}

	w := &WAVWriter{f: f, format: format}
	if err := w.writeHeader(0); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write wav header: %w", err)
	}

	log.Printf("Recording to %s (%dHz, %d channels)", path, format.SampleRate, format.Channels)
	return w, nil
}

// Write appends one buffer of samples to the file
func (w *WAVWriter) Write(samples []int16) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("wav writer is closed")
	}

	if _, err := w.f.Write(audio.BytesFromInt16(samples)); err != nil {
		return 0, fmt.Errorf("wav write failed: %w", err)
	}

	w.frames += len(samples) / w.format.Channels
	return len(samples), nil
}

// Frames returns the number of sample frames written so far
func (w *WAVWriter) Frames() int {
	return w.frames
}

// Close patches the chunk sizes and closes the file
func (w *WAVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	dataSize := w.frames * w.format.Channels * (w.format.BitDepth / 8)

	if _, err := w.f.Seek(0, 0); err != nil {
		w.f.Close()
		return fmt.Errorf("wav header seek failed: %w", err)
	}
	if err := w.writeHeader(uint32(dataSize)); err != nil {
		w.f.Close()
		return fmt.Errorf("wav header patch failed: %w", err)
	}

	if err := w.f.Close(); err != nil {
		return fmt.Errorf("wav close failed: %w", err)
	}

	log.Printf("Recorded %d frames (%.2fs)", w.frames,
		float64(w.frames)/float64(w.format.SampleRate))
	return nil
}

func (w *WAVWriter) writeHeader(dataSize uint32) error {
	bytesPerSample := w.format.BitDepth / 8
	byteRate := w.format.SampleRate * w.format.Channels * bytesPerSample
	blockAlign := w.format.Channels * bytesPerSample

	if _, err := w.f.WriteString("RIFF"); err != nil {
		return err
	}
	if err := binary.Write(w.f, binary.LittleEndian, uint32(wavHeaderSize-8)+dataSize); err != nil {
		return err
	}
	if _, err := w.f.WriteString("WAVE"); err != nil {
		return err
	}

	if _, err := w.f.WriteString("fmt "); err != nil {
		return err
	}
	fields := []interface{}{
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(w.format.Channels),
		uint32(w.format.SampleRate),
		uint32(byteRate),
		uint16(blockAlign),
		uint16(w.format.BitDepth),
	}
	for _, field := range fields {
		if err := binary.Write(w.f, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	if _, err := w.f.WriteString("data"); err != nil {
		return err
	}
	return binary.Write(w.f, binary.LittleEndian, dataSize)
}
