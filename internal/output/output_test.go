// ABOUTME: Tests for output sinks
// ABOUTME: Tests volume control, WAV recording, tee fan-out, and the null sink
package output

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
)

// recordSink captures writes for fan-out assertions
type recordSink struct {
	buffers   [][]int16
	failWrite bool
	closed    bool
}

func (s *recordSink) Write(samples []int16) (int, error) {
	if s.failWrite {
		return 0, errors.New("sink rejected write")
	}
	cp := make([]int16, len(samples))
	copy(cp, samples)
	s.buffers = append(s.buffers, cp)
	return len(samples), nil
}

func (s *recordSink) Close() error {
	s.closed = true
	return nil
}

func TestVolumeMultiplier(t *testing.T) {
	tests := []struct {
		volume   int
		muted    bool
		expected float64
	}{
		{100, false, 1.0},
		{50, false, 0.5},
		{0, false, 0.0},
		{80, true, 0.0}, // Muted overrides volume
	}

	for _, tt := range tests {
		result := getVolumeMultiplier(tt.volume, tt.muted)
		if result != tt.expected {
			t.Errorf("volume=%d, muted=%v: expected %f, got %f",
				tt.volume, tt.muted, tt.expected, result)
		}
	}
}

func TestApplyVolume(t *testing.T) {
	samples := []int16{1000, -1000, 500, -500}

	result := applyVolume(samples, 50, false)

	if result[0] != 500 {
		t.Errorf("expected 500, got %d", result[0])
	}
	if result[1] != -500 {
		t.Errorf("expected -500, got %d", result[1])
	}
}

func TestApplyVolumeAtFullVolumeIsPassthrough(t *testing.T) {
	samples := []int16{1000, -1000, 500}

	result := applyVolume(samples, 100, false)

	if &result[0] != &samples[0] {
		t.Error("expected the input slice back at unity volume")
	}
}

func TestApplyVolumeMuted(t *testing.T) {
	samples := []int16{1000, -1000, 500}

	result := applyVolume(samples, 100, true)

	for i, s := range result {
		if s != 0 {
			t.Errorf("sample %d: expected 0, got %d", i, s)
		}
	}
}

func TestWAVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	w, err := NewWAVWriter(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}

	first := []int16{0, 1000, -1000, 32767, -32768}
	second := []int16{10, 20, 30}
	if _, err := w.Write(first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write(second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if w.Frames() != 8 {
		t.Errorf("expected 8 frames, got %d", w.Frames())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	a, err := asset.DecodeWAV("rec", data)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}

	expected := append(append([]int16{}, first...), second...)
	got := make([]int16, a.Len())
	for i := range got {
		got[i] = a.At(i)
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("sample mismatch (-want +got):\n%s", diff)
	}
}

func TestWAVWriterPatchesSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	w, err := NewWAVWriter(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}
	if _, err := w.Write(make([]int16, 100)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(data) != wavHeaderSize+200 {
		t.Fatalf("expected %d bytes, got %d", wavHeaderSize+200, len(data))
	}
	if riffSize := binary.LittleEndian.Uint32(data[4:8]); riffSize != 36+200 {
		t.Errorf("expected RIFF size %d, got %d", 36+200, riffSize)
	}
	if dataSize := binary.LittleEndian.Uint32(data[40:44]); dataSize != 200 {
		t.Errorf("expected data size 200, got %d", dataSize)
	}
}

func TestWAVWriterRejectsWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	w, err := NewWAVWriter(path, audio.DefaultFormat())
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := w.Write([]int16{1, 2, 3}); err == nil {
		t.Error("expected error writing after close")
	}
}

func TestNullCountsFrames(t *testing.T) {
	n := NewNull()

	n.Write(make([]int16, 512))
	n.Write(make([]int16, 512))

	if n.Frames() != 1024 {
		t.Errorf("expected 1024 frames, got %d", n.Frames())
	}
	if err := n.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestTeeFansOutWrites(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{}
	tee := NewTee(a, b)

	samples := []int16{1, 2, 3}
	if _, err := tee.Write(samples); err != nil {
		t.Fatalf("Write: %v", err)
	}

	for name, s := range map[string]*recordSink{"a": a, "b": b} {
		if len(s.buffers) != 1 {
			t.Fatalf("sink %s: expected 1 buffer, got %d", name, len(s.buffers))
		}
		if diff := cmp.Diff(samples, s.buffers[0]); diff != "" {
			t.Errorf("sink %s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestTeeKeepsWritingPastFailedSink(t *testing.T) {
	bad := &recordSink{failWrite: true}
	good := &recordSink{}
	tee := NewTee(bad, good)

	if _, err := tee.Write([]int16{1, 2, 3}); err == nil {
		t.Error("expected failing sink's error to propagate")
	}
	if len(good.buffers) != 1 {
		t.Errorf("expected healthy sink to receive the buffer, got %d", len(good.buffers))
	}
}

func TestTeeCloseClosesAll(t *testing.T) {
	a := &recordSink{}
	b := &recordSink{}
	tee := NewTee(a, b)

	if err := tee.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("expected both sinks closed")
	}
}
