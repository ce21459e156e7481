// ABOUTME: Speaker output using the oto library
// ABOUTME: Feeds a persistent player through a pipe with software volume control
package output

import (
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"

	"github.com/funkfinger/sampler-go/internal/audio"
)

// Speaker plays PCM buffers on the default audio device. A persistent
// oto player pulls from a pipe; Write blocks while the device drains,
// which paces a producer running ahead of real time.
type Speaker struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	volume     int
	muted      bool
	ready      bool
}

// NewSpeaker initializes the audio device for the given format. Device
// setup failure is returned to the caller; there is no silent fallback.
func NewSpeaker(format audio.Format) (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	s := &Speaker{
		otoCtx: ctx,
		format: format,
		volume: 100,
	}

	s.pipeReader, s.pipeWriter = io.Pipe()
	s.player = s.otoCtx.NewPlayer(s.pipeReader)
	s.player.Play()
	s.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels",
		format.SampleRate, format.Channels)

	return s, nil
}

// Write queues one buffer for playback
func (s *Speaker) Write(samples []int16) (int, error) {
	if !s.ready {
		return 0, fmt.Errorf("output not initialized")
	}

	scaled := applyVolume(samples, s.volume, s.muted)

	if _, err := s.pipeWriter.Write(audio.BytesFromInt16(scaled)); err != nil {
		return 0, fmt.Errorf("pipe write failed: %w", err)
	}

	return len(samples), nil
}

// SetVolume sets the volume (0-100)
func (s *Speaker) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	s.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (s *Speaker) SetMuted(muted bool) {
	s.muted = muted
	log.Printf("Muted: %v", muted)
}

// Volume returns current volume
func (s *Speaker) Volume() int {
	return s.volume
}

// Muted returns mute state
func (s *Speaker) Muted() bool {
	return s.muted
}

// Close tears down the player and suspends the device context
func (s *Speaker) Close() error {
	if s.pipeWriter != nil {
		s.pipeWriter.Close()
		s.pipeWriter = nil
	}
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	if s.pipeReader != nil {
		s.pipeReader.Close()
		s.pipeReader = nil
	}
	if s.otoCtx != nil {
		s.otoCtx.Suspend()
		s.ready = false
	}
	return nil
}

// applyVolume applies volume and mute to samples
func applyVolume(samples []int16, volume int, muted bool) []int16 {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return samples
	}

	result := make([]int16, len(samples))
	for i, sample := range samples {
		result[i] = int16(float64(sample) * multiplier)
	}

	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
