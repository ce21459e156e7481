// ABOUTME: Built-in waveform bank embedded at build time
// ABOUTME: Provides the default sample loop and four percussion one-shots
package asset

import (
	"embed"
	"fmt"
)

//go:embed bank/*.wav
var bankFS embed.FS

// Voice slot names, in trigger order. Regenerate the underlying files
// with tools/mkbank.py.
var voiceNames = [4]string{"kick", "snare", "hat", "clap"}

// Bank holds the built-in assets: the 16-bit sample loop played by the
// sample modes and the four 8-bit one-shots behind the voice pool.
type Bank struct {
	Loop   *Asset
	Voices [4]*Asset
}

// LoadBank decodes the embedded waveform bank
func LoadBank() (*Bank, error) {
	loop, err := loadEmbedded("loop")
	if err != nil {
		return nil, err
	}

	b := &Bank{Loop: loop}
	for i, name := range voiceNames {
		a, err := loadEmbedded(name)
		if err != nil {
			return nil, err
		}
		if a.Bits() != 8 {
			return nil, fmt.Errorf("voice asset %q must be 8-bit, got %d-bit", name, a.Bits())
		}
		b.Voices[i] = a
	}

	return b, nil
}

// VoiceName returns the percussion slot name for a pool index, or an
// empty string when out of range.
func VoiceName(i int) string {
	if i < 0 || i >= len(voiceNames) {
		return ""
	}
	return voiceNames[i]
}

func loadEmbedded(name string) (*Asset, error) {
	data, err := bankFS.ReadFile("bank/" + name + ".wav")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded asset %q: %w", name, err)
	}

	a, err := DecodeWAV(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded asset %q: %w", name, err)
	}
	return a, nil
}
