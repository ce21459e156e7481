// ABOUTME: Waveform asset type for sample playback and percussion voices
// ABOUTME: Holds mono PCM data in its native 8-bit or 16-bit width
package asset

import (
	"fmt"

	"github.com/funkfinger/sampler-go/internal/audio"
)

// Asset is a named mono waveform at the engine sample rate. Data keeps
// its source bit width: the sample loop is 16-bit, percussion one-shots
// are 8-bit signed.
type Asset struct {
	name  string
	bits  int
	pcm16 []int16
	pcm8  []int8
}

// FromInt16 wraps 16-bit samples as an asset
func FromInt16(name string, samples []int16) *Asset {
	return &Asset{name: name, bits: 16, pcm16: samples}
}

// FromInt8 wraps 8-bit signed samples as an asset
func FromInt8(name string, samples []int8) *Asset {
	return &Asset{name: name, bits: 8, pcm8: samples}
}

// Name returns the asset name
func (a *Asset) Name() string { return a.name }

// Bits returns the native sample width (8 or 16)
func (a *Asset) Bits() int { return a.bits }

// Len returns the total sample count
func (a *Asset) Len() int {
	if a.bits == 8 {
		return len(a.pcm8)
	}
	return len(a.pcm16)
}

// At returns the sample at index i as int16. The index wraps modulo the
// asset length, so a cursor slightly past the end still reads valid
// data. 8-bit samples are left-justified into the 16-bit range.
func (a *Asset) At(i int) int16 {
	n := a.Len()
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	if a.bits == 8 {
		return audio.SampleFromInt8(a.pcm8[i])
	}
	return a.pcm16[i]
}

// At8 returns the sample at index i in the 8-bit domain, with the same
// modulo wraparound as At. 16-bit samples are narrowed.
func (a *Asset) At8(i int) int8 {
	n := a.Len()
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	if a.bits == 8 {
		return a.pcm8[i]
	}
	return audio.SampleToInt8(a.pcm16[i])
}

// Duration returns the asset length in seconds at the engine rate
func (a *Asset) Duration() float64 {
	return float64(a.Len()) / float64(audio.SampleRate)
}

func (a *Asset) String() string {
	return fmt.Sprintf("%s (%d-bit, %d samples, %.2fs)", a.name, a.bits, a.Len(), a.Duration())
}

// resampleLinear converts samples from one rate to another with linear
// interpolation. Used by loaders to normalize assets to the engine rate.
func resampleLinear(input []int16, inputRate, outputRate int) []int16 {
	if inputRate == outputRate || len(input) == 0 {
		return input
	}

	ratio := float64(inputRate) / float64(outputRate)
	outputFrames := int(float64(len(input)) / ratio)
	if outputFrames == 0 {
		outputFrames = 1
	}

	output := make([]int16, outputFrames)
	position := 0.0
	for i := range output {
		idx := int(position)
		if idx >= len(input)-1 {
			output[i] = input[len(input)-1]
			continue
		}
		frac := position - float64(idx)
		s1 := float64(input[idx])
		s2 := float64(input[idx+1])
		output[i] = int16(s1*(1.0-frac) + s2*frac)
		position += ratio
	}

	return output
}
