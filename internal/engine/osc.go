// ABOUTME: Sine wave oscillator for tone mode
// ABOUTME: Keeps a running phase counter so buffers join without clicks
package engine

import (
	"math"

	"github.com/funkfinger/sampler-go/internal/audio"
)

// Oscillator generates a sine tone. The sample counter advances once
// per generated sample and is never reset by control changes, so the
// waveform stays phase-continuous across buffer boundaries.
type Oscillator struct {
	sampleIndex uint64
}

// Fill writes a sine wave into buf at the given frequency and
// amplitude (0..1), advancing the phase counter.
func (o *Oscillator) Fill(buf []int16, frequency, amplitude float64) {
	for i := range buf {
		t := float64(o.sampleIndex) / float64(audio.SampleRate)
		sample := amplitude * math.Sin(2*math.Pi*frequency*t)
		buf[i] = int16(sample * 32767.0)
		o.sampleIndex++
	}
}

// SampleIndex returns the current phase counter position
func (o *Oscillator) SampleIndex() uint64 {
	return o.sampleIndex
}
