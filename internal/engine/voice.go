// ABOUTME: One-shot percussion voice pool
// ABOUTME: Four fixed voices with integer cursors mixed through a wide accumulator
package engine

import (
	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
)

// NumVoices is the fixed pool size
const NumVoices = 4

// Voice is a one-shot sample player: an integer cursor over an 8-bit
// asset and a playing flag that clears itself when the asset runs out.
type Voice struct {
	src     *asset.Asset
	cursor  int
	playing bool
}

// Playing reports whether the voice is currently sounding
func (v *Voice) Playing() bool { return v.playing }

// Name returns the underlying asset name
func (v *Voice) Name() string { return v.src.Name() }

// VoicePool holds the fixed set of percussion voices, created once at
// startup. Triggers restart voices from the top; exhausted voices fall
// silent on their own.
type VoicePool struct {
	voices [NumVoices]*Voice
}

// NewVoicePool creates the pool over four one-shot assets
func NewVoicePool(assets [NumVoices]*asset.Asset) *VoicePool {
	p := &VoicePool{}
	for i, a := range assets {
		p.voices[i] = &Voice{src: a}
	}
	return p
}

// Trigger restarts the voice at index from the beginning. An index
// outside the pool is a silent no-op.
func (p *VoicePool) Trigger(index int) {
	if index < 0 || index >= NumVoices {
		return
	}
	p.voices[index].cursor = 0
	p.voices[index].playing = true
}

// Voice returns the voice at index, or nil when out of range
func (p *VoicePool) Voice(index int) *Voice {
	if index < 0 || index >= NumVoices {
		return nil
	}
	return p.voices[index]
}

// Active returns the number of voices currently playing
func (p *VoicePool) Active() int {
	n := 0
	for _, v := range p.voices {
		if v.playing {
			n++
		}
	}
	return n
}

// Mix writes one buffer of the pool's combined output. Per sample
// position, every playing voice contributes one 8-bit sample into a
// wide accumulator and advances its cursor; the sum saturates to the
// 8-bit range (never wraps) before widening into the 16-bit buffer.
// Idle voices contribute silence, so an empty pool yields a zero
// buffer.
func (p *VoicePool) Mix(buf []int16) {
	for i := range buf {
		var sum int32
		for _, v := range p.voices {
			if !v.playing {
				continue
			}
			if v.cursor >= v.src.Len() {
				v.playing = false
				continue
			}
			sum += int32(v.src.At8(v.cursor))
			v.cursor++
			if v.cursor >= v.src.Len() {
				v.playing = false
			}
		}
		buf[i] = audio.SampleFromInt8(audio.ClampInt8(sum))
	}
}
