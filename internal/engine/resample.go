// ABOUTME: Fractional-rate resampler for sample playback
// ABOUTME: Linear interpolation with phase-preserving wraparound looping
package engine

import (
	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
)

// Resampler reads an asset through a fractional cursor, producing
// output at an arbitrary rate with linear interpolation. When the
// cursor reaches the end of the asset it wraps by subtracting the
// total length, keeping the sub-sample fractional offset so the loop
// is phase-continuous. The cursor persists across fills.
type Resampler struct {
	src    *asset.Asset
	cursor float64
}

// NewResampler creates a resampler over the given asset
func NewResampler(src *asset.Asset) *Resampler {
	return &Resampler{src: src}
}

// Fill produces len(buf) samples at the given playback rate
func (r *Resampler) Fill(buf []int16, rate float64) {
	total := r.src.Len()
	if total < 2 {
		for i := range buf {
			buf[i] = r.src.At(0)
		}
		return
	}

	for i := range buf {
		index := int(r.cursor)
		fraction := r.cursor - float64(index)

		// Wrap keeps the fractional phase instead of snapping to zero
		if index >= total-1 {
			r.cursor -= float64(total)
			index = int(r.cursor)
			fraction = r.cursor - float64(index)
		}

		// Asset accessors wrap the index themselves, so a cursor the
		// correction left slightly out of range still reads safely
		sample1 := r.src.At(index)
		sample2 := r.src.At(index + 1)

		buf[i] = lerp(sample1, sample2, fraction)

		r.cursor += rate
	}
}

// Cursor returns the current fractional position
func (r *Resampler) Cursor() float64 {
	return r.cursor
}

// Source returns the asset being read
func (r *Resampler) Source() *asset.Asset {
	return r.src
}

// SetSource swaps the asset and rewinds the cursor
func (r *Resampler) SetSource(src *asset.Asset) {
	r.src = src
	r.cursor = 0.0
}

// lerp interpolates between two adjacent samples. Truncates toward
// zero like the rest of the integer pipeline; the clamp only engages
// when a wrap leaves the fraction outside [0, 1).
func lerp(sample1, sample2 int16, fraction float64) int16 {
	v := float64(sample1) + float64(int32(sample2)-int32(sample1))*fraction
	return audio.ClampInt16(int32(v))
}
