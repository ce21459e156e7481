// ABOUTME: Pitch-shift stage for independent speed and pitch control
// ABOUTME: Re-reads the current tick's buffer through its own fractional position
package engine

// PitchStage resamples a buffer already produced this tick, decoupling
// pitch from playback speed. Unlike the asset resampler, its position
// restarts at zero (fraction discarded) whenever it would read past
// the end of the input buffer: pitch looping is buffer-local and drops
// fractional phase at each restart, where the asset resampler wraps
// phase-continuously over the whole asset.
type PitchStage struct {
	position float64
}

// NewPitchStage creates a pitch stage with its position at zero
func NewPitchStage() *PitchStage {
	return &PitchStage{}
}

// Shift reads input through the fractional position at pitchRatio,
// writing len(output) samples. The position persists across ticks.
func (p *PitchStage) Shift(input, output []int16, pitchRatio float64) {
	if len(input) < 2 {
		for i := range output {
			output[i] = 0
		}
		return
	}

	for i := range output {
		index := int(p.position)
		fraction := p.position - float64(index)

		// Restart truncates: position snaps to zero, fraction dropped
		if index >= len(input)-1 {
			p.position = 0.0
			index = 0
			fraction = 0.0
		}

		output[i] = lerp(input[index], input[index+1], fraction)

		p.position += pitchRatio
	}
}

// Position returns the current fractional read position
func (p *PitchStage) Position() float64 {
	return p.position
}
