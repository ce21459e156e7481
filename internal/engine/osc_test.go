// ABOUTME: Tests for the sine oscillator
// ABOUTME: Tests formula accuracy, cross-buffer phase continuity, and spectral purity
package engine

import (
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/funkfinger/sampler-go/internal/audio"
)

func TestFillMatchesClosedForm(t *testing.T) {
	osc := &Oscillator{}
	buf := make([]int16, TickFrames)

	osc.Fill(buf, 440.0, 0.3)

	// Each sample must match the closed-form sine within 1 LSB
	for n := 0; n < TickFrames; n++ {
		want := math.Round(0.3 * 32767.0 * math.Sin(2*math.Pi*440.0*float64(n)/float64(audio.SampleRate)))
		if diff := math.Abs(float64(buf[n]) - want); diff > 1.0 {
			t.Fatalf("sample %d: expected %v (±1), got %d", n, want, buf[n])
		}
	}
}

func TestPhaseContinuityAcrossBuffers(t *testing.T) {
	split := &Oscillator{}
	whole := &Oscillator{}

	two := make([]int16, TickFrames*2)
	whole.Fill(two, 440.0, 0.3)

	first := make([]int16, TickFrames)
	second := make([]int16, TickFrames)
	split.Fill(first, 440.0, 0.3)
	split.Fill(second, 440.0, 0.3)

	for i := 0; i < TickFrames; i++ {
		if first[i] != two[i] {
			t.Fatalf("first buffer diverges at %d: expected %d, got %d", i, two[i], first[i])
		}
		if second[i] != two[TickFrames+i] {
			t.Fatalf("second buffer diverges at %d: expected %d, got %d",
				i, two[TickFrames+i], second[i])
		}
	}
}

func TestCounterSurvivesParameterChanges(t *testing.T) {
	osc := &Oscillator{}
	buf := make([]int16, TickFrames)

	osc.Fill(buf, 440.0, 0.3)
	before := osc.SampleIndex()

	// A new frequency reuses the same counter; it never resets
	osc.Fill(buf, 880.0, 0.5)

	if osc.SampleIndex() != before+TickFrames {
		t.Errorf("expected counter %d, got %d", before+TickFrames, osc.SampleIndex())
	}
}

func TestZeroAmplitudeIsSilent(t *testing.T) {
	osc := &Oscillator{}
	buf := make([]int16, TickFrames)

	osc.Fill(buf, 440.0, 0.0)

	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d: expected silence, got %d", i, s)
		}
	}
}

func TestSpectralPeakAt440(t *testing.T) {
	const fftSize = 4096

	osc := &Oscillator{}
	buf := make([]int16, fftSize)
	osc.Fill(buf, 440.0, 0.3)

	in := make([]complex128, fftSize)
	for i, s := range buf {
		in[i] = complex(float64(s)/32767.0, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Find the dominant bin over the positive spectrum (skip DC)
	peakBin := 1
	peakMag := 0.0
	for bin := 1; bin < fftSize/2; bin++ {
		if mag := cmplx.Abs(out[bin]); mag > peakMag {
			peakMag = mag
			peakBin = bin
		}
	}

	// 440 Hz lands between bins at this resolution (16000/4096 Hz per bin)
	binHz := float64(audio.SampleRate) / fftSize
	peakHz := float64(peakBin) * binHz
	if math.Abs(peakHz-440.0) > binHz {
		t.Errorf("expected spectral peak near 440 Hz, got %.1f Hz (bin %d)", peakHz, peakBin)
	}
}
