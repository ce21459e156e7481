// ABOUTME: Playback mode state machine and parameter store
// ABOUTME: Clamps speed/pitch deltas and enforces the pitch-to-speed link
package engine

import "fmt"

// Mode is the active playback state
type Mode int

const (
	ModeTone Mode = iota
	ModeSampleLinked
	ModeSampleIndependent
)

func (m Mode) String() string {
	switch m {
	case ModeTone:
		return "TONE"
	case ModeSampleLinked:
		return "SAMPLE (linked)"
	case ModeSampleIndependent:
		return "SAMPLE (independent)"
	default:
		return "UNKNOWN"
	}
}

// Parameter ranges. Delta commands clamp to these; the linked
// pitch-follows-speed assignment copies speed verbatim.
const (
	MinSpeed = 0.1
	MaxSpeed = 4.0
	MinPitch = 0.5
	MaxPitch = 2.0

	MinFrequency = 20.0
	MaxFrequency = 8000.0

	DefaultSpeed     = 1.0
	DefaultPitch     = 1.0
	DefaultFrequency = 440.0
	DefaultAmplitude = 0.3
)

// Controller holds the playback mode and the speed/pitch/tone
// parameters. It is written only from the control path between ticks.
type Controller struct {
	sample      bool // tone vs sample playback
	speed       float64
	pitch       float64
	independent bool
	frequency   float64
	amplitude   float64
}

// NewController creates a controller with default parameters in tone
// mode with pitch linked to speed.
func NewController() *Controller {
	return &Controller{
		speed:     DefaultSpeed,
		pitch:     DefaultPitch,
		frequency: DefaultFrequency,
		amplitude: DefaultAmplitude,
	}
}

// Mode derives the active state from the mode family and the
// independent flag.
func (c *Controller) Mode() Mode {
	if !c.sample {
		return ModeTone
	}
	if c.independent {
		return ModeSampleIndependent
	}
	return ModeSampleLinked
}

// Speed returns the playback speed multiplier
func (c *Controller) Speed() float64 { return c.speed }

// Pitch returns the pitch multiplier
func (c *Controller) Pitch() float64 { return c.pitch }

// Independent reports whether pitch is decoupled from speed
func (c *Controller) Independent() bool { return c.independent }

// Frequency returns the tone frequency in Hz
func (c *Controller) Frequency() float64 { return c.frequency }

// Amplitude returns the tone amplitude
func (c *Controller) Amplitude() float64 { return c.amplitude }

// Apply executes a parameter or mode command and returns the
// user-facing notice, or an empty string for commands that change
// nothing. Voice triggers are handled by the engine, not here.
func (c *Controller) Apply(cmd Command) string {
	switch cmd.Op {
	case OpSelectTone:
		if !c.sample {
			return ""
		}
		c.sample = false
		return "Switching to sine wave generation..."

	case OpSelectSample:
		if c.sample {
			return ""
		}
		c.sample = true
		return "Switching to sample playback..."

	case OpSpeedDelta:
		c.speed = clamp(c.speed+cmd.Value, MinSpeed, MaxSpeed)
		if !c.independent {
			c.pitch = c.speed
			return fmt.Sprintf("Playback speed: %.2fx (pitch linked)", c.speed)
		}
		return fmt.Sprintf("Playback speed: %.2fx", c.speed)

	case OpPitchDelta:
		if !c.independent {
			return "Enable independent controls first (press 'i')"
		}
		c.pitch = clamp(c.pitch+cmd.Value, MinPitch, MaxPitch)
		return fmt.Sprintf("Pitch shift: %.2fx", c.pitch)

	case OpToggleIndependent:
		c.independent = !c.independent
		if !c.independent {
			c.pitch = c.speed
			return "Speed/Pitch LINKED - controls affect both"
		}
		return "Speed/Pitch INDEPENDENT - separate controls"

	case OpResetSpeed:
		c.speed = DefaultSpeed
		if !c.independent {
			c.pitch = DefaultPitch
		}
		return "Speed reset to 1.0x"

	case OpResetPitch:
		c.pitch = DefaultPitch
		return "Pitch reset to 1.0x"

	case OpSetFrequency:
		c.frequency = clamp(cmd.Value, MinFrequency, MaxFrequency)
		return fmt.Sprintf("Frequency changed to: %.1f Hz", c.frequency)

	case OpSetAmplitude:
		c.amplitude = clamp(cmd.Value, 0.0, 1.0)
		return fmt.Sprintf("Amplitude changed to: %.2f", c.amplitude)
	}

	return ""
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
