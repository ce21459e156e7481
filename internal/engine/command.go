// ABOUTME: Control command definitions for the engine
// ABOUTME: Discrete events from the UI and scripts applied between ticks
package engine

// Op identifies a control command
type Op int

const (
	OpSelectTone Op = iota
	OpSelectSample
	OpSpeedDelta
	OpPitchDelta
	OpToggleIndependent
	OpResetSpeed
	OpResetPitch
	OpTriggerVoice
	OpSetFrequency
	OpSetAmplitude
)

// Command is a single control event. Value carries deltas and
// absolute parameter values; Voice selects the percussion slot for
// OpTriggerVoice.
type Command struct {
	Op    Op
	Value float64
	Voice int
}

// SelectTone switches playback to the synthesized tone
func SelectTone() Command { return Command{Op: OpSelectTone} }

// SelectSample switches playback to the sample loop
func SelectSample() Command { return Command{Op: OpSelectSample} }

// SpeedDelta nudges playback speed by delta
func SpeedDelta(delta float64) Command { return Command{Op: OpSpeedDelta, Value: delta} }

// PitchDelta nudges pitch by delta; rejected while pitch is linked
func PitchDelta(delta float64) Command { return Command{Op: OpPitchDelta, Value: delta} }

// ToggleIndependent flips independent speed/pitch control
func ToggleIndependent() Command { return Command{Op: OpToggleIndependent} }

// ResetSpeed restores speed to 1.0 (and pitch too while linked)
func ResetSpeed() Command { return Command{Op: OpResetSpeed} }

// ResetPitch restores pitch to 1.0
func ResetPitch() Command { return Command{Op: OpResetPitch} }

// TriggerVoice fires a one-shot percussion voice
func TriggerVoice(index int) Command { return Command{Op: OpTriggerVoice, Voice: index} }

// SetFrequency sets the tone frequency in Hz
func SetFrequency(hz float64) Command { return Command{Op: OpSetFrequency, Value: hz} }

// SetAmplitude sets the tone amplitude (0..1)
func SetAmplitude(amp float64) Command { return Command{Op: OpSetAmplitude, Value: amp} }
