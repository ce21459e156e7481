// ABOUTME: Audio type definitions for the sampler engine
// ABOUTME: Defines PCM formats and 8-bit/16-bit sample conversions
package audio

const (
	// Engine-wide PCM format. The whole pipeline runs mono 16-bit
	// at a fixed 16 kHz; assets are converted to this at load time.
	SampleRate = 16000
	Channels   = 1
	BitDepth   = 16

	// 16-bit sample range constants
	MaxInt16 = 32767
	MinInt16 = -32768

	// 8-bit sample range constants (percussion voice domain)
	MaxInt8 = 127
	MinInt8 = -128
)

// Format describes a PCM stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns the engine's native format
func DefaultFormat() Format {
	return Format{
		SampleRate: SampleRate,
		Channels:   Channels,
		BitDepth:   BitDepth,
	}
}

// SampleFromInt8 converts an 8-bit sample to int16 (left-justified)
func SampleFromInt8(sample int8) int16 {
	return int16(sample) << 8
}

// SampleToInt8 converts an int16 sample to 8-bit
func SampleToInt8(sample int16) int8 {
	return int8(sample >> 8)
}

// ClampInt16 saturates a wide accumulator value to the int16 range
func ClampInt16(sample int32) int16 {
	if sample > MaxInt16 {
		return MaxInt16
	}
	if sample < MinInt16 {
		return MinInt16
	}
	return int16(sample)
}

// ClampInt8 saturates a wide accumulator value to the int8 range
func ClampInt8(sample int32) int8 {
	if sample > MaxInt8 {
		return MaxInt8
	}
	if sample < MinInt8 {
		return MinInt8
	}
	return int8(sample)
}

// BytesFromInt16 encodes samples as little-endian PCM bytes
func BytesFromInt16(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(uint16(s) >> 8)
	}
	return out
}

// Int16FromBytes decodes little-endian PCM bytes into samples
func Int16FromBytes(data []byte) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8)
	}
	return out
}
