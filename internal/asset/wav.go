// ABOUTME: WAV file loader for waveform assets
// ABOUTME: Parses canonical RIFF/PCM files and normalizes to 16kHz mono
package asset

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/funkfinger/sampler-go/internal/audio"
)

const wavHeaderSize = 44 // canonical RIFF header written by the asset tooling

// LoadWAV reads a WAV file from disk
func LoadWAV(name, path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV file: %w", err)
	}
	return DecodeWAV(name, data)
}

// DecodeWAV parses RIFF/PCM bytes into an asset. Accepts 8-bit or
// 16-bit PCM, mono or stereo, any sample rate; stereo is averaged to
// mono and the rate converted to the engine's 16 kHz. 8-bit data that
// is already mono at the engine rate keeps its native width for use as
// a percussion voice.
func DecodeWAV(name string, data []byte) (*Asset, error) {
	if len(data) < wavHeaderSize {
		return nil, fmt.Errorf("WAV too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		haveFmt    bool
		audioFmt   uint16
		channels   int
		sampleRate int
		bits       int
		payload    []byte
	)

	// Walk chunks; canonical files carry fmt then data, but extra
	// chunks (LIST, fact) are skipped rather than rejected.
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			audioFmt = binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			payload = data[body : body+size]
		}

		// Chunk bodies are padded to even length
		pos = body + size
		if size%2 == 1 {
			pos++
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	if payload == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	if audioFmt != 1 {
		return nil, fmt.Errorf("unsupported WAV format %d (only PCM)", audioFmt)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}

	switch bits {
	case 8:
		// 8-bit WAV is unsigned; convert to signed
		samples := make([]int8, len(payload))
		for i, b := range payload {
			samples[i] = int8(int(b) - 128)
		}
		if channels == 1 && sampleRate == audio.SampleRate {
			return FromInt8(name, samples), nil
		}
		// Conversion goes through the 16-bit domain, yielding a 16-bit asset
		wide := make([]int16, len(samples))
		for i, s := range samples {
			wide[i] = audio.SampleFromInt8(s)
		}
		return FromInt16(name, normalize(wide, channels, sampleRate)), nil

	case 16:
		samples := audio.Int16FromBytes(payload)
		return FromInt16(name, normalize(samples, channels, sampleRate)), nil

	default:
		return nil, fmt.Errorf("unsupported bit depth %d (only 8 or 16)", bits)
	}
}

// normalize downmixes interleaved stereo to mono and converts the
// sample rate to the engine rate.
func normalize(samples []int16, channels, sampleRate int) []int16 {
	if channels == 2 {
		mono := make([]int16, len(samples)/2)
		for i := range mono {
			l := int32(samples[i*2])
			r := int32(samples[i*2+1])
			mono[i] = int16((l + r) / 2)
		}
		samples = mono
	}
	return resampleLinear(samples, sampleRate, audio.SampleRate)
}
