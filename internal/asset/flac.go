// ABOUTME: FLAC file loader for waveform assets
// ABOUTME: Decodes fully via mewkiz/flac, downmixes to mono, converts to 16kHz
package asset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"

	"github.com/funkfinger/sampler-go/internal/audio"
)

// LoadFLAC reads and decodes a FLAC file from disk
func LoadFLAC(name, path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeFLAC(name, f)
}

// DecodeFLAC decodes an entire FLAC stream into a 16-bit asset. Frames
// carry one int32 slice per channel at the stream's native bit depth;
// each sample is normalized to 16 bits, channels are averaged, and the
// result converted to the engine rate.
func DecodeFLAC(name string, r io.Reader) (*Asset, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bits := int(info.BitsPerSample)
	if channels == 0 {
		return nil, fmt.Errorf("FLAC stream reports zero channels")
	}

	var mono []int16
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		for i := 0; i < int(frame.BlockSize); i++ {
			sum := int32(0)
			for ch := 0; ch < channels; ch++ {
				sum += int32(flacSample16(frame.Subframes[ch].Samples[i], bits))
			}
			mono = append(mono, int16(sum/int32(channels)))
		}
	}
	if len(mono) == 0 {
		return nil, fmt.Errorf("FLAC stream decoded to zero samples")
	}

	return FromInt16(name, resampleLinear(mono, int(info.SampleRate), audio.SampleRate)), nil
}

// flacSample16 normalizes a sample of the given bit depth to 16 bits
func flacSample16(s int32, bits int) int16 {
	switch {
	case bits == 16:
		return int16(s)
	case bits > 16:
		return int16(s >> (bits - 16))
	default:
		return int16(s << (16 - bits))
	}
}
