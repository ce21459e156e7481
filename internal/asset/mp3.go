// ABOUTME: MP3 file loader for waveform assets
// ABOUTME: Decodes fully via go-mp3, downmixes to mono, converts to 16kHz
package asset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"github.com/funkfinger/sampler-go/internal/audio"
)

// LoadMP3 reads and decodes an MP3 file from disk
func LoadMP3(name, path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeMP3(name, f)
}

// DecodeMP3 decodes an entire MP3 stream into a 16-bit asset. The
// decoder always outputs 16-bit stereo; both channels are averaged and
// the result converted to the engine rate.
func DecodeMP3(name string, r io.Reader) (*Asset, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 stream: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("MP3 stream decoded to zero samples")
	}

	interleaved := audio.Int16FromBytes(data)
	mono := make([]int16, len(interleaved)/2)
	for i := range mono {
		l := int32(interleaved[i*2])
		r := int32(interleaved[i*2+1])
		mono[i] = int16((l + r) / 2)
	}

	return FromInt16(name, resampleLinear(mono, decoder.SampleRate(), audio.SampleRate)), nil
}

// Load reads a waveform asset from disk, dispatching on file extension.
// The asset name derives from the file name.
func Load(path string) (*Asset, error) {
	filename := filepath.Base(path)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return LoadWAV(name, path)
	case ".mp3":
		return LoadMP3(name, path)
	case ".flac":
		return LoadFLAC(name, path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .flac)", ext)
	}
}
