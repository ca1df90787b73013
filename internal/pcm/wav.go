package pcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrNoAudio is returned when a WAV stream decodes to zero samples.
var ErrNoAudio = errors.New("wav has no audio data")

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

// WriteWAV writes samples as a 16-bit stereo PCM RIFF/WAVE stream.
func WriteWAV(w io.Writer, samples []float64, sampleRate int) error {
	data := EncodeStereo(samples)
	hdr := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(data)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   Channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * FrameBytes),
		BlockAlign:    FrameBytes,
		BitsPerSample: BytesPerSample * 8,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(len(data)),
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	return nil
}

// SaveWAV writes samples to path.
func SaveWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return fmt.Errorf("saving %q: %w", path, err)
	}
	return f.Close()
}

// DecodeWAV decodes a WAV stream, resampled to sampleRate, into mono samples.
func DecodeWAV(r io.Reader, sampleRate int) ([]float64, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, r)
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded wav: %w", err)
	}
	samples := DecodeStereoToMono(decoded)
	if len(samples) == 0 {
		return nil, ErrNoAudio
	}
	return samples, nil
}

// LoadWAV decodes the WAV file at path into mono samples at sampleRate.
func LoadWAV(path string, sampleRate int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	samples, err := DecodeWAV(bytes.NewReader(raw), sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return samples, nil
}
