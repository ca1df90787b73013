// Package pcm converts float samples to and from 16-bit interleaved stereo
// PCM, the format the ebiten audio context consumes.
package pcm

import (
	"encoding/binary"
	"math"
)

const (
	Channels       = 2
	BytesPerSample = 2
	FrameBytes     = Channels * BytesPerSample
	maxValue       = 32767
	minValue       = -32768
)

// Quantize converts v in [-1, 1] to int16, clipping out-of-range values.
// NaN maps to silence.
func Quantize(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	s := math.Round(v * maxValue)
	if s > maxValue {
		return maxValue
	} else if s < minValue {
		return minValue
	}
	return int16(s)
}

// EncodeStereo duplicates each mono sample onto both channels as
// little-endian int16.
func EncodeStereo(samples []float64) []byte {
	buf := make([]byte, len(samples)*FrameBytes)
	for i, v := range samples {
		s := uint16(Quantize(v))
		base := i * FrameBytes
		binary.LittleEndian.PutUint16(buf[base:], s)
		binary.LittleEndian.PutUint16(buf[base+BytesPerSample:], s)
	}
	return buf
}

// DecodeStereoToMono averages left and right channels of interleaved
// little-endian int16 PCM. A trailing partial frame is dropped.
func DecodeStereoToMono(raw []byte) []float64 {
	frames := len(raw) / FrameBytes
	if frames == 0 {
		return nil
	}
	out := make([]float64, frames)
	for i := range out {
		offset := i * FrameBytes
		left := int16(binary.LittleEndian.Uint16(raw[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(raw[offset+2 : offset+4]))
		out[i] = (float64(left) + float64(right)) * (0.5 / 32768.0)
	}
	return out
}

// Duration reports the playback length in seconds of n stereo PCM bytes.
func Duration(n, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n/FrameBytes) / float64(sampleRate)
}
