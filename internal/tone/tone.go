// Package tone synthesizes the fixed-amplitude sine tones played for a fork.
package tone

import "math"

const (
	// Amplitude leaves headroom below full scale.
	Amplitude = 0.5
	// DefaultDuration is the length of a played tone in seconds.
	DefaultDuration = 2.0
	// SampleRate is the playback rate in Hz.
	SampleRate = 44100
)

// SampleCount returns the number of samples for duration seconds at sampleRate.
func SampleCount(duration float64, sampleRate int) int {
	n := int(float64(sampleRate) * duration)
	if n < 0 {
		return 0
	}
	return n
}

// TimeGrid returns SampleCount evenly spaced instants over [0, duration).
func TimeGrid(duration float64, sampleRate int) []float64 {
	n := SampleCount(duration, sampleRate)
	t := make([]float64, n)
	if n == 0 {
		return t
	}
	step := duration / float64(n)
	for i := range t {
		t[i] = float64(i) * step
	}
	return t
}

// Generate returns Amplitude*sin(2*pi*frequency*t) over TimeGrid(duration,
// sampleRate). No envelope is applied.
func Generate(frequency, duration float64, sampleRate int) []float64 {
	out := TimeGrid(duration, sampleRate)
	w := 2 * math.Pi * frequency
	for i, t := range out {
		out[i] = Amplitude * math.Sin(w*t)
	}
	return out
}

// GenerateDefault is Generate with DefaultDuration and SampleRate.
func GenerateDefault(frequency float64) []float64 {
	return Generate(frequency, DefaultDuration, SampleRate)
}

// Window returns the first n samples of a tone at frequency, for previews.
func Window(frequency float64, n, sampleRate int) []float64 {
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	out := make([]float64, n)
	w := 2 * math.Pi * frequency / float64(sampleRate)
	for i := range out {
		out[i] = Amplitude * math.Sin(w*float64(i))
	}
	return out
}
