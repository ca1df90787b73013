package main

import (
	"fmt"
	"math"

	"forksim/internal/pcm"
	"forksim/internal/tone"
)

// maxReferenceSeconds bounds how much of a recording is kept for playback.
const maxReferenceSeconds = 10

// loadReference decodes the WAV at path to mono samples at the tone sample
// rate, truncated to maxReferenceSeconds.
func loadReference(path string) ([]float64, error) {
	samples, err := pcm.LoadWAV(path, tone.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("loading reference: %w", err)
	}
	if limit := maxReferenceSeconds * tone.SampleRate; len(samples) > limit {
		samples = samples[:limit]
	}
	return samples, nil
}

// peakLevel returns the largest absolute sample value, or NaN if any sample
// is NaN.
func peakLevel(samples []float64) float64 {
	peak := 0.0
	for _, v := range samples {
		if math.IsNaN(v) {
			return v
		}
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
