package main

import (
	"math"
	"sync"

	"forksim/internal/ensemble"
	"forksim/internal/tone"
)

// span is a half-open range of sample indices.
type span struct{ start, end int }

// spanSamples is the number of samples handed to a worker at a time.
const spanSamples = 4096

// assignSpans cuts [0, total) into spans and distributes them across workers
// in round robin fashion.
func assignSpans(workerCount, total int) [][]span {
	if workerCount < 1 {
		workerCount = 1
	}
	assigned := make([][]span, workerCount)
	for idx, start := 0, 0; start < total; idx, start = idx+1, start+spanSamples {
		end := start + spanSamples
		if end > total {
			end = total
		}
		w := idx % workerCount
		assigned[w] = append(assigned[w], span{start, end})
	}
	return assigned
}

// workerMixer evaluates the averaged tone on a fixed number of goroutines,
// each filling its own spans of the output buffer.
type workerMixer struct {
	workers int
}

var _ ensemble.Mixer = workerMixer{}

// Mix implements ensemble.Mixer. Samples match tone.Generate summed in fork
// order and scaled by the fork count.
func (m workerMixer) Mix(freqs []float64, duration float64, sampleRate int) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, ensemble.ErrEmptyEnsemble
	}
	n := tone.SampleCount(duration, sampleRate)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	step := duration / float64(n)
	scale := 1 / float64(len(freqs))

	var wg sync.WaitGroup
	for _, spans := range assignSpans(m.workers, n) {
		if len(spans) == 0 {
			continue
		}
		wg.Add(1)
		go func(spans []span) {
			defer wg.Done()
			for _, sp := range spans {
				mixSpan(out[sp.start:sp.end], sp.start, freqs, step, scale)
			}
		}(spans)
	}
	wg.Wait()
	return out, nil
}

// mixSpan fills dst, whose first element is sample first, with the averaged
// tone of freqs.
func mixSpan(dst []float64, first int, freqs []float64, step, scale float64) {
	for _, f := range freqs {
		w := 2 * math.Pi * f
		for i := range dst {
			dst[i] += tone.Amplitude * math.Sin(w*(float64(first+i)*step))
		}
	}
	for i := range dst {
		dst[i] *= scale
	}
}
