// Package ensemble holds an ordered collection of tuning forks and renders
// their combined tone.
package ensemble

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"forksim/internal/resonator"
	"forksim/internal/tone"
)

// ErrEmptyEnsemble is returned when mixing a collection with no forks.
var ErrEmptyEnsemble = errors.New("ensemble has no forks")

// DefaultParams are used for forks created through AddDefault.
var DefaultParams = resonator.Params{
	Length:  0.5,
	Height:  0.02,
	Density: 3000,
	Shape:   resonator.ShapeCylinder,
}

// Mixer renders the average of equal-amplitude tones at the given frequencies.
type Mixer interface {
	Mix(freqs []float64, duration float64, sampleRate int) ([]float64, error)
}

// Ensemble is an append-only, ordered collection of resonators.
type Ensemble struct {
	forks []*resonator.Resonator
}

// New creates an ensemble holding forks in order.
func New(forks ...*resonator.Resonator) *Ensemble {
	e := &Ensemble{}
	for _, f := range forks {
		e.Add(f)
	}
	return e
}

// Add appends r. Nil resonators are ignored.
func (e *Ensemble) Add(r *resonator.Resonator) {
	if r == nil {
		return
	}
	e.forks = append(e.forks, r)
}

// AddDefault appends a fork built from DefaultParams and returns it.
func (e *Ensemble) AddDefault() *resonator.Resonator {
	r := resonator.New(DefaultParams)
	e.forks = append(e.forks, r)
	return r
}

// Len reports the number of forks.
func (e *Ensemble) Len() int { return len(e.forks) }

// At returns the fork at index i.
func (e *Ensemble) At(i int) *resonator.Resonator { return e.forks[i] }

// Forks returns a copy of the fork slice.
func (e *Ensemble) Forks() []*resonator.Resonator {
	out := make([]*resonator.Resonator, len(e.forks))
	copy(out, e.forks)
	return out
}

// Frequencies returns each fork's current frequency in order.
func (e *Ensemble) Frequencies() []float64 {
	freqs := make([]float64, len(e.forks))
	for i, f := range e.forks {
		freqs[i] = f.Frequency()
	}
	return freqs
}

// Mix renders the combined tone of every fork with m, falling back to
// CPUMixer when m is nil.
func (e *Ensemble) Mix(m Mixer, duration float64, sampleRate int) ([]float64, error) {
	if len(e.forks) == 0 {
		return nil, ErrEmptyEnsemble
	}
	if m == nil {
		m = CPUMixer{}
	}
	out, err := m.Mix(e.Frequencies(), duration, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("mixing %d forks: %w", len(e.forks), err)
	}
	return out, nil
}

// CPUMixer sums the per-fork tones elementwise and divides by the fork count.
type CPUMixer struct{}

// Mix implements Mixer.
func (CPUMixer) Mix(freqs []float64, duration float64, sampleRate int) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, ErrEmptyEnsemble
	}
	total := make([]float64, tone.SampleCount(duration, sampleRate))
	for _, f := range freqs {
		vecmath.AddBlockInPlace(total, tone.Generate(f, duration, sampleRate))
	}
	vecmath.ScaleBlockInPlace(total, 1/float64(len(freqs)))
	return total, nil
}
