package main

import (
	"fmt"

	"forksim/internal/ensemble"
	"forksim/internal/resonator"
)

// eventKind names a user action. Parameter events mutate a fork; the rest
// are handled by the Game.
type eventKind int

const (
	evLength eventKind = iota
	evHeight
	evMaterial
	evShape
	evPlay
	evAddFork
	evPlayAll
	evPlayReference
	evSelect
	evMaterialMenu
)

func (k eventKind) String() string {
	switch k {
	case evLength:
		return "length"
	case evHeight:
		return "height"
	case evMaterial:
		return "material"
	case evShape:
		return "shape"
	case evPlay:
		return "play"
	case evAddFork:
		return "add-fork"
	case evPlayAll:
		return "play-all"
	case evPlayReference:
		return "play-reference"
	case evSelect:
		return "select"
	case evMaterialMenu:
		return "material-menu"
	}
	return fmt.Sprintf("eventKind(%d)", int(k))
}

// paramEvent is an explicit "something changed" message produced by input
// handling. fork is the index into the ensemble.
type paramEvent struct {
	kind  eventKind
	fork  int
	value float64
	name  string
	shape resonator.Shape
}

// isParamEvent reports whether the event mutates a single fork's parameters.
func (e paramEvent) isParamEvent() bool {
	switch e.kind {
	case evLength, evHeight, evMaterial, evShape:
		return true
	}
	return false
}

// applyParamEvent routes a parameter event to the matching resonator setter,
// which recomputes the derived values.
func applyParamEvent(ens *ensemble.Ensemble, ev paramEvent) error {
	if !ev.isParamEvent() {
		return fmt.Errorf("%s is not a parameter event", ev.kind)
	}
	if ev.fork < 0 || ev.fork >= ens.Len() {
		return fmt.Errorf("%s event for fork %d: only %d forks", ev.kind, ev.fork, ens.Len())
	}
	r := ens.At(ev.fork)
	switch ev.kind {
	case evLength:
		r.SetLength(ev.value)
	case evHeight:
		r.SetHeight(ev.value)
	case evMaterial:
		return r.SetMaterial(ev.name)
	case evShape:
		r.SetShape(ev.shape)
	}
	return nil
}

// bootstrapEnsemble builds the startup collection: the first fork with its
// panel's initial slider positions applied, then extra default forks.
func bootstrapEnsemble(total int) *ensemble.Ensemble {
	first := resonator.New(resonator.Params{
		Length:  initialForkLength,
		Height:  initialForkHeight,
		Density: initialForkDensity,
		Shape:   initialForkShape,
	})
	ens := ensemble.New(first)
	for _, ev := range []paramEvent{
		{kind: evLength, fork: 0, value: initialLengthSlider},
		{kind: evHeight, fork: 0, value: initialHeightSlider},
	} {
		_ = applyParamEvent(ens, ev)
	}
	for i := 1; i < total; i++ {
		ens.AddDefault()
	}
	return ens
}
