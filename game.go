package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"forksim/internal/ensemble"
	"forksim/internal/tone"
)

// pendingTone tracks a playback whose completion the UI reports.
type pendingTone struct {
	label string
	done  <-chan struct{}
}

// Game owns the fork collection, per-fork panel state, and playback.
type Game struct {
	ensemble *ensemble.Ensemble
	panels   []*forkPanel
	active   int

	mixer     ensemble.Mixer
	mixerName string
	player    tonePlayback
	pending   []pendingTone
	reference []float64

	yaw, pitch   float64
	dragging     sliderID
	materialOpen bool

	status        string
	statusExpires time.Time
	now           func() time.Time
}

// newGame wires the collection to a player and mixer. player may be nil, in
// which case play requests only update the status line.
func newGame(ens *ensemble.Ensemble, player tonePlayback, mixer ensemble.Mixer, mixerName string) *Game {
	g := &Game{
		ensemble:  ens,
		mixer:     mixer,
		mixerName: mixerName,
		player:    player,
		yaw:       defaultYaw,
		pitch:     defaultPitch,
		now:       time.Now,
	}
	for _, r := range ens.Forks() {
		g.panels = append(g.panels, newForkPanel(r))
	}
	if g.mixerName == "" {
		g.mixerName = "cpu"
	}
	return g
}

// Update polls input, applies the resulting events, and collects finished
// playbacks.
func (g *Game) Update() error {
	for _, ev := range g.pollInput() {
		g.handleEvent(ev)
	}
	g.collectPlayback()
	return nil
}

// handleEvent applies one event to the model or starts playback.
func (g *Game) handleEvent(ev paramEvent) {
	switch ev.kind {
	case evLength, evHeight, evMaterial, evShape:
		if ev.kind == evMaterial {
			g.materialOpen = false
		}
		if err := applyParamEvent(g.ensemble, ev); err != nil {
			log.Printf("Ignoring %s event: %v", ev.kind, err)
			g.setStatus(err.Error())
			return
		}
		if ev.fork >= 0 && ev.fork < len(g.panels) {
			g.panels[ev.fork].observe(ev)
		}
	case evSelect:
		if ev.fork >= 0 && ev.fork < g.ensemble.Len() {
			g.active = ev.fork
			g.materialOpen = false
		}
	case evMaterialMenu:
		g.materialOpen = !g.materialOpen
	case evAddFork:
		r := g.ensemble.AddDefault()
		g.panels = append(g.panels, newForkPanel(r))
		g.active = g.ensemble.Len() - 1
		g.materialOpen = false
		log.Printf("Added fork %d (%.2f Hz)", g.ensemble.Len(), r.Frequency())
		g.setStatus(fmt.Sprintf("Added %s", tabLabel(g.active)))
	case evPlay:
		if ev.fork < 0 || ev.fork >= g.ensemble.Len() {
			return
		}
		f := g.ensemble.At(ev.fork).Frequency()
		g.play(fmt.Sprintf("%s at %.2f Hz", tabLabel(ev.fork), f), tone.GenerateDefault(f))
	case evPlayAll:
		samples, err := g.ensemble.Mix(g.mixer, tone.DefaultDuration, tone.SampleRate)
		if err != nil {
			log.Printf("Play all: %v", err)
			g.setStatus(err.Error())
			return
		}
		g.play(fmt.Sprintf("%d forks (%s mixer)", g.ensemble.Len(), g.mixerName), samples)
	case evPlayReference:
		if len(g.reference) == 0 {
			g.setStatus("No reference recording loaded")
			return
		}
		g.play("reference recording", g.reference)
	}
}

// play hands samples to the player without waiting for them to finish.
func (g *Game) play(label string, samples []float64) {
	if peak := peakLevel(samples); math.IsNaN(peak) || math.IsInf(peak, 0) {
		g.setStatus(fmt.Sprintf("Cannot play %s: non-finite samples", label))
		return
	}
	if g.player == nil {
		g.setStatus("Audio disabled: " + label)
		return
	}
	// The player replaces the tone in flight; its entry is dropped rather
	// than reported as finished.
	g.pending = append(g.pending[:0], pendingTone{label: label, done: g.player.Play(samples)})
	g.setStatus("Playing " + label)
}

// collectPlayback reports playbacks that have completed since the last tick.
func (g *Game) collectPlayback() {
	kept := g.pending[:0]
	for _, p := range g.pending {
		select {
		case <-p.done:
			g.setStatus("Finished " + p.label)
		default:
			kept = append(kept, p)
		}
	}
	g.pending = kept
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusExpires = g.now().Add(statusLifetime)
}

// currentStatus returns the status line while it is fresh.
func (g *Game) currentStatus() string {
	if g.status == "" || g.now().After(g.statusExpires) {
		return ""
	}
	return g.status
}

// activePanel returns the panel of the selected fork.
func (g *Game) activePanel() *forkPanel {
	if g.active < 0 || g.active >= len(g.panels) {
		return nil
	}
	return g.panels[g.active]
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenW, screenH }
