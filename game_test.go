package main

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"forksim/internal/ensemble"
	"forksim/internal/resonator"
	"forksim/internal/tone"
)

// fakePlayer records requested tones. Like tonePlayer, starting a tone
// ends the one in flight.
type fakePlayer struct {
	played [][]float64
	dones  []chan struct{}
	closed []bool
	stops  int
}

func (p *fakePlayer) Play(samples []float64) <-chan struct{} {
	if n := len(p.dones); n > 0 {
		p.finish(n - 1)
	}
	done := make(chan struct{})
	p.played = append(p.played, samples)
	p.dones = append(p.dones, done)
	p.closed = append(p.closed, false)
	return done
}

func (p *fakePlayer) Stop() {
	p.stops++
	if n := len(p.dones); n > 0 {
		p.finish(n - 1)
	}
}

func (p *fakePlayer) finish(i int) {
	if !p.closed[i] {
		p.closed[i] = true
		close(p.dones[i])
	}
}

func newTestGame(t *testing.T, forks int) (*Game, *fakePlayer) {
	t.Helper()
	player := &fakePlayer{}
	g := newGame(bootstrapEnsemble(forks), player, ensemble.CPUMixer{}, "")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return base }
	return g, player
}

func TestBootstrapAppliesInitialSliders(t *testing.T) {
	ens := bootstrapEnsemble(3)
	if ens.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ens.Len())
	}
	first := ens.At(0)
	if first.Length() != initialLengthSlider || first.Height() != initialHeightSlider {
		t.Fatalf("first fork L=%v H=%v, want %v/%v", first.Length(), first.Height(), initialLengthSlider, initialHeightSlider)
	}
	if first.Density() != initialForkDensity || first.Shape() != resonator.ShapeRectangle {
		t.Fatalf("first fork density=%v shape=%v", first.Density(), first.Shape())
	}
	for i := 1; i < 3; i++ {
		r := ens.At(i)
		if r.Length() != 0.5 || r.Height() != 0.02 || r.Density() != 3000 || r.Shape() != resonator.ShapeCylinder {
			t.Fatalf("fork %d not default: L=%v H=%v rho=%v shape=%v", i, r.Length(), r.Height(), r.Density(), r.Shape())
		}
	}
}

func TestNewGameMirrorsForks(t *testing.T) {
	g, _ := newTestGame(t, 2)
	if len(g.panels) != 2 {
		t.Fatalf("panels = %d, want 2", len(g.panels))
	}
	if g.panels[0].lengthValue != 0.8 || g.panels[0].heightValue != 0.01 {
		t.Fatalf("panel 0 = %+v", *g.panels[0])
	}
	if g.panels[1].lengthValue != 0.5 || g.panels[1].heightValue != 0.02 {
		t.Fatalf("panel 1 = %+v", *g.panels[1])
	}
	if g.mixerName != "cpu" {
		t.Fatalf("mixerName = %q, want cpu", g.mixerName)
	}
}

func TestHandleParamEventsRecompute(t *testing.T) {
	g, _ := newTestGame(t, 1)
	g.handleEvent(paramEvent{kind: evLength, fork: 0, value: 0.5})
	g.handleEvent(paramEvent{kind: evHeight, fork: 0, value: 0.04})
	g.handleEvent(paramEvent{kind: evMaterial, fork: 0, name: "Bone_thin"})
	g.handleEvent(paramEvent{kind: evShape, fork: 0, shape: resonator.ShapeCylinder})

	r := g.ensemble.At(0)
	want := resonator.ComputeFrequency(0.5, 0.04, resonator.Width, initialForkDensity, 70e9)
	if math.Abs(r.Frequency()-want) > 1e-9 {
		t.Fatalf("Frequency = %v, want %v", r.Frequency(), want)
	}
	if r.Shape() != resonator.ShapeCylinder {
		t.Fatalf("Shape = %v, want cylinder", r.Shape())
	}
	p := g.panels[0]
	if p.lengthValue != 0.5 || p.heightValue != 0.04 || p.material != resonator.MaterialIndex("Bone_thin") {
		t.Fatalf("panel = %+v", *p)
	}
}

func TestHandleUnknownMaterialSetsStatus(t *testing.T) {
	g, _ := newTestGame(t, 1)
	before := g.ensemble.At(0).Frequency()
	g.handleEvent(paramEvent{kind: evMaterial, fork: 0, name: "Unobtainium"})
	if g.ensemble.At(0).Frequency() != before || g.ensemble.At(0).Material() != "Steel" {
		t.Fatal("unknown material changed the fork")
	}
	if g.panels[0].material != 0 {
		t.Fatalf("panel material = %d, want 0", g.panels[0].material)
	}
	if g.currentStatus() == "" {
		t.Fatal("expected a status message")
	}
}

func TestAddForkSelectsNewFork(t *testing.T) {
	g, _ := newTestGame(t, 1)
	g.handleEvent(paramEvent{kind: evAddFork})
	if g.ensemble.Len() != 2 || len(g.panels) != 2 {
		t.Fatalf("Len = %d panels = %d, want 2", g.ensemble.Len(), len(g.panels))
	}
	if g.active != 1 {
		t.Fatalf("active = %d, want 1", g.active)
	}
	g.handleEvent(paramEvent{kind: evSelect, fork: 0})
	if g.active != 0 {
		t.Fatalf("active = %d, want 0", g.active)
	}
	g.handleEvent(paramEvent{kind: evSelect, fork: 9})
	if g.active != 0 {
		t.Fatalf("out of range select moved active to %d", g.active)
	}
}

func TestPlayIsNonBlockingAndReportsCompletion(t *testing.T) {
	g, player := newTestGame(t, 1)
	g.handleEvent(paramEvent{kind: evPlay, fork: 0})
	if len(player.played) != 1 {
		t.Fatalf("played = %d, want 1", len(player.played))
	}
	want := tone.GenerateDefault(g.ensemble.At(0).Frequency())
	if len(player.played[0]) != len(want) {
		t.Fatalf("samples = %d, want %d", len(player.played[0]), len(want))
	}
	g.collectPlayback()
	if len(g.pending) != 1 {
		t.Fatalf("pending = %d before completion, want 1", len(g.pending))
	}
	player.finish(0)
	g.collectPlayback()
	if len(g.pending) != 0 {
		t.Fatalf("pending = %d after completion, want 0", len(g.pending))
	}
	if got := g.currentStatus(); got == "" || got[:8] != "Finished" {
		t.Fatalf("status = %q, want Finished...", got)
	}
}

func TestPlayAllAveragesForks(t *testing.T) {
	g, player := newTestGame(t, 2)
	g.handleEvent(paramEvent{kind: evPlayAll})
	if len(player.played) != 1 {
		t.Fatalf("played = %d, want 1", len(player.played))
	}
	wa := tone.GenerateDefault(g.ensemble.At(0).Frequency())
	wb := tone.GenerateDefault(g.ensemble.At(1).Frequency())
	got := player.played[0]
	for i := range wa {
		if want := 0.5 * (wa[i] + wb[i]); math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

type brokenMixer struct{}

func (brokenMixer) Mix([]float64, float64, int) ([]float64, error) {
	return nil, errors.New("device lost")
}

func TestPlayAllMixerErrorDoesNotPlay(t *testing.T) {
	g, player := newTestGame(t, 1)
	g.mixer = brokenMixer{}
	g.handleEvent(paramEvent{kind: evPlayAll})
	if len(player.played) != 0 {
		t.Fatal("expected no playback after mixer error")
	}
	if g.currentStatus() == "" {
		t.Fatal("expected a status message")
	}
}

func TestPlaySkipsNonFiniteTone(t *testing.T) {
	g, player := newTestGame(t, 1)
	g.handleEvent(paramEvent{kind: evLength, fork: 0, value: 0})
	g.handleEvent(paramEvent{kind: evPlay, fork: 0})
	if len(player.played) != 0 {
		t.Fatal("non-finite tone was sent to the player")
	}
}

func TestPlayReference(t *testing.T) {
	g, player := newTestGame(t, 1)
	g.handleEvent(paramEvent{kind: evPlayReference})
	if len(player.played) != 0 {
		t.Fatal("played without a reference")
	}
	g.reference = []float64{0, 0.25, -0.25}
	g.handleEvent(paramEvent{kind: evPlayReference})
	if len(player.played) != 1 || len(player.played[0]) != 3 {
		t.Fatalf("played = %v", player.played)
	}
}

func TestPlayWithoutPlayer(t *testing.T) {
	g := newGame(bootstrapEnsemble(1), nil, nil, "")
	g.handleEvent(paramEvent{kind: evPlay, fork: 0})
	if len(g.pending) != 0 {
		t.Fatal("pending playback without a player")
	}
}

func TestStatusExpires(t *testing.T) {
	g, _ := newTestGame(t, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	g.setStatus("hello")
	if g.currentStatus() != "hello" {
		t.Fatalf("status = %q", g.currentStatus())
	}
	now = now.Add(statusLifetime + time.Second)
	if g.currentStatus() != "" {
		t.Fatalf("status = %q after expiry", g.currentStatus())
	}
}

func TestStatusFollowsReplacedTone(t *testing.T) {
	g, player := newTestGame(t, 2)
	g.handleEvent(paramEvent{kind: evPlay, fork: 0})
	g.handleEvent(paramEvent{kind: evPlay, fork: 1})
	if !player.closed[0] {
		t.Fatal("first tone was not replaced")
	}
	g.collectPlayback()
	want := fmt.Sprintf("Playing Fork 2 at %.2f Hz", g.ensemble.At(1).Frequency())
	if got := g.currentStatus(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
	if len(g.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(g.pending))
	}

	player.finish(1)
	g.collectPlayback()
	want = fmt.Sprintf("Finished Fork 2 at %.2f Hz", g.ensemble.At(1).Frequency())
	if got := g.currentStatus(); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestMaterialListOpensAndCloses(t *testing.T) {
	g, _ := newTestGame(t, 2)
	g.handleEvent(paramEvent{kind: evMaterialMenu})
	if !g.materialOpen {
		t.Fatal("list did not open")
	}
	g.handleEvent(paramEvent{kind: evMaterial, fork: 0, name: "Chitin_dense"})
	if g.materialOpen {
		t.Fatal("list stayed open after a pick")
	}
	if got := g.ensemble.At(0).Material(); got != "Chitin_dense" {
		t.Fatalf("Material = %q, want Chitin_dense", got)
	}

	g.handleEvent(paramEvent{kind: evMaterialMenu})
	g.handleEvent(paramEvent{kind: evMaterialMenu})
	if g.materialOpen {
		t.Fatal("second toggle did not close the list")
	}

	g.handleEvent(paramEvent{kind: evMaterialMenu})
	g.handleEvent(paramEvent{kind: evSelect, fork: 1})
	if g.materialOpen {
		t.Fatal("list stayed open after switching forks")
	}
}
